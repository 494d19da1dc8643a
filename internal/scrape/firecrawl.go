package scrape

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/pagescan/internal/model"
	"github.com/sells-group/pagescan/internal/resilience"
	"github.com/sells-group/pagescan/pkg/firecrawl"
)

// excludedTags are stripped server-side so the markdown body carries sales
// copy rather than chrome.
var excludedTags = []string{"nav", "footer", "script", "style", "noscript", "iframe"}

// circuitBreaker tracks consecutive failures to skip a flaky upstream.
// The threshold sits above a single request's retry budget so one bad URL
// cannot trip it; two consecutive failing requests can.
type circuitBreaker struct {
	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	openUntil   time.Time
	threshold   int
	window      time.Duration
	cooldown    time.Duration
}

func newCircuitBreaker(threshold int, window, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{threshold: threshold, window: window, cooldown: cooldown}
}

func (cb *circuitBreaker) isOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return time.Now().Before(cb.openUntil)
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	now := time.Now()
	if now.Sub(cb.lastFailure) > cb.window {
		cb.failures = 0
	}
	cb.failures++
	cb.lastFailure = now
	if cb.failures >= cb.threshold {
		cb.openUntil = now.Add(cb.cooldown)
		zap.L().Warn("scrape: firecrawl circuit breaker opened",
			zap.Int("failures", cb.failures),
			zap.Duration("cooldown", cb.cooldown),
		)
	}
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
}

// FastAdapter wraps the Firecrawl synchronous scrape API as the fast-render
// back-end.
type FastAdapter struct {
	client  firecrawl.Client
	breaker *circuitBreaker
}

// NewFastAdapter creates a FastAdapter from a Firecrawl client.
func NewFastAdapter(client firecrawl.Client) *FastAdapter {
	return &FastAdapter{
		client:  client,
		breaker: newCircuitBreaker(4, 30*time.Second, 60*time.Second),
	}
}

// Name implements Scraper.
func (f *FastAdapter) Name() string { return string(model.BackendFast) }

// Scrape fetches a single URL via Firecrawl and normalizes the response
// into a RawPage.
func (f *FastAdapter) Scrape(ctx context.Context, url string, p Profile) (*model.RawPage, error) {
	if f.breaker.isOpen() {
		return nil, &BackendError{Backend: f.Name(), Code: "circuit_open", Message: "skipping upstream in cooldown"}
	}

	formats := []string{"markdown"}
	if p.IncludeHTML {
		formats = append(formats, "html")
	}

	resp, err := f.client.Scrape(ctx, firecrawl.ScrapeRequest{
		URL:             url,
		Formats:         formats,
		OnlyMainContent: false,
		ExcludeTags:     excludedTags,
		WaitFor:         int(p.Wait.Milliseconds()),
		Timeout:         int(p.Timeout.Milliseconds()),
		BlockAds:        true,
	})
	if err != nil {
		f.breaker.recordFailure()
		var apiErr *firecrawl.APIError
		if errors.As(err, &apiErr) {
			be := &BackendError{Backend: f.Name(), Code: "http_error", Message: apiErr.Error()}
			if resilience.IsTransientHTTPStatus(apiErr.StatusCode) {
				return nil, resilience.NewTransientError(be, apiErr.StatusCode)
			}
			return nil, be
		}
		return nil, resilience.NewTransientError(&BackendError{Backend: f.Name(), Code: "network", Message: err.Error()}, 0)
	}

	if !resp.Success {
		f.breaker.recordFailure()
		msg := resp.Error
		if msg == "" {
			msg = "scrape not successful"
		}
		return nil, resilience.NewTransientError(&BackendError{Backend: f.Name(), Code: "scrape_failed", Message: msg}, 0)
	}

	f.breaker.recordSuccess()

	page := &model.RawPage{
		Markdown:       resp.Data.Markdown,
		StructuredJSON: resp.Data.JSON,
		Metadata: model.PageMetadata{
			Title:       resp.Data.Metadata.Title,
			Description: resp.Data.Metadata.Description,
			SourceURL:   resp.Data.Metadata.SourceURL,
		},
	}
	if p.IncludeHTML {
		page.HTML = resp.Data.HTML
	}
	if page.Metadata.SourceURL == "" {
		page.Metadata.SourceURL = url
	}
	return page, nil
}
