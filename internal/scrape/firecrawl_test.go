package scrape

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/pagescan/internal/resilience"
	"github.com/sells-group/pagescan/pkg/firecrawl"
)

// fakeFirecrawl returns a canned response or error and records requests.
type fakeFirecrawl struct {
	resp *firecrawl.ScrapeResponse
	err  error
	last firecrawl.ScrapeRequest
}

func (f *fakeFirecrawl) Scrape(ctx context.Context, req firecrawl.ScrapeRequest) (*firecrawl.ScrapeResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func okResponse() *firecrawl.ScrapeResponse {
	return &firecrawl.ScrapeResponse{
		Success: true,
		Data: firecrawl.PageData{
			Markdown: "# Hello",
			HTML:     "<h1>Hello</h1>",
			Metadata: firecrawl.Metadata{
				Title:       "Hello Page",
				Description: "A page",
				SourceURL:   "https://example.com",
			},
		},
	}
}

func TestFastAdapterNormalizesResponse(t *testing.T) {
	client := &fakeFirecrawl{resp: okResponse()}
	a := NewFastAdapter(client)

	page, err := a.Scrape(context.Background(), "https://example.com", DefaultFastProfile())
	require.NoError(t, err)

	assert.Equal(t, "# Hello", page.Markdown)
	assert.Equal(t, "<h1>Hello</h1>", page.HTML)
	assert.Equal(t, "Hello Page", page.Metadata.Title)
	assert.Equal(t, "https://example.com", page.Metadata.SourceURL)
}

func TestFastAdapterRequestMapping(t *testing.T) {
	client := &fakeFirecrawl{resp: okResponse()}
	a := NewFastAdapter(client)

	p := Profile{Timeout: 15 * time.Second, Wait: 2 * time.Second, IncludeHTML: true}
	_, err := a.Scrape(context.Background(), "https://example.com", p)
	require.NoError(t, err)

	assert.Equal(t, []string{"markdown", "html"}, client.last.Formats)
	assert.Equal(t, 2000, client.last.WaitFor)
	assert.Equal(t, 15000, client.last.Timeout)
	assert.True(t, client.last.BlockAds)
	assert.Contains(t, client.last.ExcludeTags, "nav")
}

func TestFastAdapterSkipsHTMLWhenNotRequested(t *testing.T) {
	client := &fakeFirecrawl{resp: okResponse()}
	a := NewFastAdapter(client)

	page, err := a.Scrape(context.Background(), "https://example.com", Profile{Timeout: time.Second})
	require.NoError(t, err)

	assert.Equal(t, []string{"markdown"}, client.last.Formats)
	assert.Empty(t, page.HTML)
}

func TestFastAdapterTransientAPIError(t *testing.T) {
	client := &fakeFirecrawl{err: &firecrawl.APIError{StatusCode: 503, Body: "overloaded"}}
	a := NewFastAdapter(client)

	_, err := a.Scrape(context.Background(), "https://example.com", DefaultFastProfile())
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestFastAdapterPermanentAPIError(t *testing.T) {
	client := &fakeFirecrawl{err: &firecrawl.APIError{StatusCode: 401, Body: "bad key"}}
	a := NewFastAdapter(client)

	_, err := a.Scrape(context.Background(), "https://example.com", DefaultFastProfile())
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "fast", be.Backend)
}

func TestFastAdapterUnsuccessfulResponseIsTransient(t *testing.T) {
	client := &fakeFirecrawl{resp: &firecrawl.ScrapeResponse{Success: false, Error: "render failed"}}
	a := NewFastAdapter(client)

	_, err := a.Scrape(context.Background(), "https://example.com", DefaultFastProfile())
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
	assert.Contains(t, err.Error(), "render failed")
}

func TestFastAdapterCircuitBreakerOpens(t *testing.T) {
	client := &fakeFirecrawl{err: &firecrawl.APIError{StatusCode: 503, Body: "down"}}
	a := NewFastAdapter(client)
	a.breaker = newCircuitBreaker(2, time.Minute, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := a.Scrape(context.Background(), "https://example.com", DefaultFastProfile())
		require.Error(t, err)
	}

	// Breaker is open: the upstream is not called again.
	client.err = nil
	client.resp = okResponse()
	_, err := a.Scrape(context.Background(), "https://example.com", DefaultFastProfile())
	require.Error(t, err)

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "circuit_open", be.Code)
}

func TestCircuitBreakerResetsOnSuccess(t *testing.T) {
	cb := newCircuitBreaker(2, time.Minute, time.Minute)

	cb.recordFailure()
	cb.recordSuccess()
	cb.recordFailure()
	assert.False(t, cb.isOpen())

	cb.recordFailure()
	assert.True(t, cb.isOpen())
}
