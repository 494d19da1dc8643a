package scrape

import (
	"context"
	"errors"

	"github.com/sells-group/pagescan/internal/model"
	"github.com/sells-group/pagescan/internal/resilience"
	"github.com/sells-group/pagescan/pkg/apify"
)

// defaultActorID is the headless web-scraper actor driven by the deep
// adapter.
const defaultActorID = "apify~web-scraper"

// defaultPageFunction runs inside the rendered page and returns the
// persuasion elements the extractor cares about. Its return value surfaces
// as RawPage.StructuredJSON.
const defaultPageFunction = `async function pageFunction(context) {
    const { $, request } = context;
    const text = (sel) => $(sel).map((i, el) => $(el).text().trim()).get().filter(Boolean);
    return {
        url: request.url,
        title: $('title').first().text().trim(),
        description: $('meta[name="description"]').attr('content') || '',
        html: $('body').html() || '',
        bodyText: $('body').text().replace(/\s+/g, ' ').trim(),
        headlines: text('h1, h2').slice(0, 10),
        testimonials: text('blockquote, .testimonial, [class*="review"]').slice(0, 10),
        prices: text('[class*="price"], .amount').slice(0, 8),
        ctas: text('button, a.btn, [class*="cta"]').slice(0, 8),
    };
}`

// DeepAdapter wraps the Apify actor-run API as the deep/headless back-end:
// submit a run, poll it to completion, fetch the first dataset record.
type DeepAdapter struct {
	client   apify.Client
	actorID  string
	pollOpts []apify.PollOption
}

// DeepOption configures a DeepAdapter.
type DeepOption func(*DeepAdapter)

// WithActorID overrides the default web-scraper actor.
func WithActorID(id string) DeepOption {
	return func(d *DeepAdapter) { d.actorID = id }
}

// WithPollOptions overrides the run polling schedule (tests use short
// intervals).
func WithPollOptions(opts ...apify.PollOption) DeepOption {
	return func(d *DeepAdapter) { d.pollOpts = opts }
}

// NewDeepAdapter creates a DeepAdapter from an Apify client.
func NewDeepAdapter(client apify.Client, opts ...DeepOption) *DeepAdapter {
	d := &DeepAdapter{
		client:  client,
		actorID: defaultActorID,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name implements Scraper.
func (d *DeepAdapter) Name() string { return string(model.BackendDeep) }

// Scrape runs the headless actor against a single URL and normalizes the
// first dataset record into a RawPage.
func (d *DeepAdapter) Scrape(ctx context.Context, url string, p Profile) (*model.RawPage, error) {
	pageFn := p.PageFunction
	if pageFn == "" {
		pageFn = defaultPageFunction
	}

	input := map[string]any{
		"startUrls":               []map[string]string{{"url": url}},
		"pageFunction":            pageFn,
		"injectJQuery":            true,
		"waitUntil":               []string{"networkidle2"},
		"pageLoadTimeoutSecs":     int(p.Timeout.Seconds()),
		"pageFunctionTimeoutSecs": int(p.Wait.Seconds()) + 10,
		"maxPagesPerCrawl":        1,
		"proxyConfiguration":      map[string]any{"useApifyProxy": true},
	}

	run, err := d.client.StartRun(ctx, d.actorID, input)
	if err != nil {
		return nil, d.wrapErr("start_run", err)
	}

	run, err = apify.PollRun(ctx, d.client, run.ID, d.pollOpts...)
	if err != nil {
		switch {
		case errors.Is(err, apify.ErrRunTimeout):
			return nil, &BackendError{Backend: d.Name(), Code: "timeout", Message: err.Error()}
		case errors.Is(err, apify.ErrRunFailed):
			return nil, resilience.NewTransientError(&BackendError{Backend: d.Name(), Code: "job_failed", Message: err.Error()}, 0)
		default:
			return nil, d.wrapErr("poll_run", err)
		}
	}

	items, err := d.client.GetDatasetItems(ctx, run.DefaultDatasetID, 1)
	if err != nil {
		return nil, d.wrapErr("get_dataset", err)
	}
	if len(items) == 0 {
		return nil, resilience.NewTransientError(&BackendError{Backend: d.Name(), Code: "empty_dataset", Message: "run produced no records"}, 0)
	}

	return d.normalize(url, items[0], p.IncludeHTML), nil
}

// normalize maps the actor's dataset record into the canonical RawPage.
// Only the shape produced by the page function is honored; provider drift
// is an adapter bug, not a branching concern.
func (d *DeepAdapter) normalize(url string, item map[string]any, includeHTML bool) *model.RawPage {
	page := &model.RawPage{
		Markdown:       str(item["bodyText"]),
		StructuredJSON: item,
		Metadata: model.PageMetadata{
			Title:       str(item["title"]),
			Description: str(item["description"]),
			SourceURL:   str(item["url"]),
		},
	}
	if includeHTML {
		page.HTML = str(item["html"])
	}
	if page.Metadata.SourceURL == "" {
		page.Metadata.SourceURL = url
	}
	return page
}

func (d *DeepAdapter) wrapErr(code string, err error) error {
	var apiErr *apify.APIError
	if errors.As(err, &apiErr) && !resilience.IsTransientHTTPStatus(apiErr.StatusCode) {
		return &BackendError{Backend: d.Name(), Code: code, Message: apiErr.Error()}
	}
	return resilience.NewTransientError(&BackendError{Backend: d.Name(), Code: code, Message: err.Error()}, 0)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
