// Package pipeline composes the scraping, extraction, and scoring stages
// into the single entry point callers use: one URL in, one scored record out.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/pagescan/internal/cache"
	"github.com/sells-group/pagescan/internal/extract"
	"github.com/sells-group/pagescan/internal/model"
	"github.com/sells-group/pagescan/internal/scorer"
	"github.com/sells-group/pagescan/internal/scrape"
	"github.com/sells-group/pagescan/internal/store"
)

// batchInterval is the fixed delay between batch requests, respecting
// remote rate limits. Batch runs are strictly sequential.
const batchInterval = time.Second

// RunResult is the user-visible outcome of one pipeline run. Scrape-chain
// failures surface here as Success=false with a summary string, never as a
// returned error.
type RunResult struct {
	Success bool                `json:"success"`
	Data    *model.ScoredResult `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// Service wires the orchestrator, extractor, and scorer behind a result
// cache and optional persistence.
type Service struct {
	orchestrator *scrape.Orchestrator
	extractor    *extract.Extractor
	cache        *cache.ResultCache[*model.ScoredResult]
	store        store.Store
	limiter      *rate.Limiter
	now          func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithStore enables persistence of scored results.
func WithStore(st store.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithCache replaces the default result cache.
func WithCache(c *cache.ResultCache[*model.ScoredResult]) Option {
	return func(s *Service) { s.cache = c }
}

// WithBatchLimiter replaces the default 1 req/s batch pacing.
func WithBatchLimiter(l *rate.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// NewService creates a Service with a default 30-minute result cache and
// sequential 1 req/s batch pacing.
func NewService(orch *scrape.Orchestrator, ext *extract.Extractor, opts ...Option) *Service {
	s := &Service{
		orchestrator: orch,
		extractor:    ext,
		cache:        cache.New[*model.ScoredResult](),
		limiter:      rate.NewLimiter(rate.Every(batchInterval), 1),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scrapes, extracts, and scores a single URL. Returns an error only for
// caller mistakes (invalid URL, missing credential); remote failures are
// reported via RunResult.Success=false.
func (s *Service) Run(ctx context.Context, rawURL string, preferred model.Backend) (*RunResult, error) {
	log := zap.L().With(zap.String("url", rawURL))

	if cached, ok := s.cache.Get(rawURL); ok {
		log.Debug("pipeline: cache hit")
		return &RunResult{Success: true, Data: cached}, nil
	}

	outcome, err := s.orchestrator.ScrapeURL(ctx, rawURL, preferred)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: scrape")
	}
	if !outcome.Success {
		log.Warn("pipeline: scrape failed", zap.String("cause", outcome.Error))
		return &RunResult{Success: false, Error: outcome.Error}, nil
	}

	data, method := s.extractor.Extract(ctx, outcome.Page, outcome.IsAffiliatePage)
	quality := scorer.Score(data, method, outcome.IsAffiliatePage)

	scored := &model.ScoredResult{
		Data:             data,
		Quality:          quality,
		ExtractionMethod: method,
		SourceURL:        rawURL,
		BackendUsed:      outcome.BackendUsed,
		IsAffiliatePage:  outcome.IsAffiliatePage,
		Attempts:         outcome.Attempts,
		ScrapedAt:        s.now().UTC(),
	}

	// Placeholder-content results stay uncached so the URL is retried
	// fresh on the next request.
	if outcome.Page.Markdown != model.PlaceholderMarkdown {
		s.cache.Put(rawURL, scored)
	}

	if s.store != nil {
		if saveErr := s.store.SaveResult(ctx, scored); saveErr != nil {
			log.Warn("pipeline: persist result failed", zap.Error(saveErr))
		}
	}

	log.Info("pipeline: run complete",
		zap.String("backend", scored.BackendUsed),
		zap.String("method", string(scored.ExtractionMethod)),
		zap.Float64("quality", quality.QualityScore),
		zap.String("confidence", string(quality.Confidence)),
	)
	return &RunResult{Success: true, Data: scored}, nil
}

// RunBatch processes URLs strictly sequentially with fixed pacing between
// requests. Per-URL failures are logged and reported in-place; the batch
// itself only fails on context cancellation.
func (s *Service) RunBatch(ctx context.Context, urls []string, preferred model.Backend) ([]*RunResult, error) {
	results := make([]*RunResult, 0, len(urls))
	for i, u := range urls {
		if i > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				return results, eris.Wrap(err, "pipeline: batch wait")
			}
		}
		res, err := s.Run(ctx, u, preferred)
		if err != nil {
			zap.L().Warn("pipeline: batch item rejected",
				zap.String("url", u),
				zap.Error(err),
			)
			res = &RunResult{Success: false, Error: err.Error()}
		}
		results = append(results, res)
	}
	return results, nil
}
