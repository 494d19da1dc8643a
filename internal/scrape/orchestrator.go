package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pagescan/internal/classify"
	"github.com/sells-group/pagescan/internal/creds"
	"github.com/sells-group/pagescan/internal/model"
	"github.com/sells-group/pagescan/internal/resilience"
)

// Retry budgets per back-end. The deep back-end's job polling is already
// slow, so it gets a smaller budget.
const (
	fastMaxAttempts = 3
	deepMaxAttempts = 2
)

// Orchestrator drives the scrape back-ends for a single URL: classifier-led
// selection, retry with backoff, one fallback attempt on the alternate
// back-end, and provenance recording.
type Orchestrator struct {
	fast  Scraper
	deep  Scraper
	creds *creds.Store

	fastProfile Profile
	deepProfile Profile

	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithFastProfile overrides the fast back-end's scrape profile.
func WithFastProfile(p Profile) OrchestratorOption {
	return func(o *Orchestrator) { o.fastProfile = p }
}

// WithDeepProfile overrides the deep back-end's scrape profile.
func WithDeepProfile(p Profile) OrchestratorOption {
	return func(o *Orchestrator) { o.deepProfile = p }
}

// WithRetryBackoff overrides the backoff schedule shared by both back-ends.
func WithRetryBackoff(initial, max time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.initialBackoff = initial
		o.maxBackoff = max
	}
}

// NewOrchestrator creates an Orchestrator over the two back-end adapters.
func NewOrchestrator(fast, deep Scraper, credStore *creds.Store, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		fast:        fast,
		deep:        deep,
		creds:       credStore,
		fastProfile: DefaultFastProfile(),
		deepProfile: DefaultDeepProfile(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ScrapeURL scrapes one URL. Invalid input and missing credentials fail
// fast with an error; network-class failures are absorbed into the outcome
// (Success=false, Error set) after retries and the fallback attempt are
// exhausted.
func (o *Orchestrator) ScrapeURL(ctx context.Context, rawURL string, preferred model.Backend) (*model.ScrapeOutcome, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !validURL(rawURL) {
		return nil, eris.Wrapf(ErrInvalidURL, "%q", rawURL)
	}

	isAffiliate := false
	backend := preferred
	if backend == model.BackendAuto || backend == "" {
		cls, err := classify.Classify(rawURL)
		if err != nil {
			return nil, eris.Wrapf(ErrInvalidURL, "%q", rawURL)
		}
		backend = cls.RecommendedBackend
		isAffiliate = cls.IsAffiliate
		zap.L().Debug("scrape: classifier routing",
			zap.String("url", rawURL),
			zap.String("platform", cls.Platform),
			zap.String("backend", string(backend)),
			zap.String("reasoning", cls.Reasoning),
		)
	} else if cls, err := classify.Classify(rawURL); err == nil {
		// Explicit back-end choice still wants the affiliate flag for
		// downstream weighting.
		isAffiliate = cls.IsAffiliate
	}

	primary, fallback := o.resolve(backend)
	if err := o.checkCredential(primary); err != nil {
		return nil, err
	}

	outcome := &model.ScrapeOutcome{
		IsAffiliatePage: isAffiliate,
		BackendUsed:     primary.Name(),
	}

	page, err := o.attempt(ctx, primary, rawURL, outcome)
	if err != nil {
		zap.L().Warn("scrape: primary back-end exhausted, trying fallback",
			zap.String("url", rawURL),
			zap.String("primary", primary.Name()),
			zap.String("fallback", fallback.Name()),
			zap.Error(err),
		)

		if credErr := o.checkCredential(fallback); credErr != nil {
			outcome.Error = err.Error()
			return outcome, nil
		}

		outcome.BackendUsed = fallback.Name() + "-fallback"
		outcome.Attempts++
		page, err = fallback.Scrape(ctx, rawURL, o.profile(fallback))
		if err != nil {
			outcome.Error = err.Error()
			return outcome, nil
		}
	}

	outcome.Success = true
	if page.IsEmpty() {
		// Absence of content is a low-quality result, not a failure.
		page = &model.RawPage{
			Markdown: model.PlaceholderMarkdown,
			Metadata: page.Metadata,
		}
		if page.Metadata.SourceURL == "" {
			page.Metadata.SourceURL = rawURL
		}
	}
	outcome.Page = page
	return outcome, nil
}

// attempt runs the retry loop against one back-end, recording the attempt
// count in the outcome.
func (o *Orchestrator) attempt(ctx context.Context, s Scraper, rawURL string, outcome *model.ScrapeOutcome) (*model.RawPage, error) {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = fastMaxAttempts
	if s.Name() == string(model.BackendDeep) {
		cfg.MaxAttempts = deepMaxAttempts
	}
	if o.initialBackoff > 0 {
		cfg.InitialBackoff = o.initialBackoff
	}
	if o.maxBackoff > 0 {
		cfg.MaxBackoff = o.maxBackoff
	}
	cfg.OnRetry = resilience.RetryLogger(s.Name(), rawURL)

	profile := o.profile(s)
	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (*model.RawPage, error) {
		outcome.Attempts++
		return s.Scrape(ctx, rawURL, profile)
	})
}

func (o *Orchestrator) resolve(backend model.Backend) (primary, fallback Scraper) {
	if backend == model.BackendDeep {
		return o.deep, o.fast
	}
	return o.fast, o.deep
}

func (o *Orchestrator) profile(s Scraper) Profile {
	if s.Name() == string(model.BackendDeep) {
		return o.deepProfile
	}
	return o.fastProfile
}

func (o *Orchestrator) checkCredential(s Scraper) error {
	if o.creds == nil {
		return nil
	}
	var p creds.Provider
	switch s.Name() {
	case string(model.BackendFast):
		p = creds.ProviderFirecrawl
	case string(model.BackendDeep):
		p = creds.ProviderApify
	default:
		return nil
	}
	if !o.creds.Has(p) {
		return eris.Wrapf(ErrCredentialMissing, "%s", p)
	}
	return nil
}

func validURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https")
}
