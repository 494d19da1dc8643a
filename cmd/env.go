package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/pagescan/internal/cache"
	"github.com/sells-group/pagescan/internal/creds"
	"github.com/sells-group/pagescan/internal/extract"
	"github.com/sells-group/pagescan/internal/llm"
	"github.com/sells-group/pagescan/internal/model"
	"github.com/sells-group/pagescan/internal/pipeline"
	"github.com/sells-group/pagescan/internal/scrape"
	"github.com/sells-group/pagescan/internal/store"
	"github.com/sells-group/pagescan/pkg/anthropic"
	"github.com/sells-group/pagescan/pkg/apify"
	"github.com/sells-group/pagescan/pkg/firecrawl"
	"github.com/sells-group/pagescan/pkg/perplexity"
)

// env bundles the wired pipeline and its closeable resources.
type env struct {
	Service *pipeline.Service
	Store   store.Store
	Creds   *creds.Store
}

// Close releases resources held by the environment.
func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initService wires adapters, extractor, cache, and optional store from
// the loaded config.
func initService(ctx context.Context) (*env, error) {
	credStore := credsFromConfig()

	fast := scrape.NewFastAdapter(
		firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL)),
	)
	deep := scrape.NewDeepAdapter(
		apify.NewClient(cfg.Apify.Key, apify.WithBaseURL(cfg.Apify.BaseURL)),
		scrape.WithActorID(cfg.Apify.ActorID),
	)

	orch := scrape.NewOrchestrator(fast, deep, credStore,
		scrape.WithFastProfile(profileFromConfig(cfg.Scrape.FastTimeoutSecs, cfg.Scrape.FastWaitSecs, scrape.DefaultFastProfile())),
		scrape.WithDeepProfile(profileFromConfig(cfg.Scrape.DeepTimeoutSecs, cfg.Scrape.DeepWaitSecs, scrape.DefaultDeepProfile())),
	)

	var completers []llm.Completer
	if cfg.Anthropic.Key != "" {
		completers = append(completers, llm.NewAnthropic(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model))
	}
	if cfg.Perplexity.Key != "" {
		completers = append(completers, llm.NewPerplexity(
			perplexity.NewClient(cfg.Perplexity.Key, perplexity.WithBaseURL(cfg.Perplexity.BaseURL)),
			cfg.Perplexity.Model,
		))
	}
	ext := extract.NewExtractor(completers...)

	resultCache := cache.New[*model.ScoredResult](
		cache.WithTTL[*model.ScoredResult](time.Duration(cfg.Cache.TTLMinutes)*time.Minute),
		cache.WithMaxEntries[*model.ScoredResult](cfg.Cache.MaxEntries),
	)

	opts := []pipeline.Option{pipeline.WithCache(resultCache)}
	if cfg.Batch.DelaySecs > 0 {
		opts = append(opts, pipeline.WithBatchLimiter(
			rate.NewLimiter(rate.Every(time.Duration(cfg.Batch.DelaySecs)*time.Second), 1),
		))
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	if st != nil {
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, eris.Wrap(err, "migrate store")
		}
		opts = append(opts, pipeline.WithStore(st))
	}

	return &env{
		Service: pipeline.NewService(orch, ext, opts...),
		Store:   st,
		Creds:   credStore,
	}, nil
}

func credsFromConfig() *creds.Store {
	cs := creds.NewStore()
	cs.Set(creds.ProviderFirecrawl, cfg.Firecrawl.Key)
	cs.Set(creds.ProviderApify, cfg.Apify.Key)
	cs.Set(creds.ProviderAnthropic, cfg.Anthropic.Key)
	cs.Set(creds.ProviderPerplexity, cfg.Perplexity.Key)
	return cs
}

func profileFromConfig(timeoutSecs, waitSecs int, base scrape.Profile) scrape.Profile {
	if timeoutSecs > 0 {
		base.Timeout = time.Duration(timeoutSecs) * time.Second
	}
	if waitSecs > 0 {
		base.Wait = time.Duration(waitSecs) * time.Second
	}
	return base
}
