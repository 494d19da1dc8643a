// Package extract converts a RawPage into the canonical marketing-data
// schema using three strategies in priority order: pre-structured JSON
// from the back-end, LLM-assisted extraction, and the always-available
// regex/DOM heuristics. Every strategy's output is validated and defaulted
// against the schema before acceptance; extraction never fails.
package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/pagescan/internal/llm"
	"github.com/sells-group/pagescan/internal/model"
)

// Extractor runs the strategy chain. Completers may be empty, in which
// case the LLM strategy is skipped entirely.
type Extractor struct {
	completers []llm.Completer
}

// NewExtractor creates an Extractor over the given completion back-ends,
// tried in order.
func NewExtractor(completers ...llm.Completer) *Extractor {
	return &Extractor{completers: completers}
}

// Extract produces a schema-complete MarketingData from a RawPage along
// with the method that produced it. A nil or content-empty page yields the
// all-defaults record via the heuristic path.
func (e *Extractor) Extract(ctx context.Context, page *model.RawPage, isAffiliatePage bool) (*model.MarketingData, model.ExtractionMethod) {
	data, method := e.primary(ctx, page, isAffiliatePage)

	// Merge pass: top up an incomplete primary result from the page DOM.
	if page != nil && data.Incomplete() && page.HTML != "" {
		dom := domExtract(page.HTML)
		before := *data
		mergeDOM(data, dom)
		if changed(&before, data) {
			method = model.MethodHybrid
		}
	}

	data.Normalize()
	return data, method
}

// primary runs the ordered strategy chain and returns the first accepted
// result.
func (e *Extractor) primary(ctx context.Context, page *model.RawPage, isAffiliatePage bool) (*model.MarketingData, model.ExtractionMethod) {
	if page == nil {
		return model.NewMarketingData(), model.MethodHeuristic
	}

	// Strategy 1: structured JSON delivered in-band by the back-end. The
	// payload originates from an LLM-backed or scripted extraction step
	// upstream, so it is tagged as the llm method.
	if page.StructuredJSON != nil {
		if data := coerceStructured(page.StructuredJSON); usableStructured(data) {
			return data, model.MethodLLM
		}
		zap.L().Debug("extract: structured payload too sparse, falling through")
	}

	// Strategy 2: LLM-assisted extraction, skipped when no completion
	// back-end is configured.
	if len(e.completers) > 0 {
		if data, err := llmExtract(ctx, e.completers, page, isAffiliatePage); err == nil {
			return data, model.MethodLLM
		} else {
			zap.L().Debug("extract: llm strategy exhausted, using heuristics", zap.Error(err))
		}
	}

	// Strategy 3: heuristics. Always available, never fails.
	return heuristicExtract(page), model.MethodHeuristic
}

// changed reports whether the merge pass actually contributed anything.
func changed(before, after *model.MarketingData) bool {
	return before.ProductName != after.ProductName ||
		len(before.Headlines) != len(after.Headlines) ||
		len(before.Testimonials) != len(after.Testimonials) ||
		len(before.Pricing) != len(after.Pricing) ||
		len(before.Benefits) != len(after.Benefits) ||
		len(before.CTAs) != len(after.CTAs) ||
		len(before.Guarantees) != len(after.Guarantees)
}
