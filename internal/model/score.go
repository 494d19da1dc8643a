package model

import "time"

// ExtractionMethod identifies which strategy produced a MarketingData.
type ExtractionMethod string

const (
	MethodLLM       ExtractionMethod = "llm"
	MethodHeuristic ExtractionMethod = "heuristic"
	MethodHybrid    ExtractionMethod = "hybrid"
)

// Confidence buckets the quality score for callers that just need a verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// QualityReport holds the scorer's verdict over one MarketingData.
type QualityReport struct {
	QualityScore      float64    `json:"quality_score"`
	CompletenessScore float64    `json:"completeness_score"`
	Confidence        Confidence `json:"confidence"`
	MissingFields     []string   `json:"missing_fields"`
}

// ScoredResult is the final record returned to callers: the canonical
// extraction plus quality metrics and provenance. Computed once per
// pipeline run; immutable.
type ScoredResult struct {
	Data             *MarketingData   `json:"data"`
	Quality          QualityReport    `json:"quality"`
	ExtractionMethod ExtractionMethod `json:"extraction_method"`

	SourceURL       string    `json:"source_url"`
	BackendUsed     string    `json:"backend_used"`
	IsAffiliatePage bool      `json:"is_affiliate_page"`
	Attempts        int       `json:"attempts"`
	ScrapedAt       time.Time `json:"scraped_at"`
}
