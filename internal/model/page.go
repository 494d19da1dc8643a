package model

// Backend identifies which scraping back-end handles a URL.
type Backend string

const (
	// BackendAuto defers the choice to the URL classifier.
	BackendAuto Backend = "auto"
	// BackendFast is the synchronous fast-render back-end (Firecrawl).
	BackendFast Backend = "fast"
	// BackendDeep is the job-based headless back-end (Apify).
	BackendDeep Backend = "deep"
)

// ParseBackend maps a user-supplied string to a Backend, defaulting to auto.
func ParseBackend(s string) Backend {
	switch Backend(s) {
	case BackendFast:
		return BackendFast
	case BackendDeep:
		return BackendDeep
	default:
		return BackendAuto
	}
}

// PageMetadata holds page-level metadata reported by a scrape back-end.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
}

// RawPage is the normalized output of a single scrape attempt. Each adapter
// is responsible for mapping its provider's response shape into this type;
// downstream code never sees provider payloads. Immutable once created.
type RawPage struct {
	Markdown       string         `json:"markdown"`
	HTML           string         `json:"html,omitempty"`
	StructuredJSON map[string]any `json:"structured_json,omitempty"`
	Metadata       PageMetadata   `json:"metadata"`
}

// PlaceholderMarkdown is substituted when a back-end succeeds but returns no
// extractable content. The pipeline still produces a (low-quality) result
// instead of aborting.
const PlaceholderMarkdown = "No content extracted"

// IsEmpty reports whether the page carries no extractable content.
func (p *RawPage) IsEmpty() bool {
	return p == nil || (p.Markdown == "" && p.HTML == "")
}

// Body returns the best available text body for extraction: markdown when
// present, otherwise HTML.
func (p *RawPage) Body() string {
	if p == nil {
		return ""
	}
	if p.Markdown != "" {
		return p.Markdown
	}
	return p.HTML
}

// ScrapeOutcome is the orchestrator's result for one URL. Network-class
// failures never propagate as errors past the orchestrator; they surface
// here as Success=false with a human-readable Error.
type ScrapeOutcome struct {
	Success         bool     `json:"success"`
	Page            *RawPage `json:"page,omitempty"`
	Error           string   `json:"error,omitempty"`
	BackendUsed     string   `json:"backend_used"`
	IsAffiliatePage bool     `json:"is_affiliate_page"`
	Attempts        int      `json:"attempts"`
}
