package model

import "strings"

// Category classifies the product being sold on a page.
type Category string

const (
	CategorySoftware Category = "software"
	CategoryPhysical Category = "physical"
	CategoryService  Category = "service"
	CategoryInfo     Category = "info"
	CategoryHealth   Category = "health"
)

// DefaultCategory is substituted for missing or out-of-enum values.
const DefaultCategory = CategoryInfo

// ValidCategory reports whether c is one of the fixed category values.
func ValidCategory(c Category) bool {
	switch c {
	case CategorySoftware, CategoryPhysical, CategoryService, CategoryInfo, CategoryHealth:
		return true
	}
	return false
}

// PricePoint buckets the page's detected price level.
type PricePoint string

const (
	PriceLow     PricePoint = "low"
	PriceMedium  PricePoint = "medium"
	PriceHigh    PricePoint = "high"
	PricePremium PricePoint = "premium"
)

// DefaultPricePoint is substituted for missing or out-of-enum values.
const DefaultPricePoint = PriceMedium

// ValidPricePoint reports whether p is one of the fixed price-point values.
func ValidPricePoint(p PricePoint) bool {
	switch p {
	case PriceLow, PriceMedium, PriceHigh, PricePremium:
		return true
	}
	return false
}

// Sentinel defaults. Absence is always represented, never a missing key.
const (
	UnknownProduct = "Unknown Product"
	MissingText    = "MISSING"
)

// Caps bound each evidence list. They exist to bound prompt and payload
// size downstream, not to rank significance.
const (
	MaxHeadlines    = 10
	MaxTestimonials = 10
	MaxPricing      = 8
	MaxBenefits     = 20
	MaxCTAs         = 8
	MaxGuarantees   = 8
	MaxTimeframes   = 10
	MaxSocialProof  = 10
)

// MarketingData is the canonical structured record of a page's persuasion
// elements. Every field always holds a defined value; constructors and
// Normalize guarantee the schema is never partially undefined.
type MarketingData struct {
	ProductName string `json:"product_name"`
	MainBenefit string `json:"main_benefit"`

	Headlines    []string `json:"headlines"`
	Testimonials []string `json:"testimonials"`
	Pricing      []string `json:"pricing"`
	Benefits     []string `json:"benefits"`
	CTAs         []string `json:"ctas"`
	Guarantees   []string `json:"guarantees"`
	Timeframes   []string `json:"timeframes"`
	SocialProof  []string `json:"social_proof"`

	Category       Category   `json:"category"`
	Industry       string     `json:"industry"`
	TargetAudience string     `json:"target_audience"`
	PricePoint     PricePoint `json:"price_point"`
}

// NewMarketingData returns a record with every field at its default.
func NewMarketingData() *MarketingData {
	return &MarketingData{
		ProductName:    UnknownProduct,
		MainBenefit:    MissingText,
		Headlines:      []string{},
		Testimonials:   []string{},
		Pricing:        []string{},
		Benefits:       []string{},
		CTAs:           []string{},
		Guarantees:     []string{},
		Timeframes:     []string{},
		SocialProof:    []string{},
		Category:       DefaultCategory,
		Industry:       "General",
		TargetAudience: MissingText,
		PricePoint:     DefaultPricePoint,
	}
}

// Normalize is the shared clean/coerce/default pass applied to every
// strategy's output before it is accepted: trims strings, substitutes
// defaults for empty identity fields, de-duplicates and caps each list,
// and constrains enum fields to their fixed value sets.
func (m *MarketingData) Normalize() {
	m.ProductName = strings.TrimSpace(m.ProductName)
	if m.ProductName == "" {
		m.ProductName = UnknownProduct
	}
	m.MainBenefit = strings.TrimSpace(m.MainBenefit)
	if m.MainBenefit == "" {
		m.MainBenefit = MissingText
	}
	m.Industry = strings.TrimSpace(m.Industry)
	if m.Industry == "" {
		m.Industry = "General"
	}
	m.TargetAudience = strings.TrimSpace(m.TargetAudience)
	if m.TargetAudience == "" {
		m.TargetAudience = MissingText
	}

	m.Headlines = CleanList(m.Headlines, MaxHeadlines)
	m.Testimonials = CleanList(m.Testimonials, MaxTestimonials)
	m.Pricing = CleanList(m.Pricing, MaxPricing)
	m.Benefits = CleanList(m.Benefits, MaxBenefits)
	m.CTAs = CleanList(m.CTAs, MaxCTAs)
	m.Guarantees = CleanList(m.Guarantees, MaxGuarantees)
	m.Timeframes = CleanList(m.Timeframes, MaxTimeframes)
	m.SocialProof = CleanList(m.SocialProof, MaxSocialProof)

	if !ValidCategory(m.Category) {
		m.Category = DefaultCategory
	}
	if !ValidPricePoint(m.PricePoint) {
		m.PricePoint = DefaultPricePoint
	}
}

// Incomplete reports whether the record is missing the signals the merge
// pass tries to fill from DOM extraction.
func (m *MarketingData) Incomplete() bool {
	return m.ProductName == UnknownProduct ||
		len(m.Headlines) == 0 ||
		len(m.Benefits) == 0 ||
		len(m.CTAs) == 0
}

// CleanList trims entries, drops empties, de-duplicates case-insensitively
// preserving first occurrence order, and caps the result at max. Never
// returns nil.
func CleanList(in []string, max int) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) >= max {
			break
		}
	}
	return out
}
