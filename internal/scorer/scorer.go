// Package scorer computes quality and completeness metrics over extracted
// marketing data so callers can decide whether to accept a result, retry,
// or route it to manual review.
package scorer

import (
	"math"

	"github.com/sells-group/pagescan/internal/model"
)

// Confidence thresholds over the weighted quality score.
const (
	highQualityThreshold    = 0.7
	highLLMQualityThreshold = 0.8
	mediumQualityThreshold  = 0.5
)

// fieldWeights assigns each signal its share of the quality score. Array
// fields are scaled by min(count/target, 1); presence fields contribute
// their full weight.
type fieldWeights struct {
	ProductName  float64
	Headlines    float64
	MainBenefit  float64
	Benefits     float64
	CTAs         float64
	Testimonials float64
	Pricing      float64
	Guarantees   float64
	SocialProof  float64
	Timeframes   float64
}

// standardWeights favors headline/benefit/CTA copy, the load-bearing
// elements of a direct sales page.
var standardWeights = fieldWeights{
	ProductName:  0.15,
	Headlines:    0.15,
	MainBenefit:  0.10,
	Benefits:     0.15,
	CTAs:         0.10,
	Testimonials: 0.10,
	Pricing:      0.10,
	Guarantees:   0.05,
	SocialProof:  0.05,
	Timeframes:   0.05,
}

// affiliateWeights shifts weight toward trust signals: affiliate bridge
// pages live or die on testimonials, pricing claims, and guarantees.
var affiliateWeights = fieldWeights{
	ProductName:  0.10,
	Headlines:    0.10,
	MainBenefit:  0.05,
	Benefits:     0.10,
	CTAs:         0.10,
	Testimonials: 0.20,
	Pricing:      0.15,
	Guarantees:   0.10,
	SocialProof:  0.05,
	Timeframes:   0.05,
}

// Target counts at which an array field earns its full weight.
const (
	targetHeadlines    = 3
	targetBenefits     = 5
	targetCTAs         = 3
	targetTestimonials = 2
	targetPricing      = 1
	targetGuarantees   = 1
	targetSocialProof  = 2
	targetTimeframes   = 2
)

// Score evaluates extracted data and returns a quality report. The weight
// table depends on whether the page was classified as an affiliate bridge
// page; the confidence band additionally considers the extraction method.
func Score(data *model.MarketingData, method model.ExtractionMethod, isAffiliatePage bool) model.QualityReport {
	if data == nil {
		data = model.NewMarketingData()
	}

	w := standardWeights
	if isAffiliatePage {
		w = affiliateWeights
	}

	quality := 0.0
	if hasProductName(data) {
		quality += w.ProductName
	}
	if data.MainBenefit != "" && data.MainBenefit != model.MissingText {
		quality += w.MainBenefit
	}
	quality += arrayScore(len(data.Headlines), targetHeadlines, w.Headlines)
	quality += arrayScore(len(data.Benefits), targetBenefits, w.Benefits)
	quality += arrayScore(len(data.CTAs), targetCTAs, w.CTAs)
	quality += arrayScore(len(data.Testimonials), targetTestimonials, w.Testimonials)
	quality += arrayScore(len(data.Pricing), targetPricing, w.Pricing)
	quality += arrayScore(len(data.Guarantees), targetGuarantees, w.Guarantees)
	quality += arrayScore(len(data.SocialProof), targetSocialProof, w.SocialProof)
	quality += arrayScore(len(data.Timeframes), targetTimeframes, w.Timeframes)
	quality = round2(math.Min(1, math.Max(0, quality)))

	return model.QualityReport{
		QualityScore:      quality,
		CompletenessScore: completeness(data),
		Confidence:        confidence(quality, method),
		MissingFields:     missingFields(data, isAffiliatePage),
	}
}

// completeness weighs the required schema fields (product name, headlines,
// benefits, CTAs) double against the optional ones.
func completeness(data *model.MarketingData) float64 {
	const (
		requiredWeight = 2.0
		optionalWeight = 1.0
		totalWeight    = 4*requiredWeight + 5*optionalWeight
	)

	score := 0.0
	if hasProductName(data) {
		score += requiredWeight
	}
	if len(data.Headlines) > 0 {
		score += requiredWeight
	}
	if len(data.Benefits) > 0 {
		score += requiredWeight
	}
	if len(data.CTAs) > 0 {
		score += requiredWeight
	}
	if len(data.Testimonials) > 0 {
		score += optionalWeight
	}
	if len(data.Pricing) > 0 {
		score += optionalWeight
	}
	if len(data.Guarantees) > 0 {
		score += optionalWeight
	}
	if len(data.SocialProof) > 0 {
		score += optionalWeight
	}
	if len(data.Timeframes) > 0 {
		score += optionalWeight
	}
	return round2(score / totalWeight)
}

func confidence(quality float64, method model.ExtractionMethod) model.Confidence {
	switch {
	case method == model.MethodLLM && quality > highLLMQualityThreshold:
		return model.ConfidenceHigh
	case quality > highQualityThreshold:
		return model.ConfidenceHigh
	case quality > mediumQualityThreshold:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// missingFields reports fields failing their presence check. Trust-signal
// fields are only flagged on affiliate pages, where their absence is a
// meaningful quality defect.
func missingFields(data *model.MarketingData, isAffiliatePage bool) []string {
	missing := []string{}
	if !hasProductName(data) {
		missing = append(missing, "product_name")
	}
	if len(data.Headlines) == 0 {
		missing = append(missing, "headlines")
	}
	if len(data.Benefits) == 0 {
		missing = append(missing, "benefits")
	}
	if len(data.CTAs) == 0 {
		missing = append(missing, "ctas")
	}
	if isAffiliatePage {
		if len(data.Testimonials) == 0 {
			missing = append(missing, "testimonials")
		}
		if len(data.Pricing) == 0 {
			missing = append(missing, "pricing")
		}
		if len(data.Guarantees) == 0 {
			missing = append(missing, "guarantees")
		}
	}
	return missing
}

func hasProductName(data *model.MarketingData) bool {
	return data.ProductName != "" && data.ProductName != model.UnknownProduct
}

func arrayScore(count, target int, weight float64) float64 {
	if count <= 0 {
		return 0
	}
	return weight * math.Min(float64(count)/float64(target), 1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
