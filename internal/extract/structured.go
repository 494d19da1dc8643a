package extract

import (
	"strings"

	"github.com/sells-group/pagescan/internal/model"
)

// structured JSON field names accepted from back-ends and completion
// responses. Aliases cover the page-function output shape.
var fieldAliases = map[string][]string{
	"product_name":    {"product_name", "productName", "title"},
	"main_benefit":    {"main_benefit", "mainBenefit"},
	"headlines":       {"headlines"},
	"testimonials":    {"testimonials"},
	"pricing":         {"pricing", "prices"},
	"benefits":        {"benefits"},
	"ctas":            {"ctas", "callsToAction"},
	"guarantees":      {"guarantees"},
	"timeframes":      {"timeframes"},
	"social_proof":    {"social_proof", "socialProof"},
	"category":        {"category"},
	"industry":        {"industry"},
	"target_audience": {"target_audience", "targetAudience"},
	"price_point":     {"price_point", "pricePoint"},
}

// coerceStructured cleans a semi-structured payload field by field into the
// canonical schema: strings trimmed, lists capped and de-duplicated, enum
// fields validated against their fixed value sets with the schema default
// substituted for anything invalid or missing.
func coerceStructured(raw map[string]any) *model.MarketingData {
	data := model.NewMarketingData()
	if raw == nil {
		return data
	}

	if v := lookupString(raw, "product_name"); v != "" {
		data.ProductName = v
	}
	if v := lookupString(raw, "main_benefit"); v != "" {
		data.MainBenefit = v
	}
	if v := lookupString(raw, "industry"); v != "" {
		data.Industry = v
	}
	if v := lookupString(raw, "target_audience"); v != "" {
		data.TargetAudience = v
	}

	data.Headlines = lookupList(raw, "headlines")
	data.Testimonials = lookupList(raw, "testimonials")
	data.Pricing = lookupList(raw, "pricing")
	data.Benefits = lookupList(raw, "benefits")
	data.CTAs = lookupList(raw, "ctas")
	data.Guarantees = lookupList(raw, "guarantees")
	data.Timeframes = lookupList(raw, "timeframes")
	data.SocialProof = lookupList(raw, "social_proof")

	// Out-of-enum values fall back to the defaults inside Normalize.
	data.Category = model.Category(strings.ToLower(lookupString(raw, "category")))
	data.PricePoint = model.PricePoint(strings.ToLower(lookupString(raw, "price_point")))

	data.Normalize()
	return data
}

// usable reports whether a structured payload carries enough signal to be
// accepted as an extraction strategy result rather than falling through.
func usableStructured(data *model.MarketingData) bool {
	return data.ProductName != model.UnknownProduct ||
		len(data.Headlines) > 0 ||
		len(data.Benefits) > 0 ||
		len(data.Testimonials) > 0
}

func lookupString(raw map[string]any, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := raw[alias]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func lookupList(raw map[string]any, field string) []string {
	for _, alias := range fieldAliases[field] {
		v, ok := raw[alias]
		if !ok {
			continue
		}
		switch vv := v.(type) {
		case []string:
			return vv
		case []any:
			out := make([]string, 0, len(vv))
			for _, item := range vv {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return []string{}
}
