package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarketingDataDefaults(t *testing.T) {
	d := NewMarketingData()

	assert.Equal(t, UnknownProduct, d.ProductName)
	assert.Equal(t, MissingText, d.MainBenefit)
	assert.Equal(t, DefaultCategory, d.Category)
	assert.Equal(t, DefaultPricePoint, d.PricePoint)
	assert.Equal(t, "General", d.Industry)
	assert.Equal(t, MissingText, d.TargetAudience)

	// Every list is present and empty, never nil: absence is represented.
	for name, list := range map[string][]string{
		"headlines":    d.Headlines,
		"testimonials": d.Testimonials,
		"pricing":      d.Pricing,
		"benefits":     d.Benefits,
		"ctas":         d.CTAs,
		"guarantees":   d.Guarantees,
		"timeframes":   d.Timeframes,
		"social_proof": d.SocialProof,
	} {
		assert.NotNil(t, list, name)
		assert.Empty(t, list, name)
	}
}

func TestMarketingDataJSONHasNoMissingKeys(t *testing.T) {
	buf, err := json.Marshal(NewMarketingData())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf, &m))
	for _, key := range []string{
		"product_name", "main_benefit", "headlines", "testimonials",
		"pricing", "benefits", "ctas", "guarantees", "timeframes",
		"social_proof", "category", "industry", "target_audience", "price_point",
	} {
		assert.Contains(t, m, key)
	}
}

func TestNormalizeSubstitutesDefaults(t *testing.T) {
	d := &MarketingData{
		ProductName:    "  ",
		MainBenefit:    "",
		Category:       Category("gadget"),
		PricePoint:     PricePoint("free"),
		Headlines:      []string{" One ", "one", "", "Two"},
		Testimonials:   nil,
		Industry:       " ",
		TargetAudience: "",
	}
	d.Normalize()

	assert.Equal(t, UnknownProduct, d.ProductName)
	assert.Equal(t, MissingText, d.MainBenefit)
	assert.Equal(t, DefaultCategory, d.Category)
	assert.Equal(t, DefaultPricePoint, d.PricePoint)
	assert.Equal(t, "General", d.Industry)
	assert.Equal(t, MissingText, d.TargetAudience)
	assert.Equal(t, []string{"One", "Two"}, d.Headlines)
	assert.NotNil(t, d.Testimonials)
}

func TestNormalizeCapsLists(t *testing.T) {
	d := NewMarketingData()
	for i := 0; i < 30; i++ {
		d.Headlines = append(d.Headlines, strings.Repeat("h", i+1))
		d.Benefits = append(d.Benefits, strings.Repeat("b", i+1))
	}
	d.Normalize()

	assert.Len(t, d.Headlines, MaxHeadlines)
	assert.Len(t, d.Benefits, MaxBenefits)
}

func TestCleanList(t *testing.T) {
	in := []string{" a ", "A", "b", "", "  ", "c", "B"}
	assert.Equal(t, []string{"a", "b"}, CleanList(in, 2))
	assert.Equal(t, []string{"a", "b", "c"}, CleanList(in, 10))
}

func TestIncomplete(t *testing.T) {
	d := NewMarketingData()
	assert.True(t, d.Incomplete())

	d.ProductName = "Acme"
	d.Headlines = []string{"h"}
	d.Benefits = []string{"b"}
	assert.True(t, d.Incomplete(), "missing ctas")

	d.CTAs = []string{"Buy Now"}
	assert.False(t, d.Incomplete())
}

func TestValidEnums(t *testing.T) {
	assert.True(t, ValidCategory(CategoryHealth))
	assert.False(t, ValidCategory(Category("gadget")))
	assert.True(t, ValidPricePoint(PricePremium))
	assert.False(t, ValidPricePoint(PricePoint("free")))
}

func TestParseBackend(t *testing.T) {
	assert.Equal(t, BackendFast, ParseBackend("fast"))
	assert.Equal(t, BackendDeep, ParseBackend("deep"))
	assert.Equal(t, BackendAuto, ParseBackend("auto"))
	assert.Equal(t, BackendAuto, ParseBackend(""))
	assert.Equal(t, BackendAuto, ParseBackend("turbo"))
}

func TestRawPageHelpers(t *testing.T) {
	var nilPage *RawPage
	assert.True(t, nilPage.IsEmpty())
	assert.Equal(t, "", nilPage.Body())

	assert.True(t, (&RawPage{}).IsEmpty())
	assert.False(t, (&RawPage{Markdown: "# Hi"}).IsEmpty())
	assert.False(t, (&RawPage{HTML: "<p>Hi</p>"}).IsEmpty())

	p := &RawPage{Markdown: "md", HTML: "html"}
	assert.Equal(t, "md", p.Body())
	assert.Equal(t, "html", (&RawPage{HTML: "html"}).Body())
}
