package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/pagescan/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		affiliate   bool
		complex     bool
		platform    string
		backend     model.Backend
	}{
		{
			name:     "plain site",
			url:      "https://example.com/offer",
			platform: "generic",
			backend:  model.BackendFast,
		},
		{
			name:      "clickbank hoplink",
			url:       "https://12345.hop.clickbank.net",
			affiliate: true,
			platform:  "hop.clickbank.net",
			backend:   model.BackendDeep,
		},
		{
			name:      "affiliate query param",
			url:       "https://example.com/lp?affiliate=abc",
			affiliate: true,
			platform:  "generic",
			backend:   model.BackendDeep,
		},
		{
			name:     "clickfunnels page",
			url:      "https://offer.clickfunnels.com/sales",
			complex:  true,
			platform: "clickfunnels",
			backend:  model.BackendDeep,
		},
		{
			name:     "shopify storefront",
			url:      "https://shop.myshopify.com/products/widget",
			complex:  true,
			platform: "shopify",
			backend:  model.BackendDeep,
		},
		{
			name:      "affiliate on complex platform",
			url:       "https://offer.samcart.com/checkout?aff_id=9",
			affiliate: true,
			complex:   true,
			backend:   model.BackendDeep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Classify(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.affiliate, c.IsAffiliate)
			assert.Equal(t, tt.complex, c.IsComplexPlatform)
			if tt.platform != "" {
				assert.Equal(t, tt.platform, c.Platform)
			}
			assert.Equal(t, tt.backend, c.RecommendedBackend)
			assert.NotEmpty(t, c.Reasoning)
		})
	}
}

func TestClassifyInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://example.com", "example.com/no-scheme"} {
		_, err := Classify(raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}
