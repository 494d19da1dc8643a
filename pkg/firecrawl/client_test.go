package firecrawl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrape(t *testing.T) {
	var gotReq ScrapeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scrape", r.URL.Path)
		assert.Equal(t, "Bearer fc-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(ScrapeResponse{
			Success: true,
			Data: PageData{
				Markdown: "# Acme Widget",
				HTML:     "<h1>Acme Widget</h1>",
				Metadata: Metadata{
					Title:       "Acme Widget",
					Description: "Widgets that work",
					SourceURL:   "https://example.com/acme",
					StatusCode:  200,
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("fc-key", WithBaseURL(srv.URL))
	resp, err := c.Scrape(context.Background(), ScrapeRequest{
		URL:         "https://example.com/acme",
		Formats:     []string{"markdown", "html"},
		ExcludeTags: []string{"nav", "footer"},
		WaitFor:     2000,
		Timeout:     15000,
		BlockAds:    true,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "# Acme Widget", resp.Data.Markdown)
	assert.Equal(t, "Acme Widget", resp.Data.Metadata.Title)
	assert.Equal(t, "https://example.com/acme", resp.Data.Metadata.SourceURL)

	assert.Equal(t, "https://example.com/acme", gotReq.URL)
	assert.Equal(t, []string{"markdown", "html"}, gotReq.Formats)
	assert.Equal(t, []string{"nav", "footer"}, gotReq.ExcludeTags)
	assert.Equal(t, 2000, gotReq.WaitFor)
	assert.Equal(t, 15000, gotReq.Timeout)
	assert.True(t, gotReq.BlockAds)
}

func TestScrapeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("fc-key", WithBaseURL(srv.URL))
	_, err := c.Scrape(context.Background(), ScrapeRequest{URL: "https://example.com"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "rate limited")
}

func TestScrapeUnsuccessfulPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ScrapeResponse{Success: false, Error: "render failed"})
	}))
	defer srv.Close()

	c := NewClient("fc-key", WithBaseURL(srv.URL))
	resp, err := c.Scrape(context.Background(), ScrapeRequest{URL: "https://example.com"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "render failed", resp.Error)
}

func TestScrapeMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient("fc-key", WithBaseURL(srv.URL))
	_, err := c.Scrape(context.Background(), ScrapeRequest{URL: "https://example.com"})
	assert.Error(t, err)
}
