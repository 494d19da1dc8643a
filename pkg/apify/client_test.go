package apify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRun(t *testing.T) {
	var gotInput map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/acts/apify~web-scraper/runs", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))

		json.NewEncoder(w).Encode(runEnvelope{Data: Run{
			ID:               "run-1",
			ActID:            "act-1",
			Status:           StatusRunning,
			DefaultDatasetID: "ds-1",
		}})
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL))
	run, err := c.StartRun(context.Background(), "apify~web-scraper", map[string]any{"maxPagesPerCrawl": 1})
	require.NoError(t, err)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Equal(t, "ds-1", run.DefaultDatasetID)
	assert.Equal(t, float64(1), gotInput["maxPagesPerCrawl"])
}

func TestGetRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/actor-runs/run-1", r.URL.Path)
		json.NewEncoder(w).Encode(runEnvelope{Data: Run{ID: "run-1", Status: StatusSucceeded}})
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL))
	run, err := c.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, run.Status)
	assert.True(t, run.Finished())
}

func TestGetDatasetItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/datasets/ds-1/items", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]map[string]any{{"title": "Acme Widget"}})
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL))
	items, err := c.GetDatasetItems(context.Background(), "ds-1", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme Widget", items[0]["title"])
}

func TestAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"user-not-found"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad", WithBaseURL(srv.URL))
	_, err := c.GetRun(context.Background(), "run-1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestRunFinished(t *testing.T) {
	for status, want := range map[string]bool{
		StatusReady:     false,
		StatusRunning:   false,
		StatusSucceeded: true,
		StatusFailed:    true,
		StatusAborted:   true,
		StatusTimedOut:  true,
	} {
		assert.Equal(t, want, (&Run{Status: status}).Finished(), status)
	}
}
