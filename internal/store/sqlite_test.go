package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/pagescan/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleResult(url string) *model.ScoredResult {
	data := model.NewMarketingData()
	data.ProductName = "Acme Widget"
	data.Headlines = []string{"Get amazing results"}
	return &model.ScoredResult{
		Data: data,
		Quality: model.QualityReport{
			QualityScore:      0.62,
			CompletenessScore: 0.4,
			Confidence:        model.ConfidenceMedium,
			MissingFields:     []string{"ctas"},
		},
		ExtractionMethod: model.MethodHeuristic,
		SourceURL:        url,
		BackendUsed:      "fast",
		Attempts:         1,
		ScrapedAt:        time.Now().UTC().Truncate(time.Second),
	}
}

func TestSQLiteSaveGetRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	want := sampleResult("https://example.com/acme")
	require.NoError(t, s.SaveResult(ctx, want))

	got, err := s.GetResult(ctx, "https://example.com/acme")
	require.NoError(t, err)
	assert.Equal(t, want.SourceURL, got.SourceURL)
	assert.Equal(t, want.Data.ProductName, got.Data.ProductName)
	assert.Equal(t, want.Quality, got.Quality)
	assert.Equal(t, want.ExtractionMethod, got.ExtractionMethod)
}

func TestSQLiteGetReturnsLatest(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	old := sampleResult("https://example.com/acme")
	old.Quality.QualityScore = 0.1
	old.ScrapedAt = time.Now().Add(-time.Hour).UTC()
	require.NoError(t, s.SaveResult(ctx, old))

	newer := sampleResult("https://example.com/acme")
	newer.Quality.QualityScore = 0.9
	require.NoError(t, s.SaveResult(ctx, newer))

	got, err := s.GetResult(ctx, "https://example.com/acme")
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.Quality.QualityScore)
}

func TestSQLiteGetNotFound(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetResult(context.Background(), "https://example.com/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteListResults(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for _, u := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		require.NoError(t, s.SaveResult(ctx, sampleResult(u)))
	}

	results, err := s.ListResults(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	all, err := s.ListResults(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOpenDriverSelection(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, Config{})
	require.NoError(t, err)
	assert.Nil(t, st)

	st, err = Open(ctx, Config{Driver: "sqlite", DatabaseURL: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	require.NotNil(t, st)
	st.Close()

	_, err = Open(ctx, Config{Driver: "mysql"})
	assert.Error(t, err)
}
