// Package scrape orchestrates remote scraping back-ends: per-URL back-end
// selection, retry with exponential backoff, and a single fallback to the
// alternate back-end on exhaustion.
package scrape

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pagescan/internal/model"
)

// Profile is the generic scrape profile each adapter maps onto its remote
// API's parameters.
type Profile struct {
	Timeout     time.Duration // per remote call
	Wait        time.Duration // JS-execution wait before capture
	IncludeHTML bool

	// PageFunction is an optional in-page extraction script. Only the deep
	// back-end honors it; its return value becomes RawPage.StructuredJSON.
	PageFunction string
}

// DefaultFastProfile is the profile for the fast-render back-end.
func DefaultFastProfile() Profile {
	return Profile{
		Timeout:     15 * time.Second,
		Wait:        2 * time.Second,
		IncludeHTML: true,
	}
}

// DefaultDeepProfile is the profile for the deep/headless back-end.
func DefaultDeepProfile() Profile {
	return Profile{
		Timeout:     30 * time.Second,
		Wait:        5 * time.Second,
		IncludeHTML: true,
	}
}

// Scraper wraps one remote scraping back-end behind a uniform contract.
type Scraper interface {
	Scrape(ctx context.Context, url string, p Profile) (*model.RawPage, error)
	Name() string
}

// Failure taxonomy surfaced to callers. Network-class failures are wrapped
// as *BackendError and absorbed by the retry/fallback chain; only these two
// fail fast.
var (
	ErrInvalidURL        = eris.New("scrape: invalid url")
	ErrCredentialMissing = eris.New("scrape: no credential configured for back-end")
)

// BackendError is a remote or network failure from one back-end.
type BackendError struct {
	Backend string
	Code    string
	Message string
}

func (e *BackendError) Error() string {
	if e.Code != "" {
		return e.Backend + ": " + e.Code + ": " + e.Message
	}
	return e.Backend + ": " + e.Message
}
