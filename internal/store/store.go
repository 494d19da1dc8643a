// Package store persists scored results for downstream consumers. The
// in-memory result cache remains authoritative for TTL semantics; the store
// is an optional durable record.
package store

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pagescan/internal/model"
)

// ErrNotFound is returned when no result exists for the requested URL.
var ErrNotFound = errors.New("store: result not found")

// Store defines the persistence interface for scored results.
type Store interface {
	SaveResult(ctx context.Context, result *model.ScoredResult) error
	GetResult(ctx context.Context, sourceURL string) (*model.ScoredResult, error)
	ListResults(ctx context.Context, limit int) ([]model.ScoredResult, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and configures a store driver. An empty driver disables
// persistence.
type Config struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// Open creates the store named by cfg.Driver, or (nil, nil) when no driver
// is configured.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "sqlite":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = "pagescan.db"
		}
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", cfg.Driver)
	}
}
