package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/pagescan/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS results (
	id           TEXT PRIMARY KEY,
	source_url   TEXT NOT NULL,
	backend      TEXT NOT NULL,
	method       TEXT NOT NULL,
	quality      REAL NOT NULL,
	completeness REAL NOT NULL,
	payload      TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_results_source_url ON results(source_url);
CREATE INDEX IF NOT EXISTS idx_results_created_at ON results(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveResult(ctx context.Context, result *model.ScoredResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id, source_url, backend, method, quality, completeness, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		result.SourceURL,
		result.BackendUsed,
		string(result.ExtractionMethod),
		result.Quality.QualityScore,
		result.Quality.CompletenessScore,
		string(payload),
		time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert result %s", result.SourceURL)
}

func (s *SQLiteStore) GetResult(ctx context.Context, sourceURL string) (*model.ScoredResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload FROM results WHERE source_url = ? ORDER BY created_at DESC LIMIT 1`,
		sourceURL,
	)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get result %s", sourceURL)
	}
	return unmarshalResult(payload)
}

func (s *SQLiteStore) ListResults(ctx context.Context, limit int) ([]model.ScoredResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM results ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list results")
	}
	defer rows.Close()

	var out []model.ScoredResult
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan result")
		}
		r, err := unmarshalResult(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate results")
}

func unmarshalResult(payload string) (*model.ScoredResult, error) {
	var r model.ScoredResult
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal result payload")
	}
	return &r, nil
}
