package history

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// PostgresStore persists processed identifiers in Postgres for deployments
// that already run a database. Identifiers are loaded into memory at run
// start; each mark is committed immediately.
//
// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS processed_documents (
//	    id          TEXT PRIMARY KEY,
//	    name        TEXT NOT NULL DEFAULT '',
//	    phase       TEXT NOT NULL DEFAULT '',
//	    detail_page TEXT NOT NULL DEFAULT '',
//	    listing     TEXT NOT NULL DEFAULT '',
//	    edital      TEXT NOT NULL DEFAULT '',
//	    unidade     TEXT NOT NULL DEFAULT '',
//	    cidade      TEXT NOT NULL DEFAULT '',
//	    disciplina  TEXT NOT NULL DEFAULT '',
//	    source      TEXT NOT NULL DEFAULT '',
//	    title       TEXT NOT NULL DEFAULT '',
//	    pub_date    TEXT NOT NULL DEFAULT '',
//	    hierarchy   TEXT NOT NULL DEFAULT '',
//	    url         TEXT NOT NULL DEFAULT '',
//	    matches     INTEGER NOT NULL DEFAULT 0,
//	    found_name  BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresStore struct {
	db  *sql.DB
	ids map[string]struct{}
}

var _ ports.HistoryStore = (*PostgresStore)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, ids: map[string]struct{}{}}
}

// OpenPostgresStore connects with the given DSN and pings the database.
func OpenPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresStore(db), nil
}

// Load pulls every processed identifier into memory for O(1) membership.
func (s *PostgresStore) Load(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	query, args, err := psql.Select("id").From("processed_documents").ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query processed: %w", err)
	}
	defer rows.Close()

	ids := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration: %w", err)
	}

	s.ids = ids
	return nil
}

// Has reports whether the identifier was processed in any prior run.
func (s *PostgresStore) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// MarkProcessed inserts the entry; conflicts on id are ignored so repeated
// marks stay idempotent.
func (s *PostgresStore) MarkProcessed(ctx context.Context, id string, entry domain.HistoryEntry) error {
	if s.db == nil {
		return nil
	}
	if _, ok := s.ids[id]; ok {
		return nil
	}

	query, args, err := psql.Insert("processed_documents").
		Columns("id", "name", "phase", "detail_page", "listing", "edital",
			"unidade", "cidade", "disciplina", "source", "title", "pub_date",
			"hierarchy", "url", "matches", "found_name").
		Values(id, entry.Name, entry.Phase, entry.DetailPage, entry.Listing,
			entry.Edital, entry.Unit, entry.City, entry.Subject, entry.Source,
			entry.Title, entry.Date, entry.Hierarchy, entry.URL, entry.Matches,
			entry.NameFound).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert processed %s: %w", id, err)
	}

	s.ids[id] = struct{}{}
	return nil
}

// Len returns the number of known identifiers.
func (s *PostgresStore) Len() int {
	return len(s.ids)
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
