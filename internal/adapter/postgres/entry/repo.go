// Package entry implements the journal entry store on PostgreSQL.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/mental-clarity/internal/adapter/postgres"
	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// DefaultTable is the table created by the bundled migrations.
const DefaultTable = "entries"

var (
	builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns = []string{"id", "content", "analysis", "created_at"}
)

// Repo provides journal entry persistence backed by PostgreSQL.
type Repo struct {
	q     postgres.Querier
	table string
}

// New creates a new entry repository over the given table.
// q is usually a *pgxpool.Pool.
func New(q postgres.Querier, table string) *Repo {
	if table == "" {
		table = DefaultTable
	}
	return &Repo{q: q, table: table}
}

// entryRow is the scan target for one entries row.
type entryRow struct {
	ID        uuid.UUID `db:"id"`
	Content   string    `db:"content"`
	Analysis  string    `db:"analysis"`
	CreatedAt time.Time `db:"created_at"`
}

func (r entryRow) toDomain() domain.Entry {
	return domain.Entry{
		ID:        r.ID,
		Content:   r.Content,
		Analysis:  r.Analysis,
		CreatedAt: r.CreatedAt,
	}
}

// ListEntries returns every entry ordered by created_at DESC (id breaks ties).
// Returns an empty slice when the table is empty.
func (r *Repo) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	query, args, err := builder.
		Select(columns...).
		From(r.table).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "list", Err: fmt.Errorf("build query: %w", err)}
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list")
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[entryRow])
	if err != nil {
		return nil, postgres.MapError(err, "list")
	}

	entries := make([]domain.Entry, len(collected))
	for i, row := range collected {
		entries[i] = row.toDomain()
	}

	return entries, nil
}

// InsertEntry stores a new entry and returns it with the generated id and
// created_at.
func (r *Repo) InsertEntry(ctx context.Context, content, analysis string) (*domain.Entry, error) {
	query, args, err := builder.
		Insert(r.table).
		Columns("content", "analysis").
		Values(content, analysis).
		Suffix("RETURNING id, content, analysis, created_at").
		ToSql()
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "insert", Err: fmt.Errorf("build query: %w", err)}
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "insert")
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[entryRow])
	if err != nil {
		return nil, postgres.MapError(err, "insert")
	}

	e := row.toDomain()
	return &e, nil
}

// Ping checks that the store is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, "SELECT 1"); err != nil {
		return postgres.MapError(err, "ping")
	}
	return nil
}
