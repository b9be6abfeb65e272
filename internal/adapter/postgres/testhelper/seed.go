package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// NewEntriesTable creates an empty copy of the migrated entries table so a
// test can reason about the whole table while other tests run in parallel.
// The table is dropped via t.Cleanup.
func NewEntriesTable(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()

	name := "entries_" + uniqueSuffix()
	ident := pgx.Identifier{name}.Sanitize()

	if _, err := pool.Exec(ctx, `CREATE TABLE `+ident+` (LIKE entries INCLUDING ALL)`); err != nil {
		t.Fatalf("testhelper: create table %s: %v", name, err)
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS `+ident)
	})

	return name
}

// SeedEntry inserts an entry with an explicit created_at into table.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, table, content, analysis string, createdAt time.Time) domain.Entry {
	t.Helper()

	e := domain.Entry{
		ID:        uuid.New(),
		Content:   content,
		Analysis:  analysis,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO `+pgx.Identifier{table}.Sanitize()+` (id, content, analysis, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Content, e.Analysis, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry: %v", err)
	}

	return e
}
