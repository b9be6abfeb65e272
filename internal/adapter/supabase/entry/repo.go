// Package entry implements the journal entry store on a hosted Supabase
// project through its PostgREST interface.
package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/heartmarshall/mental-clarity/internal/config"
	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// Repo reads and writes entries through the Supabase REST API.
//
// The PostgREST client does not accept a context; ctx is only checked
// before each call.
type Repo struct {
	client *supabase.Client
	table  string
	log    *slog.Logger
}

// insertRow is the body of one insert; id and created_at are left to the store.
type insertRow struct {
	Content  string `json:"content"`
	Analysis string `json:"analysis"`
}

// New creates a Repo from the store settings.
func New(cfg config.StoreConfig, logger *slog.Logger) (*Repo, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = "entries"
	}

	return &Repo{
		client: client,
		table:  table,
		log:    logger.With("adapter", "supabase"),
	}, nil
}

// ListEntries returns every entry ordered by created_at descending.
func (r *Repo) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.RemoteStoreError{Op: "list", Err: err}
	}

	var rows []domain.Entry
	_, err := r.client.From(r.table).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "list", Err: err}
	}

	if rows == nil {
		rows = []domain.Entry{}
	}

	r.log.DebugContext(ctx, "supabase list", slog.Int("entries", len(rows)))

	return rows, nil
}

// InsertEntry stores a new entry and returns the representation the store
// sends back, including the generated id and created_at.
func (r *Repo) InsertEntry(ctx context.Context, content, analysis string) (*domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.RemoteStoreError{Op: "insert", Err: err}
	}

	var rows []domain.Entry
	_, err := r.client.From(r.table).
		Insert(insertRow{Content: content, Analysis: analysis}, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, &domain.RemoteStoreError{Op: "insert", Err: err}
	}

	if len(rows) != 1 {
		return nil, &domain.RemoteStoreError{
			Op:  "insert",
			Err: fmt.Errorf("expected 1 returned row, got %d", len(rows)),
		}
	}

	return &rows[0], nil
}

// Ping checks that the table is reachable with the configured key.
func (r *Repo) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &domain.RemoteStoreError{Op: "ping", Err: err}
	}

	var rows []map[string]any
	_, err := r.client.From(r.table).Select("id", "", false).Limit(1, "").ExecuteTo(&rows)
	if err != nil {
		return &domain.RemoteStoreError{Op: "ping", Err: err}
	}
	return nil
}
