package capture

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// Refresh reloads the entry list from the store. On failure the previous
// list stays in place and the error is returned.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.refreshSeq++
	seq := s.refreshSeq
	s.mu.Unlock()

	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "refresh entries failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	if seq <= s.appliedRefresh {
		// A refresh started later has already been applied.
		s.mu.Unlock()
		return nil
	}
	s.appliedRefresh = seq
	s.entries = entries
	if s.entries == nil {
		s.entries = []domain.Entry{}
	}
	s.mu.Unlock()
	s.changed()

	s.log.DebugContext(ctx, "entries refreshed", slog.Int("count", len(entries)))
	return nil
}

// refreshAsync starts a refresh whose failure is only logged.
func (s *Service) refreshAsync(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.Refresh(ctx)
	}()
}
