// Package capture implements the capture orchestrator: it validates a
// journal entry, sends it for analysis, persists text and analysis together
// and keeps the entry list the presentation layer renders.
package capture

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

type analyzer interface {
	Analyze(ctx context.Context, content string) (string, error)
}

type entryStore interface {
	ListEntries(ctx context.Context) ([]domain.Entry, error)
	InsertEntry(ctx context.Context, content, analysis string) (*domain.Entry, error)
}

// Outcome is the result of one capture session. Exactly one of Entry and
// Err is set.
type Outcome struct {
	Entry *domain.Entry
	Err   error
}

// Snapshot is a copy of the orchestrator state for rendering.
type Snapshot struct {
	Phase        domain.Phase
	Busy         bool
	Status       domain.Status
	Entries      []domain.Entry
	Draft        string
	Selected     *domain.Entry
	ShowFullText bool
}

// StatusText is the user-visible status line.
func (s Snapshot) StatusText() string {
	return s.Status.Message()
}

// Option configures a Service.
type Option func(*Service)

// WithNotify registers fn to be called after every state change. fn runs
// outside the service lock and must not block.
func WithNotify(fn func()) Option {
	return func(s *Service) { s.notify = fn }
}

// WithOutcomeObserver registers fn to be called with every finished session.
func WithOutcomeObserver(fn func(Outcome)) Option {
	return func(s *Service) { s.observe = fn }
}

// Service is the capture orchestrator. At most one capture session is in
// flight; all state is guarded by mu.
type Service struct {
	analyzer analyzer
	store    entryStore
	log      *slog.Logger
	notify   func()
	observe  func(Outcome)

	// wg tracks workflow and refresh goroutines.
	wg sync.WaitGroup

	mu           sync.Mutex
	phase        domain.Phase
	status       domain.Status
	draft        string
	entries      []domain.Entry
	selected     *domain.Entry
	showFullText bool

	// refreshSeq orders overlapping refreshes; only the newest result is applied.
	refreshSeq     uint64
	appliedRefresh uint64
}

// NewService creates a new capture orchestrator in the Idle phase.
func NewService(
	log *slog.Logger,
	analyzer analyzer,
	store entryStore,
	opts ...Option,
) *Service {
	s := &Service{
		analyzer: analyzer,
		store:    store,
		log:      log.With("service", "capture"),
		phase:    domain.PhaseIdle,
		status:   domain.StatusNone,
		entries:  []domain.Entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:        s.phase,
		Busy:         s.phase != domain.PhaseIdle,
		Status:       s.status,
		Entries:      slices.Clone(s.entries),
		Draft:        s.draft,
		ShowFullText: s.showFullText,
	}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	return snap
}

// SetDraftText replaces the draft. Allowed in every phase.
func (s *Service) SetDraftText(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
	s.changed()
}

// SelectEntry opens the detail overlay for the entry with the given id, or
// closes it when id is nil. Selecting always starts with truncated content.
// Returns domain.ErrNotFound if the id is not in the current list.
func (s *Service) SelectEntry(id *uuid.UUID) error {
	s.mu.Lock()

	if id == nil {
		s.selected = nil
		s.showFullText = false
		s.mu.Unlock()
		s.changed()
		return nil
	}

	idx := slices.IndexFunc(s.entries, func(e domain.Entry) bool { return e.ID == *id })
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}

	sel := s.entries[idx]
	s.selected = &sel
	s.showFullText = false
	s.mu.Unlock()

	s.changed()
	return nil
}

// ToggleFullText flips between truncated and full content in the overlay.
// No-op when nothing is selected.
func (s *Service) ToggleFullText() {
	s.mu.Lock()
	if s.selected == nil {
		s.mu.Unlock()
		return
	}
	s.showFullText = !s.showFullText
	s.mu.Unlock()
	s.changed()
}

// Wait blocks until every started workflow and refresh has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) changed() {
	if s.notify != nil {
		s.notify()
	}
}
