package capture

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// Submit starts a capture session for text.
//
// It is rejected without any state change or remote call when a session is
// already in flight (domain.ErrBusy) or when text is blank
// (*domain.ValidationError). Otherwise the session runs in the background:
// analyze, then persist, then refresh the list. The returned channel
// delivers exactly one Outcome.
//
// Cancelling ctx does not abort a started session.
func (s *Service) Submit(ctx context.Context, text string) (<-chan Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text", "required")
	}

	s.mu.Lock()
	if s.phase != domain.PhaseIdle {
		s.mu.Unlock()
		return nil, domain.ErrBusy
	}
	s.draft = text
	s.phase = domain.PhaseAnalyzing
	s.status = domain.StatusAnalyzing
	s.mu.Unlock()
	s.changed()

	out := make(chan Outcome, 1)
	runCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		o := s.run(runCtx, text)
		if s.observe != nil {
			s.observe(o)
		}
		out <- o
		close(out)
	}()

	return out, nil
}

// run executes one session and leaves the service Idle.
func (s *Service) run(ctx context.Context, text string) Outcome {
	start := time.Now()

	analysis, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return s.fail(ctx, "analyze", err)
	}

	s.setPhase(domain.PhasePersisting)

	entry, err := s.store.InsertEntry(ctx, text, analysis)
	if err != nil {
		return s.fail(ctx, "persist", err)
	}

	s.mu.Lock()
	s.phase = domain.PhaseSucceeded
	s.draft = ""
	s.status = domain.StatusSucceeded
	s.mu.Unlock()
	s.changed()

	s.log.InfoContext(ctx, "entry captured",
		slog.String("entry_id", entry.ID.String()),
		slog.Int("content_len", len(text)),
		slog.Int("analysis_len", len(analysis)),
		slog.Duration("took", time.Since(start)),
	)

	s.refreshAsync(ctx)
	s.setPhase(domain.PhaseIdle)

	return Outcome{Entry: entry}
}

// fail records a failed session. The draft is kept so the user can retry.
func (s *Service) fail(ctx context.Context, stage string, err error) Outcome {
	s.mu.Lock()
	s.phase = domain.PhaseFailed
	s.status = domain.StatusFailed
	s.mu.Unlock()
	s.changed()

	s.log.ErrorContext(ctx, "capture session failed",
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)

	s.setPhase(domain.PhaseIdle)
	return Outcome{Err: err}
}

func (s *Service) setPhase(p domain.Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
	s.changed()
}
