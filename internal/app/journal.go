package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mental-clarity/internal/config"
	"github.com/heartmarshall/mental-clarity/internal/service/capture"
	"github.com/heartmarshall/mental-clarity/internal/tui"
)

// RunJournal runs the terminal journal until the user quits.
func RunJournal(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.ValidateClient(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	store, closeStore, err := NewStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	analyzer, err := NewAnalyzer(cfg.Analysis, logger)
	if err != nil {
		return err
	}

	notify, changes := tui.NewNotifier()
	svc := capture.NewService(logger, analyzer, store, capture.WithNotify(notify))

	model := tui.New(ctx, svc, changes, tui.Settings{
		Provider: string(cfg.Analysis.Provider),
		Model:    modelLabel(cfg.Analysis),
		Store:    fmt.Sprintf("%s (%s)", cfg.Store.Backend, cfg.Store.Table),
		Language: cfg.Analysis.Language,
	})

	logger.Info("journal started",
		slog.String("provider", string(cfg.Analysis.Provider)),
		slog.String("store", string(cfg.Store.Backend)),
	)
	err = tui.Run(ctx, model)
	svc.Wait()
	return err
}
