package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/mental-clarity/internal/config"
)

// RunPing sends the connectivity prompt through the configured analysis
// gateway and reports the reply to w. The store is not contacted.
func RunPing(ctx context.Context, cfg *config.Config, logger *slog.Logger, w io.Writer) error {
	if err := cfg.ValidateProbe(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	analyzer, err := NewAnalyzer(cfg.Analysis, logger)
	if err != nil {
		return err
	}
	return ping(ctx, analyzer, string(cfg.Analysis.Provider), w)
}

type pinger interface {
	Ping(ctx context.Context) (string, error)
}

func ping(ctx context.Context, p pinger, provider string, w io.Writer) error {
	reply, err := p.Ping(ctx)
	if err != nil {
		fmt.Fprintf(w, "connection to %s failed ❌\n", provider)
		return err
	}
	fmt.Fprintf(w, "connection to %s ok ✅\n%s\n", provider, reply)
	return nil
}
