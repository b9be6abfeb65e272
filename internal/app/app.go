// Package app wires configuration, gateways and services into the
// commands of the clarity binary.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mental-clarity/internal/adapter/postgres"
	pgentry "github.com/heartmarshall/mental-clarity/internal/adapter/postgres/entry"
	"github.com/heartmarshall/mental-clarity/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/mental-clarity/internal/adapter/provider/openai"
	"github.com/heartmarshall/mental-clarity/internal/adapter/provider/proxy"
	sbentry "github.com/heartmarshall/mental-clarity/internal/adapter/supabase/entry"
	"github.com/heartmarshall/mental-clarity/internal/config"
	"github.com/heartmarshall/mental-clarity/internal/domain"
	"github.com/heartmarshall/mental-clarity/internal/observability"
)

// EntryStore is the entry store gateway as the commands use it.
type EntryStore interface {
	observability.EntryStore
	Ping(ctx context.Context) error
}

// Analyzer is the analysis gateway as the commands use it.
type Analyzer interface {
	observability.Analyzer
	Ping(ctx context.Context) (string, error)
}

// NewStore connects the configured entry store. The returned cleanup
// releases its connections.
func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (EntryStore, func(), error) {
	switch cfg.Store.Backend {
	case domain.StoreBackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		logger.Info("entry store connected",
			slog.String("backend", string(cfg.Store.Backend)),
			slog.String("table", cfg.Store.Table),
		)
		return pgentry.New(pool, cfg.Store.Table), pool.Close, nil

	case domain.StoreBackendSupabase:
		repo, err := sbentry.New(cfg.Store, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("supabase: %w", err)
		}
		logger.Info("entry store configured",
			slog.String("backend", string(cfg.Store.Backend)),
			slog.String("table", cfg.Store.Table),
		)
		return repo, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// NewAnalyzer creates the configured analysis gateway.
func NewAnalyzer(cfg config.AnalysisConfig, logger *slog.Logger) (Analyzer, error) {
	switch cfg.Provider {
	case domain.AnalysisProviderOpenAI:
		return openai.NewProvider(cfg, logger), nil
	case domain.AnalysisProviderAnthropic:
		return anthropic.NewProvider(cfg, logger), nil
	case domain.AnalysisProviderProxy:
		return proxy.NewClient(cfg, logger), nil
	}
	return nil, fmt.Errorf("unknown analysis provider %q", cfg.Provider)
}

// modelLabel is the model name shown to the user; the proxy picks its own.
func modelLabel(cfg config.AnalysisConfig) string {
	if cfg.Provider == domain.AnalysisProviderProxy {
		return "server default"
	}
	return cfg.ModelOrDefault()
}
