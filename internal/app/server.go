package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/mental-clarity/internal/auth"
	"github.com/heartmarshall/mental-clarity/internal/config"
	"github.com/heartmarshall/mental-clarity/internal/observability"
	"github.com/heartmarshall/mental-clarity/internal/service/capture"
	"github.com/heartmarshall/mental-clarity/internal/transport/rest"
)

const metricsNamespace = "clarity"

// RunServer runs the journal server until ctx is cancelled, then shuts the
// HTTP server down gracefully and waits for running capture sessions.
func RunServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.ValidateServer(); err != nil {
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

	var metrics *observability.Collector
	if cfg.Metrics.Enabled {
		metrics = observability.NewCollector(metricsNamespace)
		store = observability.InstrumentStore(store, string(cfg.Store.Backend), metrics)
		analyzer = observability.InstrumentAnalyzer(analyzer, string(cfg.Analysis.Provider), metrics)
	}

	opts := []capture.Option{}
	if metrics != nil {
		opts = append(opts, capture.WithOutcomeObserver(func(o capture.Outcome) {
			metrics.RecordSubmission(o.Err)
		}))
	}
	svc := capture.NewService(logger, analyzer, store, opts...)
	if err := svc.Refresh(ctx); err != nil {
		logger.Warn("initial entry load failed", slog.String("error", err.Error()))
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	handler := rest.NewRouter(rest.RouterDeps{
		Health:      rest.NewHealthHandler(store, string(cfg.Store.Backend), BuildVersion()),
		Analysis:    rest.NewAnalysisHandler(analyzer, logger),
		Entries:     rest.NewEntryHandler(store, svc, logger),
		Tokens:      tokens,
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
		CORS:        cfg.CORS,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("journal server listening",
			slog.String("addr", srv.Addr),
			slog.String("provider", string(cfg.Analysis.Provider)),
			slog.String("model", cfg.Analysis.ModelOrDefault()),
			slog.String("version", BuildVersion()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		svc.Wait()
		return nil
	})

	return g.Wait()
}
