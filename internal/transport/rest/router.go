package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/mental-clarity/internal/config"
	"github.com/heartmarshall/mental-clarity/internal/observability"
	"github.com/heartmarshall/mental-clarity/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateClientToken(token string) (string, error)
}

// RouterDeps are the collaborators of the journal server router.
type RouterDeps struct {
	Health   *HealthHandler
	Analysis *AnalysisHandler
	Entries  *EntryHandler
	Tokens   tokenValidator
	Metrics  *observability.Collector // nil disables /metrics
	CORS     config.CORSConfig
	Logger   *slog.Logger

	MetricsPath string
}

// NewRouter builds the HTTP handler of the journal server.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
	)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics.HTTPRequests))
	}

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	if d.Metrics != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, d.Metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.Tokens, d.Logger))

		r.Post("/analyze", d.Analysis.Analyze)
		r.Post("/ping", d.Analysis.Ping)
		r.Get("/entries", d.Entries.List)
		r.Post("/entries", d.Entries.Create)
		r.Get("/session", d.Entries.Session)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
