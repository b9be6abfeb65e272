package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mental-clarity/pkg/ctxutil"
)

type analyzer interface {
	Analyze(ctx context.Context, content string) (string, error)
	Ping(ctx context.Context) (string, error)
}

// AnalysisHandler exposes the upstream completion service to token holders.
type AnalysisHandler struct {
	analyzer analyzer
	log      *slog.Logger
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(a analyzer, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{analyzer: a, log: logger.With("handler", "analysis")}
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
}

type pingResponse struct {
	Reply string `json:"reply"`
}

// Analyze handles POST /v1/analyze.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	text, err := decodeText(w, r)
	if err != nil {
		h.handleError(w, r, "analyze", err)
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), text)
	if err != nil {
		h.handleError(w, r, "analyze", err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis})
}

// Ping handles POST /v1/ping: the fixed connectivity prompt, nothing else.
func (h *AnalysisHandler) Ping(w http.ResponseWriter, r *http.Request) {
	reply, err := h.analyzer.Ping(r.Context())
	if err != nil {
		h.handleError(w, r, "ping", err)
		return
	}
	writeJSON(w, http.StatusOK, pingResponse{Reply: reply})
}

func (h *AnalysisHandler) handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		clientID, _ := ctxutil.ClientIDFromCtx(r.Context())
		h.log.ErrorContext(r.Context(), "analysis request failed",
			slog.String("op", op),
			slog.String("client_id", clientID),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("error", err.Error()),
		)
	}
	writeError(w, status, msg)
}
