package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/mental-clarity/internal/domain"
	"github.com/heartmarshall/mental-clarity/internal/service/capture"
	"github.com/heartmarshall/mental-clarity/pkg/ctxutil"
)

type entryLister interface {
	ListEntries(ctx context.Context) ([]domain.Entry, error)
}

type captureService interface {
	Submit(ctx context.Context, text string) (<-chan capture.Outcome, error)
	Snapshot() capture.Snapshot
}

// EntryHandler serves the journal entries and the capture session.
type EntryHandler struct {
	store   entryLister
	capture captureService
	log     *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(store entryLister, svc captureService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{store: store, capture: svc, log: logger.With("handler", "entries")}
}

type entryResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Busy         bool    `json:"busy"`
	Phase        string  `json:"phase"`
	Status       string  `json:"status"`
	StatusText   string  `json:"status_text"`
	Draft        string  `json:"draft"`
	SelectedID   *string `json:"selected_id"`
	ShowFullText bool    `json:"show_full_text"`
	Entries      int     `json:"entries"`
}

// List handles GET /v1/entries, newest first.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListEntries(r.Context())
	if err != nil {
		h.handleError(w, r, "list", err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryResponse(&entries[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /v1/entries. It runs one capture session and waits
// for its outcome. A client that disconnects early does not abort the
// session.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	text, err := decodeText(w, r)
	if err != nil {
		h.handleError(w, r, "create", err)
		return
	}

	done, err := h.capture.Submit(r.Context(), text)
	if err != nil {
		h.handleError(w, r, "create", err)
		return
	}

	select {
	case o := <-done:
		if o.Err != nil {
			h.handleError(w, r, "create", o.Err)
			return
		}
		writeJSON(w, http.StatusCreated, toEntryResponse(o.Entry))
	case <-r.Context().Done():
	}
}

// Session handles GET /v1/session.
func (h *EntryHandler) Session(w http.ResponseWriter, r *http.Request) {
	s := h.capture.Snapshot()

	resp := sessionResponse{
		Busy:         s.Busy,
		Phase:        s.Phase.String(),
		Status:       s.Status.String(),
		StatusText:   s.StatusText(),
		Draft:        s.Draft,
		ShowFullText: s.ShowFullText,
		Entries:      len(s.Entries),
	}
	if s.Selected != nil {
		id := s.Selected.ID.String()
		resp.SelectedID = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EntryHandler) handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		clientID, _ := ctxutil.ClientIDFromCtx(r.Context())
		h.log.ErrorContext(r.Context(), "entries request failed",
			slog.String("op", op),
			slog.String("client_id", clientID),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("error", err.Error()),
		)
	}
	writeError(w, status, msg)
}

func toEntryResponse(e *domain.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID.String(),
		Content:   e.Content,
		Analysis:  e.Analysis,
		CreatedAt: e.CreatedAt,
	}
}
