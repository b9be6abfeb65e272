// Package rest serves the journal server HTTP API.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// maxBodyBytes caps request bodies; journal entries are free text but
// never this large.
const maxBodyBytes = 1 << 20

// genericFailure is what clients see on any remote failure.
const genericFailure = "Analysis failed"

type textRequest struct {
	Text string `json:"text"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeText reads a {"text": ...} body. Blank text is a validation error.
func decodeText(w http.ResponseWriter, r *http.Request) (string, error) {
	var req textRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return "", domain.NewValidationError("body", "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", domain.NewValidationError("text", "required")
	}
	return req.Text, nil
}

// statusFor maps a domain error to the HTTP status and client message.
func statusFor(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		if len(verr.Errors) == 1 && verr.Errors[0].Field == "body" {
			return http.StatusBadRequest, "invalid request body"
		}
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrBusy):
		return http.StatusConflict, "a capture session is already in progress"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrRemoteAnalysis), errors.Is(err, domain.ErrRemoteStore):
		return http.StatusBadGateway, genericFailure
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
