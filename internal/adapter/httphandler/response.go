package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
)

const (
	internalErrorDetail    = "internal error"
	unavailableErrorDetail = "store unavailable"
	tooLargeErrorDetail    = "request body too large"
)

type detailResponse struct {
	Detail any `json:"detail"`
}

type idResponse struct {
	ID string `json:"id"`
}

// writeJSON encodes v before writing the status, so a value that cannot
// be encoded is answered with 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response body", "op", op, "err", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(detailResponse{internalErrorDetail})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, detailResponse{detail})
}

func writeDocuments(w http.ResponseWriter, docs []domain.Document) {
	if docs == nil {
		docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// writeError maps err onto a response. Only validation and color errors
// expose their message; everything else is logged under op.
func writeError(w http.ResponseWriter, op string, err error) {
	var vErr *domain.ValidationError
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &vErr):
		writeDetail(w, http.StatusUnprocessableEntity, vErr.Violations)
	case errors.As(err, &maxErr):
		writeDetail(w, http.StatusRequestEntityTooLarge, tooLargeErrorDetail)
	case errors.Is(err, domain.ErrInvalidColorFormat):
		writeDetail(w, http.StatusBadRequest, domain.ErrInvalidColorFormat.Error())
	case errors.Is(err, port.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		slog.Warn("store is unavailable", "op", op, "err", err)
		writeDetail(w, http.StatusServiceUnavailable, unavailableErrorDetail)
	default:
		slog.Error("request failed", "op", op, "err", err)
		writeDetail(w, http.StatusInternalServerError, internalErrorDetail)
	}
}
