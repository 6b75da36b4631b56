package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tecnitrama/backend/internal/search"
	"github.com/tecnitrama/backend/internal/service"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeServiceError maps the domain error taxonomy onto status codes:
// ValidationError 400, ErrNotFound 404, disabled search 503, the rest 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, errorResponse{Error: ve.Msg, Fields: ve.Fields}, http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusNotFound)
	case errors.Is(err, search.ErrDisabled):
		writeJSON(w, errorResponse{Error: "search is not available"}, http.StatusServiceUnavailable)
	default:
		logger.Error("internal error", slog.Any("err", err))
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusInternalServerError)
	}
}
