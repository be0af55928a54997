package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/restock/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// errorStatus maps a service error to an HTTP status and a message safe to
// show to the client.
func errorStatus(err error) (int, string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, model.ErrAuth):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, model.ErrUpload):
		return http.StatusBadGateway, "image upload failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// serviceError writes err as a JSON error. refreshed, when non-nil, is the
// collection re-read after the failed operation and is included so the
// client can redraw from it.
func serviceError(w http.ResponseWriter, r *http.Request, err error, refreshed any) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	body := map[string]any{"error": msg}
	if refreshed != nil {
		body["result"] = refreshed
	}
	jsonResponse(w, status, body)
}
