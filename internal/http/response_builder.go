package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"studytrack/internal/core"
	applog "studytrack/internal/log"
	"studytrack/internal/middleware/trace"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// validationErrs are domain sentinels that map to 422. The request was
// well formed but the values in it are not acceptable.
var validationErrs = []error{
	core.ErrEmptyCategory,
	core.ErrCategoryTooLong,
	core.ErrEmptyName,
	core.ErrNameTooLong,
	core.ErrMemoTooLong,
	core.ErrInvalidDuration,
	core.ErrInvalidTimeSlot,
	core.ErrMissingStudyID,
	core.ErrMissingDate,
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, core.ErrStudyInUse):
		return http.StatusConflict, "conflict"
	case errors.Is(err, core.ErrInvalidRange):
		return http.StatusBadRequest, "bad_request"
	}
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return http.StatusUnprocessableEntity, "validation_failed"
		}
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger := applog.FromContext(r.Context())
		applog.NewStructuredLogger(logger).LogError(r.Context(), "Request failed", err,
			applog.ComponentHTTP, r.Method,
			applog.NewFields().WithPath(r.Method, r.URL.Path))
		msg = "internal server error"
	}

	writeJSON(w, status, errorBody{
		Error:     code,
		Message:   msg,
		RequestID: trace.GetRequestID(r.Context()),
	})
}

// writeBadRequest reports a malformed request (unparseable body or
// parameters) without consulting the domain error mapping.
func writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Error:     "bad_request",
		Message:   msg,
		RequestID: trace.GetRequestID(r.Context()),
	})
}
