package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/service"
)

const internalErrorMessage = "internal server error"

type errorsResponse struct {
	Errors []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeErrors(w http.ResponseWriter, status int, messages ...string) {
	writeJSON(w, status, errorsResponse{Errors: messages})
}

// errorMode selects how business rejections map to status codes.
type errorMode int

const (
	// modeCommand answers every rejection with 400.
	modeCommand errorMode = iota
	// modeQuery distinguishes missing (404) from forbidden (403) resources.
	modeQuery
)

func statusForError(err error, mode errorMode) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case !service.IsRejection(err):
		return http.StatusInternalServerError
	case mode == modeCommand:
		return http.StatusBadRequest
	case service.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

// respondError logs err according to its class and writes the mapped status.
func respondError(w http.ResponseWriter, r *http.Request, op string, err error, mode errorMode) {
	status := statusForError(err, mode)
	if status == http.StatusInternalServerError {
		logger.Fault(op, err, "method", r.Method, "path", r.URL.Path)
		writeErrors(w, status, internalErrorMessage)
		return
	}
	logger.Rejection(op, err, "method", r.Method, "path", r.URL.Path, "status", status)
	writeErrors(w, status, err.Error())
}
