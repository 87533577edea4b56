package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pmikheev/tasktracker/internal/apperrors"
)

type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details any) {
	WriteJSON(w, status, APIError{Error: msg, Code: code, Details: details})
}

// Error maps a taxonomy error onto the matching status. Unrecognized errors
// (and anything flagged internal) are logged and answered with a generic
// message so store details never reach a client.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		WriteError(w, http.StatusConflict, "conflict", trim(err), nil)
	case errors.Is(err, apperrors.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", trim(err), nil)
	case errors.Is(err, apperrors.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "unauthorized", trim(err), nil)
	case errors.Is(err, apperrors.ErrBadRequest):
		WriteError(w, http.StatusBadRequest, "bad_request", trim(err), nil)
	default:
		slog.Error("request failed", "err", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

// trim drops the sentinel prefix ("conflict: user already exists" reads
// better as "user already exists").
func trim(err error) string {
	msg := err.Error()
	for i := 0; i < len(msg)-1; i++ {
		if msg[i] == ':' && msg[i+1] == ' ' {
			return msg[i+2:]
		}
	}
	return msg
}
