package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/pkg/log"
)

// APIError is the JSON body of every failed API call.
type APIError struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodePreconditionFailed = "PRECONDITION_FAILED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeSessionLimit       = "SESSION_LIMIT"
	ErrCodeHistoryDisabled    = "HISTORY_DISABLED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

func respondStructuredError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIError{
		Error:     message,
		Code:      code,
		Message:   message,
		RequestID: requestIDFrom(r.Context()),
		Details:   details,
	})
}

// respondServiceError maps core errors onto status codes.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *core.InvalidInputError

	switch {
	case errors.As(err, &invalid):
		details := make(map[string]string, len(invalid.Errs))
		for _, fe := range invalid.Errs {
			details[fe.Field] = fe.ErrorBody()
		}
		respondStructuredError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, "invalid input", details)
	case errors.Is(err, core.ErrPreconditionFailed):
		respondStructuredError(w, r, http.StatusConflict, ErrCodePreconditionFailed, err.Error(), nil)
	case errors.Is(err, core.ErrSessionNotFound):
		respondStructuredError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)
	case errors.Is(err, core.ErrRateLimited):
		respondStructuredError(w, r, http.StatusTooManyRequests, ErrCodeRateLimitExceeded, err.Error(), nil)
	case errors.Is(err, core.ErrSessionLimit):
		respondStructuredError(w, r, http.StatusServiceUnavailable, ErrCodeSessionLimit, err.Error(), nil)
	case errors.Is(err, core.ErrHistoryDisabled):
		respondStructuredError(w, r, http.StatusNotFound, ErrCodeHistoryDisabled, err.Error(), nil)
	default:
		log.FromContext(r.Context()).Error(err, "Request failed")
		respondStructuredError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error", nil)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
