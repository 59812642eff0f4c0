package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeValidation     = "ERR_VALIDATION"
	ErrCodeAuthentication = "ERR_AUTHENTICATION"
	ErrCodeAuthorization  = "ERR_AUTHORIZATION"
	ErrCodeInvalidToken   = "ERR_INVALID_TOKEN"
	ErrCodeConflict       = "ERR_CONFLICT"
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeInternal       = "ERR_INTERNAL"
)

// RespondWithError sends a standardized error response
func RespondWithError(w http.ResponseWriter, code string, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// RespondInvalidToken sends the one generic response every credential
// token failure maps to. Which precise failure occurred is for the logs,
// never for the client.
func RespondInvalidToken(w http.ResponseWriter) {
	RespondWithError(w, ErrCodeInvalidToken, "invalid or expired token", http.StatusBadRequest)
}
