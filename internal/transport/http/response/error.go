package response

import (
	"errors"
	"net/http"

	"github.com/jobhive/auth-service/internal/domain"
)

// ErrorBody is the platform-wide failure envelope. Every error response,
// whatever its status, carries exactly this shape.
type ErrorBody struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// WriteError converts a domain error into the platform's JSON error
// envelope. Non-domain errors become a 500 without leaking details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		message = de.Message
	}

	WriteJSON(w, status, ErrorBody{Message: message, Success: false})
}

// statusFromKind maps domain error kinds to HTTP status codes.
// Duplicates are 400, not 409: the platform's clients branch on the
// message, and the contract predates this service.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation, domain.KindDuplicate:
		return http.StatusBadRequest
	case domain.KindUnauthenticated, domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindCredentials:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
