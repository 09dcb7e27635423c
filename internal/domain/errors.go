package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation      ErrKind = "validation"      // 400
	KindDuplicate       ErrKind = "duplicate"       // 400 (platform contract, not 409)
	KindUnauthenticated ErrKind = "unauthenticated" // 401
	KindUnauthorized    ErrKind = "unauthorized"    // 401
	KindCredentials     ErrKind = "credentials"     // 403
	KindNotFound        ErrKind = "not_found"       // 404
	KindInternal        ErrKind = "internal"        // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (never leaks internal detail)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

// WithMessage replaces the client-facing message while keeping kind, code
// and cause. Used by the identity service to surface the operation-specific
// opaque messages the platform's clients expect.
func WithMessage(err *Error, msg string) *Error {
	err.Message = msg
	return err
}

// Is reports whether err carries the given stable code.
func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// KindOf returns the kind of a domain error, or KindInternal for anything else.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", fmt.Sprintf("%s is required", field)), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", fmt.Sprintf("%s is invalid: %s", field, reason)), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

func ErrInvalidRole(role string) *Error {
	return WithMeta(New(KindValidation, "invalid_role", "invalid role"), map[string]string{
		"role": role,
	})
}

// ----------------------
// Duplicates (400)
// ----------------------

func ErrDuplicateEmail() *Error {
	return New(KindDuplicate, "duplicate_email", "email already taken.")
}

func ErrDuplicateName() *Error {
	return New(KindDuplicate, "duplicate_name", "Username already taken.")
}

// ----------------------
// Authentication (401)
// ----------------------

func ErrUnauthenticated() *Error {
	return New(KindUnauthenticated, "unauthenticated", "Unauthorized.")
}

func ErrTokenInvalid() *Error {
	return New(KindUnauthenticated, "token_invalid", "Unauthorized.")
}

func ErrTokenExpired() *Error {
	return New(KindUnauthenticated, "token_expired", "Unauthorized.")
}

// ----------------------
// Authorization (401 per platform contract)
// ----------------------

func ErrUnauthorized() *Error {
	return New(KindUnauthorized, "unauthorized", "Unauthorized.")
}

// ----------------------
// Credentials (403)
// ----------------------

func ErrInvalidCredentials() *Error {
	return New(KindCredentials, "invalid_credentials", "Invalid credentials!")
}

// Password-change flow uses its own client message.
func ErrIncorrectPassword() *Error {
	return New(KindCredentials, "incorrect_password", "Incorrect Password.")
}

// ----------------------
// Not found (404)
// ----------------------

func ErrAccountNotFound() *Error {
	return New(KindNotFound, "account_not_found", "There is not an account with this email or username")
}

func ErrVerifyTokenNotFound() *Error {
	return New(KindNotFound, "verify_token_not_found", "verification token not found")
}

// ----------------------
// Internal (5xx)
// ----------------------

func ErrPersistence(cause error) *Error {
	return Wrap(KindInternal, "persistence_failed", "internal error", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "internal error", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "internal error", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "internal error", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
