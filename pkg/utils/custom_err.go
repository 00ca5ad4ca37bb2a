package utils

import "errors"

// ErrorKind is a closed taxonomy so callers can branch on what went wrong
// instead of matching message text.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
	KindDatabase
	KindPaymentVerification
	KindPaymentCancelled
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func ValidationError(message string) *AppError   { return newAppError(KindValidation, message) }
func NotFoundError(message string) *AppError     { return newAppError(KindNotFound, message) }
func UnauthorizedError(message string) *AppError { return newAppError(KindUnauthorized, message) }
func ForbiddenError(message string) *AppError    { return newAppError(KindForbidden, message) }
func ConflictError(message string) *AppError     { return newAppError(KindConflict, message) }

func PaymentVerificationError(message string, cause error) *AppError {
	return &AppError{Kind: KindPaymentVerification, Message: message, Err: cause}
}

func PaymentCancelledError(message string) *AppError {
	return newAppError(KindPaymentCancelled, message)
}

func DatabaseError(cause error) *AppError {
	return &AppError{Kind: KindDatabase, Message: "database error", Err: cause}
}

// KindOf extracts the kind from any error in the chain. Errors that were
// never classified are treated as database/internal failures.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDatabase
}

// MessageOf returns the human-readable message for classified errors and a
// generic fallback for everything else, so internals never leak to clients.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindDatabase {
		return appErr.Message
	}
	return "Internal server error"
}
