package helper

import "net/http"

// AppError is a handler-facing error carrying the HTTP status it maps to.
// WriteError turns it into the JSON error envelope; anything else that reaches
// WriteError is treated as an internal failure.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func newAppError(code int, message, fallback string) *AppError {
	if message == "" {
		message = fallback
	}
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	return newAppError(http.StatusBadRequest, message, "Invalid request")
}

func NewUnauthorizedError(message string) *AppError {
	return newAppError(http.StatusUnauthorized, message, "Authentication required")
}

func NewNotFoundError(message string) *AppError {
	return newAppError(http.StatusNotFound, message, "Report not found")
}

func NewMethodNotAllowedError(message string) *AppError {
	return newAppError(http.StatusMethodNotAllowed, message, "Method not allowed")
}

// NewConflictError covers ticket id allocation: when every regenerated id
// still collides with the unique index, the submission is rejected rather
// than overwritten.
func NewConflictError(message string) *AppError {
	return newAppError(http.StatusConflict, message, "Could not allocate a unique ticket id")
}

func NewTooManyRequestsError(message string) *AppError {
	return newAppError(http.StatusTooManyRequests, message, "Too many requests")
}

func NewInternalServerError(message string) *AppError {
	return newAppError(http.StatusInternalServerError, message, "Internal server error")
}
