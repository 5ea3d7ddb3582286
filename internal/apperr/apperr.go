package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies one expected failure mode. The set is closed: callers
// branch on codes programmatically, so adding a code is an API change.
type Code string

const (
	CodeValidationFailed Code = "validation-failed"
	CodeUnauthorized     Code = "unauthorized"
	CodeForbidden        Code = "forbidden"
	CodeNotFound         Code = "not-found"
	CodeAlreadyExists    Code = "already-exists"
	CodeFileTooLarge     Code = "file-too-large"
	CodeInvalidFileType  Code = "invalid-file-type"
	CodeUploadFailed     Code = "upload-failed"
	CodeInternal         Code = "internal-error"
	CodeNetwork          Code = "network-error"
	CodeTimeout          Code = "timeout"
	CodeUpstream         Code = "upstream-error"
	CodeUnknown          Code = "unknown-error"
)

// Error is the single error type crossing the service boundary. Message is
// user-facing; Details carries structured diagnostics (validator output, the
// raw store payload) for logging, never for end-user display.
type Error struct {
	Code    Code
	Status  int
	Message string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two *Error values by code, so errors.Is(err, apperr.NotFound(""))
// style comparisons work without comparing messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithCause attaches an underlying error, returning a copy.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause
	return &clone
}

// WithDetails attaches structured diagnostics, returning a copy.
func (e *Error) WithDetails(details any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

func newError(code Code, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func Validation(message string) *Error {
	return newError(CodeValidationFailed, http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Du skal være logget ind for at udføre denne handling."
	}
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Du har ikke adgang til denne handling."
	}
	return newError(CodeForbidden, http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Det ønskede indhold blev ikke fundet."
	}
	return newError(CodeNotFound, http.StatusNotFound, message)
}

func AlreadyExists(message string) *Error {
	return newError(CodeAlreadyExists, http.StatusConflict, message)
}

func FileTooLarge(message string) *Error {
	return newError(CodeFileTooLarge, http.StatusRequestEntityTooLarge, message)
}

func InvalidFileType(message string) *Error {
	return newError(CodeInvalidFileType, http.StatusUnsupportedMediaType, message)
}

func UploadFailed(message string) *Error {
	return newError(CodeUploadFailed, http.StatusInternalServerError, message)
}

func Internal(message string) *Error {
	if message == "" {
		message = "Der opstod en intern fejl. Prøv igen senere."
	}
	return newError(CodeInternal, http.StatusInternalServerError, message)
}

func Network(message string) *Error {
	if message == "" {
		message = "Kunne ikke få forbindelse til serveren. Tjek din internetforbindelse."
	}
	return newError(CodeNetwork, http.StatusServiceUnavailable, message)
}

func Timeout(message string) *Error {
	if message == "" {
		message = "Forespørgslen tog for lang tid. Prøv igen."
	}
	return newError(CodeTimeout, http.StatusGatewayTimeout, message)
}

// Upstream wraps an error response from the content store, passing its HTTP
// status through. Status 0 defaults to 500.
func Upstream(status int, message string) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return newError(CodeUpstream, status, message)
}

func Unknown(message string) *Error {
	if message == "" {
		message = "Der opstod en ukendt fejl."
	}
	return newError(CodeUnknown, http.StatusInternalServerError, message)
}

// From classifies an arbitrary error into an *Error. Existing *Error values
// pass through unchanged; anything else becomes unknown-error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unknown("").WithCause(err)
}

// CodeOf returns the code of err, or CodeUnknown for unclassified errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}
