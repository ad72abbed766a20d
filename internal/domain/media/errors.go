package media

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes engine failures for callers and the HTTP layer.
type ErrorCode string

const (
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeAccessDenied        ErrorCode = "ACCESS_DENIED"
	CodeSizeLimitExceeded   ErrorCode = "SIZE_LIMIT_EXCEEDED"
	CodeUnsupportedMimeType ErrorCode = "UNSUPPORTED_MIME_TYPE"
	CodeUnsupportedForType  ErrorCode = "UNSUPPORTED_FOR_TYPE"
	CodeTransferFailed      ErrorCode = "TRANSFER_FAILED"
	CodeCorrupted           ErrorCode = "CORRUPTED"
)

// Error is the engine's typed error. TransferFailed wraps the store-level
// cause and is safe to retry with backoff; the other codes are caller or
// data-integrity errors and are never retried automatically.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a typed engine error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError builds a typed engine error around an underlying cause.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the engine error code, or "" for untyped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given engine code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
