// Package apperr defines the typed error taxonomy shared across the session runtime.
package apperr

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError is the runtime-wide error carrier. Code identifies the failure class,
// UserMessage is safe to surface to the presentation layer.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func (e *AppError) Cause() error {
	return e.Unwrap()
}

// Is matches two AppErrors by code so that sentinel comparisons survive wrapping.
func (e *AppError) Is(target error) bool {
	if e == nil {
		return target == nil
	}

	other, ok := target.(*AppError)
	if !ok || other == nil {
		return false
	}

	return e.Code == other.Code
}

// ErrNoData indicates that a remote document is absent or could not be decoded
// into the expected entity.
var ErrNoData = &AppError{
	Code:        "E100",
	Message:     "no data for requested document",
	UserMessage: "Nothing here yet",
	Severity:    SeverityLow,
	Retryable:   false,
}

// ErrNoUserID indicates that no authenticated identity is available.
var ErrNoUserID = &AppError{
	Code:        "E101",
	Message:     "no authenticated user id",
	UserMessage: "Please sign in to continue",
	Severity:    SeverityLow,
	Retryable:   false,
}

func NewInvalidRequest(msg string) *AppError {
	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("invalid request: %s", msg),
		UserMessage: "Something went wrong, please try again",
		Severity:    SeverityLow,
		Retryable:   false,
	}
}

func NewDecodeError(path string, cause error) *AppError {
	return &AppError{
		Code:        "E201",
		Message:     fmt.Sprintf("decode payload at %s", path),
		UserMessage: "Something went wrong, please try again",
		Severity:    SeverityMedium,
		Retryable:   false,
		cause:       cause,
	}
}

func NewInvalidEndpoint(path string) *AppError {
	return &AppError{
		Code:        "E202",
		Message:     fmt.Sprintf("invalid store path: %q", path),
		UserMessage: "Something went wrong, please try again",
		Severity:    SeverityMedium,
		Retryable:   false,
	}
}

func NewInvalidResponse(msg string) *AppError {
	return &AppError{
		Code:        "E203",
		Message:     fmt.Sprintf("invalid store response: %s", msg),
		UserMessage: "Something went wrong, please try again",
		Severity:    SeverityMedium,
		Retryable:   false,
	}
}

func NewRemoteError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E300",
		Message:     fmt.Sprintf("remote store error: %s", underlyingMsg),
		UserMessage: "Connection problem, please try again later",
		Severity:    SeverityHigh,
		Retryable:   true,
		cause:       cause,
	}
}
