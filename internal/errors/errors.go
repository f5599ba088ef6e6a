package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of an inner AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeNotFound      = "NOT_FOUND"
	CodeLoadError     = "LOAD_ERROR"
	CodeEmptyResult   = "EMPTY_RESULT"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
)

// EmptyResultNotice is shown to the user whenever filtering leaves no rows.
const EmptyResultNotice = "No data matches the selected filters. Please adjust your selections."

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// NotFoundError reports a dataset source that does not exist.
func NotFoundError(path string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("the file '%s' was not found", path))
}

// LoadError reports a dataset that exists but cannot be parsed.
func LoadError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeLoadError,
		Message: message,
		Cause:   cause,
	}
}

// EmptyResultWarning signals that filter criteria matched zero rows.
func EmptyResultWarning() *AppError {
	return New(CodeEmptyResult, EmptyResultNotice)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func hasCode(err error, code string) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// IsNotFound reports whether any AppError in the chain carries CodeNotFound.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsLoadError reports whether any AppError in the chain carries CodeLoadError.
func IsLoadError(err error) bool { return hasCode(err, CodeLoadError) }

// IsEmptyResult reports whether any AppError in the chain carries CodeEmptyResult.
func IsEmptyResult(err error) bool { return hasCode(err, CodeEmptyResult) }

// IsInvalidInput reports whether any AppError in the chain carries CodeInvalidInput.
func IsInvalidInput(err error) bool { return hasCode(err, CodeInvalidInput) }

// StatusFor maps an error to the HTTP status the ui layer responds with.
func StatusFor(err error) int {
	switch GetCode(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeLoadError:
		return http.StatusUnprocessableEntity
	case CodeEmptyResult:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
