package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors the Flickr API can produce
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeAPI         ErrorType = "api"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents an API error with type information.
// Code is the HTTP status for transport failures and the Flickr error code
// for "stat":"fail" responses.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// New creates an Error
func New(errorType ErrorType, code int, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errorType,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	}
}

// IsType reports whether err wraps an *Error of the given type
func IsType(err error, errorType ErrorType) bool {
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == errorType
	}
	return false
}

// Flickr error codes that mean the credentials were rejected
const (
	CodeInvalidAPIKey    = 100
	CodeInvalidSignature = 96
	CodeMissingSignature = 97
	CodeNotFound         = 1
)

// TypeForAPICode classifies the error code of a "stat":"fail" response
func TypeForAPICode(code int) ErrorType {
	switch code {
	case CodeInvalidAPIKey, CodeInvalidSignature, CodeMissingSignature:
		return ErrorTypeAuth
	case CodeNotFound:
		return ErrorTypeNotFound
	default:
		return ErrorTypeAPI
	}
}

// TypeForStatusCode classifies a non-200 HTTP status
func TypeForStatusCode(statusCode int) ErrorType {
	switch {
	case statusCode == 401 || statusCode == 403:
		return ErrorTypeAuth
	case statusCode == 404:
		return ErrorTypeNotFound
	case statusCode == 429:
		return ErrorTypeRateLimit
	case statusCode >= 500:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}
