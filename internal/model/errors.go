// Package model holds the shared request/response types that flow through
// the fetch -> extract -> chunk -> aggregate pipeline, plus the closed
// error and warning code enums described by the tool envelope contract.
package model

import "fmt"

// ErrorCode is the closed top-level error taxonomy.
type ErrorCode string

const (
	ErrInvalidParams      ErrorCode = "invalid_params"
	ErrNotConfigured      ErrorCode = "not_configured"
	ErrNotSupported       ErrorCode = "not_supported"
	ErrTimeout            ErrorCode = "timeout"
	ErrFetchFailed        ErrorCode = "fetch_failed"
	ErrProviderUnavailable ErrorCode = "provider_unavailable"
	ErrProviderError       ErrorCode = "provider_error"
	ErrRateLimited         ErrorCode = "rate_limited"
	ErrCacheError          ErrorCode = "cache_error"
	ErrLLMFailed           ErrorCode = "llm_failed"
	ErrInternal            ErrorCode = "internal"
)

// Error is the envelope's `error` object. It implements the standard error
// interface so it can flow through normal Go error handling until the
// aggregator decides whether to surface it at the top level or record it
// against a single URL's result.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error
}

func NewError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func WrapError(code ErrorCode, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// AsError extracts a *Error from any error, wrapping unrecognized errors as
// internal errors so callers always have a code to report.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var me *Error
	if ok := asError(err, &me); ok {
		return me
	}
	return &Error{Code: ErrInternal, Message: err.Error(), cause: err}
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
