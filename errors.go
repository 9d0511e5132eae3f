package fetchclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Machine-readable error codes carried on Error.Code.
// Callers distinguish failure kinds via Code and StatusCode,
// not via error identity.
const (
	// ErrCodeTimeout is set when the request timeout elapsed before the
	// transport resolved.
	ErrCodeTimeout = "ECONNABORTED"

	// ErrCodeCanceled is set when the caller's context was canceled
	// before the transport resolved.
	ErrCodeCanceled = "ERR_CANCELED"

	// ErrCodeNetwork is set on transport-level failures that produced
	// no HTTP status.
	ErrCodeNetwork = "ERR_NETWORK"

	// ErrCodeInvalidJSON is set when a success response carried a body
	// that is not valid JSON while JSON materialization was requested.
	ErrCodeInvalidJSON = "INVALID_JSON_RESPONSE"

	// ErrCodeInvalidBody is set when a structured request body could
	// not be encoded.
	ErrCodeInvalidBody = "ERR_INVALID_BODY"

	// ErrCodeBadResponseType is set when an unknown response type was
	// requested. This indicates a programming error at the call site.
	ErrCodeBadResponseType = "ERR_BAD_RESPONSE_TYPE"
)

// Error is the uniform error type raised at the pipeline boundary.
//
// All failure kinds (transport failure, timeout, non-2xx status, decode
// failure) surface as *Error. Use the Code and StatusCode fields, or the
// Is* helpers, to tell them apart:
//
//	resp, err := client.Get(ctx, "/users")
//	if fetchclient.IsTimeout(err) {
//	    // retry, back off, ...
//	}
type Error struct {
	// Message is a human-readable description. For HTTP status failures
	// it prefers the "message" field of a decoded object body.
	Message string

	// StatusCode is the HTTP status, when one was observed. Zero for
	// pure transport failures.
	StatusCode int

	// Code is one of the ErrCode* constants, or empty for plain HTTP
	// status failures.
	Code string

	// Spec is the fully merged request specification that produced the
	// failure, when available.
	Spec *RequestSpec

	// Request is the underlying *http.Request that was (or would have
	// been) dispatched.
	Request *http.Request

	// Response is the partially materialized response, when the failure
	// happened after the transport resolved.
	Response *Response

	// Cause is the underlying error, when one exists.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "fetchclient: " + e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error codes for errors.Is.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code != "" && e.Code == targetErr.Code
	}
	return false
}

// IsTimeout reports whether err is a request timeout.
func IsTimeout(err error) bool {
	return hasCode(err, ErrCodeTimeout)
}

// IsCanceled reports whether err is a caller-side cancellation.
func IsCanceled(err error) bool {
	return hasCode(err, ErrCodeCanceled)
}

// IsNetworkError reports whether err is a transport-level failure
// without an HTTP status.
func IsNetworkError(err error) bool {
	return hasCode(err, ErrCodeNetwork)
}

// HasStatus reports whether err carries the given HTTP status code.
func HasStatus(err error, status int) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.StatusCode == status
	}
	return false
}

func hasCode(err error, code string) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// timeoutError builds the timeout-flavored error used as the composed
// context's cancellation cause.
func timeoutError(timeout time.Duration) *Error {
	return &Error{
		Message:    fmt.Sprintf("timeout of %s exceeded", timeout),
		Code:       ErrCodeTimeout,
		StatusCode: http.StatusRequestTimeout,
	}
}
