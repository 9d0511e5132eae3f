package fetchclient

import (
	"context"
	"time"
)

// ResponseType selects how the response body is materialized.
type ResponseType string

const (
	// ResponseTypeJSON decodes the body as JSON into map/slice/scalar
	// values. This is the default.
	ResponseTypeJSON ResponseType = "json"

	// ResponseTypeText returns the body as a string.
	ResponseTypeText ResponseType = "text"

	// ResponseTypeBlob returns the body as a Blob carrying the raw bytes
	// and the response content type.
	ResponseTypeBlob ResponseType = "blob"

	// ResponseTypeBinary returns the body as a raw []byte.
	ResponseTypeBinary ResponseType = "binary"
)

// ProgressEvent reports cumulative download progress.
type ProgressEvent struct {
	// Loaded is the number of body bytes read so far.
	Loaded int64

	// Total is the declared body length from the response Content-Length
	// header, or 0 when the length is unknown.
	Total int64
}

// RequestSpec describes one HTTP request. A zero value is usable: the
// method defaults to GET and the response type to JSON after merging
// with the client defaults.
//
// RequestSpec is a value type. The pipeline threads copies through its
// transformation steps, so interceptors never alias the client defaults
// or each other's state.
type RequestSpec struct {
	// URL is the request path or absolute URL. Relative URLs are joined
	// onto BaseURL; absolute ones bypass it.
	URL string

	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string

	// BaseURL is prepended to relative URLs. Usually supplied by the
	// client defaults rather than per call.
	BaseURL string

	// Headers are single-valued request headers. Per-call keys override
	// default keys of the same name, case-sensitively; key casing is
	// preserved on the wire.
	Headers map[string]string

	// Params are per-call query parameters, appended to URL by the
	// built-in first interceptor. Never merged with defaults.
	Params *Params

	// Body is the request payload. Structured values are sanitized and
	// JSON-encoded; string, []byte, and io.Reader pass through raw.
	Body any

	// Context carries the caller's cancellation signal. Nil means no
	// caller-side cancellation.
	Context context.Context

	// Timeout bounds the whole request. Zero means the client default,
	// which itself may be zero (no timeout).
	Timeout time.Duration

	// WithCredentials routes the request through the client's cookie
	// jar when set. Nil means the client default.
	WithCredentials *bool

	// ResponseType selects body materialization. Empty means the client
	// default, falling back to JSON.
	ResponseType ResponseType

	// OnDownloadProgress, when set, receives cumulative byte counts
	// while the response body is read.
	OnDownloadProgress func(ProgressEvent)
}

// SetHeader returns a copy of the spec with the header applied. The
// header map is copied, keeping interceptors pure with respect to the
// spec they received.
func (s RequestSpec) SetHeader(key, value string) RequestSpec {
	headers := make(map[string]string, len(s.Headers)+1)
	for k, v := range s.Headers {
		headers[k] = v
	}
	headers[key] = value
	s.Headers = headers
	return s
}

// RequestOption customizes a single request issued through the verb
// helpers (Get, Post, ...).
type RequestOption func(*RequestSpec)

// WithQueryParams sets the query parameters for this request.
func WithQueryParams(p *Params) RequestOption {
	return func(s *RequestSpec) {
		s.Params = p
	}
}

// WithHeader sets a single header for this request.
func WithHeader(key, value string) RequestOption {
	return func(s *RequestSpec) {
		if s.Headers == nil {
			s.Headers = make(map[string]string)
		}
		s.Headers[key] = value
	}
}

// WithHeaders sets multiple headers for this request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(s *RequestSpec) {
		if s.Headers == nil {
			s.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			s.Headers[k] = v
		}
	}
}

// WithRequestTimeout bounds this request, overriding the client default.
func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(s *RequestSpec) {
		s.Timeout = timeout
	}
}

// WithResponseType selects body materialization for this request.
func WithResponseType(rt ResponseType) RequestOption {
	return func(s *RequestSpec) {
		s.ResponseType = rt
	}
}

// WithRequestCredentials overrides the client's credential-inclusion
// default for this request.
func WithRequestCredentials(include bool) RequestOption {
	return func(s *RequestSpec) {
		s.WithCredentials = &include
	}
}

// WithDownloadProgress registers a progress callback for this request.
func WithDownloadProgress(fn func(ProgressEvent)) RequestOption {
	return func(s *RequestSpec) {
		s.OnDownloadProgress = fn
	}
}

// WithBody sets the request body. The verb helpers for bodied methods
// take the body positionally; this exists for Get/Delete edge cases.
func WithBody(body any) RequestOption {
	return func(s *RequestSpec) {
		s.Body = body
	}
}
