package fetchclient

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
)

// Blob carries a raw response payload together with its declared
// content type. Produced by ResponseTypeBlob materialization.
type Blob struct {
	Data        []byte
	ContentType string
}

// Response is the materialized outcome of one completed request. It is
// created once per request and never mutated afterwards.
type Response struct {
	// Body is the materialized payload. Its dynamic type depends on the
	// response type: decoded JSON value (map[string]any, []any, or
	// scalar), string for text, Blob for blob, []byte for binary. Nil
	// when the body was empty in JSON mode.
	Body any

	// RawBody holds the undecoded body bytes.
	RawBody []byte

	// StatusCode is the HTTP status code.
	StatusCode int

	// Status is the HTTP status line text.
	Status string

	// Headers are the raw response headers.
	Headers http.Header

	// Raw is the underlying platform response. Its body stream has been
	// fully consumed and closed.
	Raw *http.Response

	// Request is the underlying platform request that produced this
	// response.
	Request *http.Request
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the raw body as a string.
func (r *Response) Text() string {
	return string(r.RawBody)
}

// Decode unmarshals the raw body into v as JSON, regardless of the
// materialization mode the request used.
//
//	var users []User
//	resp, err := client.Get(ctx, "/users")
//	if err == nil {
//	    err = resp.Decode(&users)
//	}
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.RawBody, v)
}

// statusMessage derives the human-readable failure message for a
// non-2xx response, preferring a "message" field found inside a decoded
// object body.
func (r *Response) statusMessage() string {
	if obj, ok := r.Body.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("request failed with status code %d", r.StatusCode)
}
