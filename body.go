package fetchclient

import (
	"bytes"
	"io"
	"strings"
	"sync/atomic"

	json "github.com/goccy/go-json"
)

const contentTypeJSON = "application/json"

// serializeBody turns the spec body into an io.Reader and returns the
// possibly updated header map.
//
// Encoding rules:
//   - nil: no body
//   - string: raw text passthrough
//   - []byte: raw bytes passthrough
//   - io.Reader: passthrough
//   - anything else: sanitized and JSON-encoded, with
//     "Content-Type: application/json" set unless an existing header
//     (matched case-insensitively) already names a json-flavored type
func serializeBody(spec RequestSpec) (io.Reader, map[string]string, error) {
	switch body := spec.Body.(type) {
	case nil:
		return nil, spec.Headers, nil
	case string:
		return strings.NewReader(body), spec.Headers, nil
	case []byte:
		return bytes.NewReader(body), spec.Headers, nil
	case io.Reader:
		return body, spec.Headers, nil
	default:
		data, err := json.Marshal(Sanitize(body))
		if err != nil {
			return nil, nil, &Error{
				Message: "failed to encode request body",
				Code:    ErrCodeInvalidBody,
				Spec:    &spec,
				Cause:   err,
			}
		}
		return bytes.NewReader(data), setJSONContentType(spec.Headers), nil
	}
}

// setJSONContentType ensures the header map names a JSON content type.
// The key name is matched case-insensitively, but an existing key keeps
// its original casing on overwrite; header key casing is never
// normalized on write.
func setJSONContentType(headers map[string]string) map[string]string {
	for k, v := range headers {
		if !strings.EqualFold(k, "Content-Type") {
			continue
		}
		if strings.Contains(strings.ToLower(v), "json") {
			return headers
		}
		headers[k] = contentTypeJSON
		return headers
	}
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	headers["Content-Type"] = contentTypeJSON
	return headers
}

// progressReader wraps a response body to report cumulative bytes read.
// It wraps rather than tees the stream, so the primary materialization
// read is never consumed or raced by progress tracking.
type progressReader struct {
	body   io.ReadCloser
	total  int64
	read   atomic.Int64
	report func(ProgressEvent)
}

// newProgressReader wraps body so every read reports progress. total is
// the declared Content-Length, 0 when unknown.
func newProgressReader(body io.ReadCloser, total int64, report func(ProgressEvent)) io.ReadCloser {
	if body == nil || report == nil {
		return body
	}
	return &progressReader{body: body, total: total, report: report}
}

// Read reads from the underlying body and reports the running total.
func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.body.Read(p)
	if n > 0 {
		r.report(ProgressEvent{Loaded: r.read.Add(int64(n)), Total: r.total})
	}
	return n, err
}

// Close closes the underlying body.
func (r *progressReader) Close() error {
	return r.body.Close()
}
