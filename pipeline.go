package fetchclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// execute drives one request through the pipeline:
// merge -> interceptors -> body serialization -> URL composition ->
// cancellation -> transport call -> materialization.
func (c *Client) execute(spec RequestSpec) (*Response, error) {
	merged := c.mergeSpec(spec)

	// Interceptor pass. The query interceptor is built in and always
	// runs first; the registered chain follows in registration order.
	merged = applyQueryParams(merged)
	for _, ic := range c.Interceptors.snapshot() {
		merged = ic(merged)
	}

	bodyReader, headers, err := serializeBody(merged)
	if err != nil {
		return nil, err
	}
	merged.Headers = headers

	fullURL := combineURL(merged.BaseURL, merged.URL)

	ctx, cancel := composeContext(merged.Context, merged.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, merged.Method, fullURL, bodyReader)
	if err != nil {
		return nil, &Error{
			Message: "failed to build request for " + fullURL,
			Spec:    &merged,
			Cause:   err,
		}
	}
	// Direct map assignment keeps the caller's header key casing; Set
	// would canonicalize it.
	for k, v := range merged.Headers {
		req.Header[k] = []string{v}
	}

	if c.debug {
		logRequest(c.logger, req)
	}

	start := time.Now()
	httpResp, err := c.doer(merged).Do(req)
	if err != nil {
		return nil, classifyTransportError(merged, req, ctx, err)
	}
	if c.debug {
		logResponse(c.logger, httpResp, time.Since(start))
	}

	return materialize(merged, req, ctx, httpResp)
}

// mergeSpec overlays the per-call spec onto the client defaults. Headers
// merge as a shallow, case-sensitive key union with per-call keys
// winning; query parameters are per-call only and never merged.
func (c *Client) mergeSpec(spec RequestSpec) RequestSpec {
	d := c.defaults

	if spec.Method == "" {
		spec.Method = d.Method
	}
	if spec.Method == "" {
		spec.Method = http.MethodGet
	}
	spec.Method = strings.ToUpper(spec.Method)

	if spec.BaseURL == "" {
		spec.BaseURL = d.BaseURL
	}

	headers := make(map[string]string, len(d.Headers)+len(spec.Headers))
	for k, v := range d.Headers {
		headers[k] = v
	}
	for k, v := range spec.Headers {
		headers[k] = v
	}
	spec.Headers = headers

	if spec.Timeout == 0 {
		spec.Timeout = d.Timeout
	}
	if spec.ResponseType == "" {
		spec.ResponseType = d.ResponseType
	}
	if spec.ResponseType == "" {
		spec.ResponseType = ResponseTypeJSON
	}
	if spec.WithCredentials == nil {
		v := d.WithCredentials
		spec.WithCredentials = &v
	}
	if spec.Context == nil {
		spec.Context = context.Background()
	}
	return spec
}

// isAbsoluteURL reports whether u carries its own scheme and host.
func isAbsoluteURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// combineURL joins the base URL and the request URL, normalizing the
// trailing/leading slashes to exactly one separator. Absolute request
// URLs bypass the base.
func combineURL(base, path string) string {
	if base == "" || isAbsoluteURL(path) {
		return path
	}
	if path == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

// classifyTransportError maps a transport failure onto the uniform
// error type: the composed context's timeout cause wins, then caller
// cancellation, then a plain network failure.
func classifyTransportError(spec RequestSpec, req *http.Request, ctx context.Context, err error) error {
	var te *Error
	if errors.As(context.Cause(ctx), &te) && te.Code == ErrCodeTimeout {
		out := *te
		out.Spec = &spec
		out.Request = req
		out.Cause = err
		return &out
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return &Error{
			Message: "request canceled",
			Code:    ErrCodeCanceled,
			Spec:    &spec,
			Request: req,
			Cause:   err,
		}
	}
	return &Error{
		Message: "network error",
		Code:    ErrCodeNetwork,
		Spec:    &spec,
		Request: req,
		Cause:   err,
	}
}

// materialize reads the response body and decodes it according to the
// requested response type, translating non-2xx statuses and decode
// failures into the uniform error type.
func materialize(spec RequestSpec, req *http.Request, ctx context.Context, httpResp *http.Response) (*Response, error) {
	body := httpResp.Body
	if spec.OnDownloadProgress != nil {
		total := httpResp.ContentLength
		if total < 0 {
			total = 0
		}
		body = newProgressReader(body, total, spec.OnDownloadProgress)
	}

	raw, readErr := io.ReadAll(body)
	_ = body.Close()
	if readErr != nil {
		return nil, classifyTransportError(spec, req, ctx, readErr)
	}

	resp := &Response{
		RawBody:    raw,
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Raw:        httpResp,
		Request:    req,
	}
	ok := resp.IsSuccess()

	switch {
	case spec.ResponseType == ResponseTypeJSON || !ok:
		// Non-success bodies always take the textual path so a failure
		// message can be extracted regardless of the requested type.
		if len(raw) > 0 {
			var decoded any
			if err := json.Unmarshal(raw, &decoded); err != nil {
				if ok {
					return resp, &Error{
						Message:    "response body is not valid JSON",
						Code:       ErrCodeInvalidJSON,
						StatusCode: http.StatusBadRequest,
						Spec:       &spec,
						Request:    req,
						Response:   resp,
						Cause:      err,
					}
				}
				// A failure status with an undecodable body degrades to
				// raw text instead of raising a decode error.
				resp.Body = string(raw)
			} else {
				resp.Body = decoded
			}
		}
	case spec.ResponseType == ResponseTypeText:
		resp.Body = string(raw)
	case spec.ResponseType == ResponseTypeBlob:
		resp.Body = Blob{Data: raw, ContentType: httpResp.Header.Get("Content-Type")}
	case spec.ResponseType == ResponseTypeBinary:
		resp.Body = raw
	default:
		return resp, &Error{
			Message:  fmt.Sprintf("unsupported response type %q", spec.ResponseType),
			Code:     ErrCodeBadResponseType,
			Spec:     &spec,
			Request:  req,
			Response: resp,
		}
	}

	if !ok {
		return resp, &Error{
			Message:    resp.statusMessage(),
			StatusCode: resp.StatusCode,
			Spec:       &spec,
			Request:    req,
			Response:   resp,
		}
	}
	return resp, nil
}
