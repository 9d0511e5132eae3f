package fetchclient

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// Client is an axios-style HTTP client facade with instance defaults,
// an ordered request interceptor chain, and per-verb convenience
// methods that all route through one request pipeline.
//
// Create a Client using New():
//
//	client := fetchclient.New(
//	    fetchclient.WithBaseURL("https://api.example.com"),
//	    fetchclient.WithTimeout(10*time.Second),
//	)
//
//	resp, err := client.Get(ctx, "/users",
//	    fetchclient.WithQueryParams(fetchclient.NewParams().Set("limit", 10)),
//	)
type Client struct {
	// Interceptors is the ordered request interceptor registry. Mutating
	// it is safe while requests are in flight; an in-flight request
	// keeps the chain it snapshotted.
	Interceptors *InterceptorChain

	// defaults are the instance defaults merged under every request.
	// Read-only after New; a request never mutates them.
	defaults Defaults

	// httpClient executes requests without the cookie jar.
	httpClient *http.Client

	// jarClient executes credentialed requests. Nil unless a cookie jar
	// was configured.
	jarClient *http.Client

	logger zerolog.Logger
	debug  bool
}

// New creates a Client from the given options.
//
// The underlying transport is built from the transport Config (or taken
// from WithTransport/WithHTTPClient) and wrapped with OpenTelemetry
// instrumentation unless disabled.
func New(opts ...Option) *Client {
	cfg := newConfig(opts...)

	httpClient := cfg.httpClient
	if httpClient == nil {
		var rt http.RoundTripper = cfg.roundTripper()
		if !cfg.disableInstrumentation {
			rt = newOtelTransport(rt, cfg)
		}
		httpClient = &http.Client{Transport: rt}
	} else if !cfg.disableInstrumentation {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		httpClient.Transport = newOtelTransport(base, cfg)
	}

	var jarClient *http.Client
	if cfg.jar != nil {
		jc := *httpClient
		jc.Jar = cfg.jar
		jarClient = &jc
	}

	logger := debugLogger
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	return &Client{
		Interceptors: NewInterceptorChain(),
		defaults:     cfg.defaults,
		httpClient:   httpClient,
		jarClient:    jarClient,
		logger:       logger,
		debug:        cfg.debug,
	}
}

// Defaults returns a copy of the client's instance defaults.
func (c *Client) Defaults() Defaults {
	return c.defaults
}

// doer selects the executing http.Client for a merged spec: the
// jar-enabled one when credentials are requested and a jar exists.
func (c *Client) doer(spec RequestSpec) *http.Client {
	if c.jarClient != nil && spec.WithCredentials != nil && *spec.WithCredentials {
		return c.jarClient
	}
	return c.httpClient
}

// Request executes an arbitrary request spec through the pipeline.
// This is the generic entry point; the verb methods below delegate
// here and add no behavior of their own.
func (c *Client) Request(spec RequestSpec) (*Response, error) {
	return c.execute(spec)
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.verb(ctx, http.MethodGet, url, nil, opts)
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.verb(ctx, http.MethodDelete, url, nil, opts)
}

// Post executes a POST request with the given body.
func (c *Client) Post(ctx context.Context, url string, body any, opts ...RequestOption) (*Response, error) {
	return c.verb(ctx, http.MethodPost, url, body, opts)
}

// Put executes a PUT request with the given body.
func (c *Client) Put(ctx context.Context, url string, body any, opts ...RequestOption) (*Response, error) {
	return c.verb(ctx, http.MethodPut, url, body, opts)
}

// Patch executes a PATCH request with the given body.
func (c *Client) Patch(ctx context.Context, url string, body any, opts ...RequestOption) (*Response, error) {
	return c.verb(ctx, http.MethodPatch, url, body, opts)
}

func (c *Client) verb(ctx context.Context, method, url string, body any, opts []RequestOption) (*Response, error) {
	spec := RequestSpec{
		Method:  method,
		URL:     url,
		Body:    body,
		Context: ctx,
	}
	for _, opt := range opts {
		opt(&spec)
	}
	return c.execute(spec)
}
