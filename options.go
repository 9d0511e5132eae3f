// Package fetchclient reproduces an axios-style request/response
// contract on top of net/http, with instance defaults, an ordered
// request interceptor chain, typed response materialization, and
// OpenTelemetry instrumentation.
package fetchclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// scope is the instrumentation scope name for OpenTelemetry.
const scope = "github.com/helio-labs/fetchclient"

// Defaults are the instance defaults merged under every request issued
// by a client. Owned by the client, read-only per request.
type Defaults struct {
	// BaseURL is prepended to relative request URLs.
	BaseURL string

	// Method is the fallback HTTP method when a spec names none.
	// Empty means GET.
	Method string

	// Headers are applied under every request's headers. Per-call keys
	// of the same (case-sensitive) name win.
	Headers map[string]string

	// Timeout bounds requests that do not set their own. Zero means no
	// timeout.
	Timeout time.Duration

	// WithCredentials routes requests through the cookie jar by default.
	WithCredentials bool

	// ResponseType is the default body materialization. Empty means JSON.
	ResponseType ResponseType
}

// Config holds the HTTP transport tuning parameters. Use
// DefaultConfig() as a starting point and adjust fields as needed.
type Config struct {
	// MaxIdleConns caps idle keep-alive connections across all hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost caps idle connections kept per host.
	MaxIdleConnsPerHost int

	// MaxConnsPerHost caps total (idle + active) connections per host.
	// Zero means unlimited.
	MaxConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays pooled.
	IdleConnTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake.
	TLSHandshakeTimeout time.Duration

	// ExpectContinueTimeout bounds the wait for a 100 Continue response.
	ExpectContinueTimeout time.Duration

	// DialTimeout bounds TCP connection establishment.
	DialTimeout time.Duration

	// KeepAlive is the TCP keep-alive probe interval.
	KeepAlive time.Duration

	// DisableCompression disables transparent gzip negotiation.
	DisableCompression bool

	// ForceHTTP2 forces HTTP/2 (requires HTTPS).
	ForceHTTP2 bool
}

// DefaultConfig returns a balanced transport configuration suitable for
// typical API client use.
func DefaultConfig() Config {
	return Config{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     100,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DialTimeout: 5 * time.Second,
		KeepAlive:   30 * time.Second,

		DisableCompression: false,
		ForceHTTP2:         false,
	}
}

// clientConfig holds all configuration gathered from options.
type clientConfig struct {
	defaults   Defaults
	httpConfig Config

	transport  http.RoundTripper
	httpClient *http.Client
	jar        http.CookieJar

	tlsConfig            *tls.Config
	proxyURL             *url.URL
	proxyFromEnvironment bool

	debug  bool
	logger *zerolog.Logger

	serviceName            string
	tracerProvider         trace.TracerProvider
	meterProvider          metric.MeterProvider
	disableInstrumentation bool
}

// newConfig creates a config with defaults and applies options.
func newConfig(opts ...Option) *clientConfig {
	cfg := &clientConfig{
		httpConfig:           DefaultConfig(),
		tracerProvider:       otel.GetTracerProvider(),
		meterProvider:        otel.GetMeterProvider(),
		proxyFromEnvironment: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// roundTripper returns the configured transport, building one from the
// transport Config when none was supplied.
func (cfg *clientConfig) roundTripper() http.RoundTripper {
	if cfg.transport != nil {
		return cfg.transport
	}
	return cfg.buildTransport()
}

// buildTransport creates an http.Transport from the configuration.
func (cfg *clientConfig) buildTransport() *http.Transport {
	hc := cfg.httpConfig

	dialer := &net.Dialer{
		Timeout:   hc.DialTimeout,
		KeepAlive: hc.KeepAlive,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          hc.MaxIdleConns,
		MaxIdleConnsPerHost:   hc.MaxIdleConnsPerHost,
		MaxConnsPerHost:       hc.MaxConnsPerHost,
		IdleConnTimeout:       hc.IdleConnTimeout,
		TLSHandshakeTimeout:   hc.TLSHandshakeTimeout,
		ExpectContinueTimeout: hc.ExpectContinueTimeout,
		DisableCompression:    hc.DisableCompression,
		TLSClientConfig:       cfg.tlsConfig,
		ForceAttemptHTTP2:     hc.ForceHTTP2,
	}

	if cfg.proxyURL != nil {
		transport.Proxy = http.ProxyURL(cfg.proxyURL)
	} else if cfg.proxyFromEnvironment {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return transport
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the default base URL for all requests.
func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) {
		cfg.defaults.BaseURL = baseURL
	}
}

// WithDefaultHeaders sets headers applied under every request.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(cfg *clientConfig) {
		if cfg.defaults.Headers == nil {
			cfg.defaults.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			cfg.defaults.Headers[k] = v
		}
	}
}

// WithDefaultHeader sets a single header applied under every request.
func WithDefaultHeader(key, value string) Option {
	return func(cfg *clientConfig) {
		if cfg.defaults.Headers == nil {
			cfg.defaults.Headers = make(map[string]string)
		}
		cfg.defaults.Headers[key] = value
	}
}

// WithTimeout sets the default per-request timeout. Individual requests
// override it with WithRequestTimeout or RequestSpec.Timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.defaults.Timeout = timeout
	}
}

// WithCredentials sets the default credential-inclusion policy.
// Credentialed requests use the client's cookie jar (see WithCookieJar).
func WithCredentials(include bool) Option {
	return func(cfg *clientConfig) {
		cfg.defaults.WithCredentials = include
	}
}

// WithDefaultResponseType sets the default body materialization.
func WithDefaultResponseType(rt ResponseType) Option {
	return func(cfg *clientConfig) {
		cfg.defaults.ResponseType = rt
	}
}

// WithConfig sets the HTTP transport tuning configuration.
func WithConfig(c Config) Option {
	return func(cfg *clientConfig) {
		cfg.httpConfig = c
	}
}

// WithTransport sets a custom transport, bypassing the transport Config.
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *clientConfig) {
		cfg.transport = rt
	}
}

// WithMockTransport installs a MockTransport as the client transport.
// Convenience for tests.
func WithMockTransport(mock *MockTransport) Option {
	return WithTransport(mock)
}

// WithHTTPClient uses an existing *http.Client. Its transport is still
// wrapped with instrumentation unless disabled. The client-level Timeout
// field should be left zero; request timeouts are driven through the
// composed context instead.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.httpClient = client
	}
}

// WithCookieJar sets the cookie jar used by credentialed requests.
func WithCookieJar(jar http.CookieJar) Option {
	return func(cfg *clientConfig) {
		cfg.jar = jar
	}
}

// WithTLSConfig sets the TLS configuration for the built transport.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(cfg *clientConfig) {
		cfg.tlsConfig = tlsConfig
	}
}

// WithProxyURL routes requests through the given proxy instead of the
// environment-configured one.
func WithProxyURL(proxyURL *url.URL) Option {
	return func(cfg *clientConfig) {
		cfg.proxyURL = proxyURL
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) Option {
	return func(cfg *clientConfig) {
		cfg.debug = debug
	}
}

// WithLogger overrides the debug logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.logger = &logger
	}
}

// WithServiceName sets an identifier for this client on spans and
// metrics ("http.client.name" attribute).
func WithServiceName(name string) Option {
	return func(cfg *clientConfig) {
		cfg.serviceName = name
	}
}

// WithTracerProvider sets a custom OpenTelemetry TracerProvider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *clientConfig) {
		cfg.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom OpenTelemetry MeterProvider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *clientConfig) {
		cfg.meterProvider = mp
	}
}

// WithoutInstrumentation disables the OpenTelemetry transport wrapper.
func WithoutInstrumentation() Option {
	return func(cfg *clientConfig) {
		cfg.disableInstrumentation = true
	}
}
