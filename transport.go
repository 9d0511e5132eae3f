package fetchclient

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Compile-time interface check.
var _ http.RoundTripper = (*otelTransport)(nil)

// otelTransport wraps an http.RoundTripper with OpenTelemetry tracing
// and metrics. One span is created per transport call, with W3C trace
// context injected into the outgoing headers.
type otelTransport struct {
	base        http.RoundTripper
	tracer      trace.Tracer
	propagator  propagation.TextMapPropagator
	metrics     *clientMetrics
	serviceName string
}

// newOtelTransport creates a new instrumented transport.
func newOtelTransport(base http.RoundTripper, cfg *clientConfig) *otelTransport {
	meter := cfg.meterProvider.Meter(scope)
	metrics, _ := newClientMetrics(meter)

	return &otelTransport{
		base:   base,
		tracer: cfg.tracerProvider.Tracer(scope),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
		metrics:     metrics,
		serviceName: cfg.serviceName,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *otelTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	ctx, span := t.tracer.Start(req.Context(), "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(t.requestAttributes(req)...),
	)
	defer span.End()

	t.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	baseAttrs := t.baseAttributes()
	t.metrics.recordActiveRequestStart(ctx, baseAttrs)
	defer t.metrics.recordActiveRequestEnd(ctx, baseAttrs)

	req = req.WithContext(ctx)
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.metrics.recordError(ctx, baseAttrs)
		t.metrics.recordRequestDuration(ctx, duration, baseAttrs)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	respAttrs := make([]attribute.KeyValue, 0, len(baseAttrs)+1)
	respAttrs = append(respAttrs, baseAttrs...)
	respAttrs = append(respAttrs, attribute.Int("http.response.status_code", resp.StatusCode))
	t.metrics.recordRequestDuration(ctx, duration, respAttrs)

	return resp, nil
}

// baseAttributes returns common attributes for spans and metrics.
func (t *otelTransport) baseAttributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 1)
	if t.serviceName != "" {
		attrs = append(attrs, attribute.String("http.client.name", t.serviceName))
	}
	return attrs
}

// requestAttributes returns span attributes for the request.
func (t *otelTransport) requestAttributes(req *http.Request) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 6)
	attrs = append(attrs, t.baseAttributes()...)
	attrs = append(attrs, attribute.String("http.request.method", req.Method))

	if req.URL != nil {
		attrs = append(attrs, attribute.String("url.full", req.URL.String()))
		attrs = append(attrs, attribute.String("url.scheme", req.URL.Scheme))

		if host := req.URL.Hostname(); host != "" {
			attrs = append(attrs, attribute.String("server.address", host))
		}
		if port := req.URL.Port(); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				attrs = append(attrs, attribute.Int("server.port", p))
			}
		}
	}

	return attrs
}
