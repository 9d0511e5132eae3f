package fetchclient

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Interceptor transforms a request spec before dispatch. Interceptors
// run strictly in registration order; each receives the spec produced
// by the previous one and returns a (possibly identical) replacement.
// Interceptors are expected to be pure and must not block.
//
// Common use cases:
//   - Adding authentication headers (Bearer tokens, API keys)
//   - Injecting correlation IDs
//   - Rewriting URLs or default query parameters
type Interceptor func(RequestSpec) RequestSpec

// Handle identifies a registered interceptor for later removal.
type Handle int

type interceptorEntry struct {
	handle Handle
	fn     Interceptor
}

// InterceptorChain manages the ordered request interceptors of one
// client. Registration methods are safe for concurrent use; an in-flight
// request observes the chain as it existed when its interceptor pass
// started.
type InterceptorChain struct {
	mu      sync.Mutex
	next    Handle
	entries []interceptorEntry
}

// NewInterceptorChain creates an empty interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// Use appends an interceptor and returns a handle for Eject.
func (c *InterceptorChain) Use(fn Interceptor) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.entries = append(c.entries, interceptorEntry{handle: c.next, fn: fn})
	return c.next
}

// Eject removes the interceptor registered under the given handle.
// Unknown handles are ignored.
func (c *InterceptorChain) Eject(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.entries {
		if e.handle == h {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Clear removes all registered interceptors.
func (c *InterceptorChain) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// Len returns the number of registered interceptors.
func (c *InterceptorChain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// snapshot returns the current interceptors in registration order.
func (c *InterceptorChain) snapshot() []Interceptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Interceptor, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.fn
	}
	return out
}

// applyQueryParams is the built-in first interceptor. It appends the
// encoded query string to the spec URL, using '&' when the URL already
// carries a query, '?' otherwise.
func applyQueryParams(spec RequestSpec) RequestSpec {
	if spec.Params == nil {
		return spec
	}
	qs := spec.Params.Encode()
	if qs == "" {
		return spec
	}
	sep := "?"
	if strings.Contains(spec.URL, "?") {
		sep = "&"
	}
	spec.URL += sep + qs
	return spec
}

// Common interceptor helpers

// AuthBearerInterceptor returns an interceptor that adds a Bearer token.
func AuthBearerInterceptor(token string) Interceptor {
	return func(spec RequestSpec) RequestSpec {
		return spec.SetHeader("Authorization", "Bearer "+token)
	}
}

// APIKeyInterceptor returns an interceptor that adds an API key header.
func APIKeyInterceptor(headerName, apiKey string) Interceptor {
	return func(spec RequestSpec) RequestSpec {
		return spec.SetHeader(headerName, apiKey)
	}
}

// UserAgentInterceptor returns an interceptor that sets the User-Agent
// header.
func UserAgentInterceptor(userAgent string) Interceptor {
	return func(spec RequestSpec) RequestSpec {
		return spec.SetHeader("User-Agent", userAgent)
	}
}

// RequestIDInterceptor returns an interceptor that stamps each request
// with a fresh UUID under the given header name.
func RequestIDInterceptor(headerName string) Interceptor {
	return func(spec RequestSpec) RequestSpec {
		return spec.SetHeader(headerName, uuid.NewString())
	}
}
