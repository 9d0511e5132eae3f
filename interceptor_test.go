package fetchclient

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterceptorChain_Order(t *testing.T) {
	chain := NewInterceptorChain()

	chain.Use(func(spec RequestSpec) RequestSpec {
		return spec.SetHeader("X-Trace", "first")
	})
	chain.Use(func(spec RequestSpec) RequestSpec {
		return spec.SetHeader("X-Trace", spec.Headers["X-Trace"]+",second")
	})

	spec := RequestSpec{}
	for _, ic := range chain.snapshot() {
		spec = ic(spec)
	}

	assert.Equal(t, "first,second", spec.Headers["X-Trace"])
}

func TestInterceptorChain_Eject(t *testing.T) {
	chain := NewInterceptorChain()

	first := chain.Use(func(spec RequestSpec) RequestSpec {
		return spec.SetHeader("X-First", "1")
	})
	chain.Use(func(spec RequestSpec) RequestSpec {
		return spec.SetHeader("X-Second", "2")
	})

	chain.Eject(first)
	require.Equal(t, 1, chain.Len())

	spec := RequestSpec{}
	for _, ic := range chain.snapshot() {
		spec = ic(spec)
	}

	assert.NotContains(t, spec.Headers, "X-First")
	assert.Equal(t, "2", spec.Headers["X-Second"])
}

func TestInterceptorChain_EjectUnknownHandle(t *testing.T) {
	chain := NewInterceptorChain()
	chain.Use(func(spec RequestSpec) RequestSpec { return spec })

	chain.Eject(Handle(999))

	assert.Equal(t, 1, chain.Len())
}

func TestInterceptorChain_Clear(t *testing.T) {
	chain := NewInterceptorChain()
	chain.Use(func(spec RequestSpec) RequestSpec { return spec })
	chain.Use(func(spec RequestSpec) RequestSpec { return spec })

	chain.Clear()

	assert.Equal(t, 0, chain.Len())
	assert.Empty(t, chain.snapshot())
}

func TestApplyQueryParams(t *testing.T) {
	tests := []struct {
		name string
		spec RequestSpec
		want string
	}{
		{
			name: "given no params, then URL is unchanged",
			spec: RequestSpec{URL: "/users"},
			want: "/users",
		},
		{
			name: "given all-absent params, then URL is unchanged",
			spec: RequestSpec{URL: "/users", Params: NewParams().Set("q", Absent)},
			want: "/users",
		},
		{
			name: "given params and a bare URL, then appends with question mark",
			spec: RequestSpec{URL: "/users", Params: NewParams().Set("page", 1)},
			want: "/users?page=1",
		},
		{
			name: "given params and an existing query, then appends with ampersand",
			spec: RequestSpec{URL: "/users?sort=asc", Params: NewParams().Set("page", 2)},
			want: "/users?sort=asc&page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyQueryParams(tt.spec).URL)
		})
	}
}

func TestInterceptorHelpers(t *testing.T) {
	spec := RequestSpec{}

	spec = AuthBearerInterceptor("token123")(spec)
	assert.Equal(t, "Bearer token123", spec.Headers["Authorization"])

	spec = APIKeyInterceptor("X-Api-Key", "secret")(spec)
	assert.Equal(t, "secret", spec.Headers["X-Api-Key"])

	spec = UserAgentInterceptor("client/1.0")(spec)
	assert.Equal(t, "client/1.0", spec.Headers["User-Agent"])

	spec = RequestIDInterceptor("X-Request-Id")(spec)
	_, err := uuid.Parse(spec.Headers["X-Request-Id"])
	require.NoError(t, err)
}

func TestInterceptorPurity(t *testing.T) {
	original := RequestSpec{Headers: map[string]string{"A": "1"}}

	modified := AuthBearerInterceptor("tok")(original)

	assert.NotContains(t, original.Headers, "Authorization", "SetHeader must not mutate the input spec")
	assert.Equal(t, "1", modified.Headers["A"])
}
