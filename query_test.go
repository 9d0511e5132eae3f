package fetchclient

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Encode(t *testing.T) {
	tests := []struct {
		name   string
		params *Params
		want   string
	}{
		{
			name:   "given nil params, then returns empty string",
			params: nil,
			want:   "",
		},
		{
			name:   "given empty params, then returns empty string",
			params: NewParams(),
			want:   "",
		},
		{
			name:   "given scalar entries, then encodes in insertion order",
			params: NewParams().Set("b", "two").Set("a", 1),
			want:   "b=two&a=1",
		},
		{
			name:   "given absent entries, then skips them entirely",
			params: NewParams().Set("q", nil).Set("r", Absent).Set("s", "kept"),
			want:   "s=kept",
		},
		{
			name:   "given only absent entries, then returns empty string",
			params: NewParams().Set("q", nil).Set("r", Absent),
			want:   "",
		},
		{
			name:   "given a list entry, then encodes repeated array-marker pairs",
			params: NewParams().Set("tags", []string{"admin", "active"}),
			want:   "tags%5B%5D=admin&tags%5B%5D=active",
		},
		{
			name:   "given a list with absent elements, then skips those elements",
			params: NewParams().Set("ids", []any{1, Absent, 3, nil}),
			want:   "ids%5B%5D=1&ids%5B%5D=3",
		},
		{
			name:   "given a rewritten key, then later value wins at the original position",
			params: NewParams().Set("a", 1).Set("b", 2).Set("a", 3),
			want:   "a=3&b=2",
		},
		{
			name:   "given values needing escaping, then percent-encodes them",
			params: NewParams().Set("search", "hello world&more"),
			want:   "search=hello+world%26more",
		},
		{
			name:   "given bool and float scalars, then formats them canonically",
			params: NewParams().Set("active", true).Set("score", 1.5),
			want:   "active=true&score=1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}

func TestParams_EncodeRoundTrip(t *testing.T) {
	p := NewParams().
		Set("search", "john doe").
		Set("limit", 25).
		Set("tags", []string{"a", "b", "a"}).
		Set("missing", Absent)

	parsed, err := url.ParseQuery(p.Encode())
	require.NoError(t, err)

	assert.Equal(t, []string{"john doe"}, parsed["search"])
	assert.Equal(t, []string{"25"}, parsed["limit"])
	assert.Equal(t, []string{"a", "b", "a"}, parsed["tags[]"], "same-key repeats stay order-stable")
	assert.NotContains(t, parsed, "missing")
}

func TestParams_SetAndGet(t *testing.T) {
	p := NewParams().Set("a", 1)

	v, ok := p.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = p.Get("b")
	assert.False(t, ok)

	p.Set("a", 2)
	assert.Equal(t, 1, p.Len())
}
