package fetchclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_IsSuccess(t *testing.T) {
	tests := []struct {
		statusCode int
		want       bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusNoContent, true},
		{http.StatusMovedPermanently, false},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.statusCode}
		assert.Equal(t, tt.want, resp.IsSuccess(), "status %d", tt.statusCode)
	}
}

func TestResponse_Text(t *testing.T) {
	resp := &Response{RawBody: []byte("hello")}
	assert.Equal(t, "hello", resp.Text())
}

func TestResponse_Decode(t *testing.T) {
	type user struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	resp := &Response{RawBody: []byte(`{"name":"ada","age":36}`)}

	var got user
	require.NoError(t, resp.Decode(&got))
	assert.Equal(t, user{Name: "ada", Age: 36}, got)
}

func TestResponse_DecodeIndependentOfMode(t *testing.T) {
	// Decode works from the raw bytes even when the request asked for
	// text materialization.
	resp := &Response{
		Body:    `{"ok":true}`,
		RawBody: []byte(`{"ok":true}`),
	}

	var got map[string]bool
	require.NoError(t, resp.Decode(&got))
	assert.True(t, got["ok"])
}

func TestResponse_StatusMessage(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{
			name: "given object body with message field, then uses it",
			resp: &Response{StatusCode: 404, Body: map[string]any{"message": "not found"}},
			want: "not found",
		},
		{
			name: "given object body with empty message, then falls back to status",
			resp: &Response{StatusCode: 404, Body: map[string]any{"message": ""}},
			want: "request failed with status code 404",
		},
		{
			name: "given object body without message field, then falls back to status",
			resp: &Response{StatusCode: 500, Body: map[string]any{"error": "boom"}},
			want: "request failed with status code 500",
		},
		{
			name: "given non-object body, then falls back to status",
			resp: &Response{StatusCode: 502, Body: "bad gateway"},
			want: "request failed with status code 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resp.statusMessage())
		})
	}
}
