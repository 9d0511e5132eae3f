package fetchclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Params is an insertion-ordered collection of query parameters.
//
// Values may be scalars (string, bool, integers, floats) or slices of
// scalars. Slice entries are encoded as repeated pairs under "key[]".
// Entries whose value is nil or Absent are skipped entirely.
//
// Setting an existing key overwrites its value but keeps the key's
// original position, so encoding order is stable across rewrites.
//
// Example:
//
//	p := fetchclient.NewParams().
//	    Set("search", "john").
//	    Set("tags", []string{"a", "b"}).
//	    Set("limit", 10)
//	// search=john&tags%5B%5D=a&tags%5B%5D=b&limit=10
type Params struct {
	keys   []string
	values map[string]any
}

// NewParams creates an empty parameter collection.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Set stores a value under key, overwriting any previous value while
// keeping the key's original insertion position.
func (p *Params) Set(key string, value any) *Params {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the stored value for key and whether it was present.
func (p *Params) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of stored keys, including absent-valued ones.
func (p *Params) Len() int {
	return len(p.keys)
}

// Encode renders the parameters as a percent-encoded query string in
// key-insertion order. Absent entries are skipped; slices become
// repeated "key[]" pairs, one per non-absent element. Returns the empty
// string when nothing encodes.
func (p *Params) Encode() string {
	if p == nil || len(p.keys) == 0 {
		return ""
	}

	var b strings.Builder
	for _, key := range p.keys {
		value := p.values[key]
		if isAbsent(value) {
			continue
		}

		if elems, ok := sliceElements(value); ok {
			arrayKey := url.QueryEscape(key + "[]")
			for _, elem := range elems {
				if isAbsent(elem) {
					continue
				}
				writePair(&b, arrayKey, formatScalar(elem))
			}
			continue
		}

		writePair(&b, url.QueryEscape(key), formatScalar(value))
	}
	return b.String()
}

func writePair(b *strings.Builder, escapedKey, value string) {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(escapedKey)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}

// isAbsent reports whether a parameter value marks "no value provided".
// Both untyped nil and the Absent sentinel count: a query string has no
// way to carry null, so nil entries are skipped rather than encoded empty.
func isAbsent(v any) bool {
	return v == nil || v == Absent
}

// sliceElements returns the elements of v when v is a slice or array of
// scalars. Strings and byte slices are scalars, not lists.
func sliceElements(v any) ([]any, bool) {
	switch v.(type) {
	case string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}

// formatScalar renders a scalar parameter value as its query-string text.
func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", t)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
