package fetchclient

// absentValue is the unexported type behind the Absent sentinel.
type absentValue struct{}

func (absentValue) String() string { return "<absent>" }

// Absent marks "no value provided" inside request bodies and query
// parameters. It is distinct from nil: nil encodes as JSON null, while
// Absent entries are stripped before encoding.
//
//	body := map[string]any{
//	    "name":     "john",
//	    "nickname": fetchclient.Absent, // dropped from the payload
//	    "manager":  nil,                // kept as null
//	}
var Absent any = absentValue{}

// Sanitize recursively removes Absent-valued keys from an arbitrary
// nested value. It recurses into map[string]any key-wise and []any
// element-wise; scalars, nil, and typed structs pass through unchanged.
// Absent list elements become nil, mirroring how a JSON encoder renders
// holes in an array.
//
// Sanitize is idempotent. Cyclic values are not supported and will
// recurse without bound; request bodies are expected to be acyclic.
func Sanitize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, val := range t {
			if val == Absent {
				continue
			}
			out[key] = Sanitize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			if val == Absent {
				out[i] = nil
				continue
			}
			out[i] = Sanitize(val)
		}
		return out
	default:
		return v
	}
}
