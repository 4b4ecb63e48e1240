package transition

import (
	"encoding/json"
	"reflect"
)

// Options carries arbitrary extra parameters that travel with a
// transition and are passed through verbatim on replay.
type Options map[string]any

// Clone returns a deep copy sharing no mutable state with the
// original.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

// Equal compares two option maps structurally.
func (o Options) Equal(other Options) bool {
	if len(o) != len(other) {
		return false
	}
	for k, v := range o {
		ov, ok := other[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// canonical renders the options as deterministic JSON. encoding/json
// sorts map keys at every level, so equal maps always encode the same
// bytes.
func (o Options) canonical() []byte {
	if len(o) == 0 {
		return []byte("{}")
	}
	data, err := json.Marshal(o)
	if err != nil {
		// Unencodable values still need a stable fingerprint input.
		return []byte("{}")
	}
	return data
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case Options:
		return map[string]any(val.Clone())
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
