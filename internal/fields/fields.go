// Package fields reads loosely-typed values out of decoded JSON request bodies.
package fields

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Body is a JSON object decoded one level deep.
type Body map[string]json.RawMessage

// IsBlank reports whether raw is absent, JSON null, or an empty string.
func IsBlank(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null")) || bytes.Equal(t, []byte(`""`))
}

// Number reads a JSON number, or a string holding one.
func Number(raw json.RawMessage) (float64, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Text reads a scalar as text: strings verbatim, numbers and booleans in
// their JSON spelling. Objects, arrays and null are rejected.
func Text(raw json.RawMessage) (string, bool) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return "", false
	}
	switch t[0] {
	case '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[', 'n':
		return "", false
	default:
		return string(t), true
	}
}
