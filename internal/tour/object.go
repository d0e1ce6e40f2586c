package tour

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/iancoleman/orderedmap"
)

// Object is a JSON object that remembers the order of its keys. After
// decoding, values are *Object, []any, string, float64, bool or nil.
//
// Tour files are rewritten through Object rather than a Go struct so that
// keys we do not know about survive a rewrite in their original position.
type Object = orderedmap.OrderedMap

// NewObject returns an empty Object that does not escape HTML characters.
func NewObject() *Object {
	o := orderedmap.New()
	o.SetEscapeHTML(false)
	return o
}

// DecodeObject parses data as a single JSON object, preserving key order.
func DecodeObject(data []byte) (*Object, error) {
	o := NewObject()
	if err := json.Unmarshal(data, o); err != nil {
		return nil, err
	}
	normalize(o)
	return o, nil
}

// normalize replaces nested objects with pointers that have HTML escaping
// turned off, so every object in the tree can be edited in place.
func normalize(v any) any {
	switch val := v.(type) {
	case orderedmap.OrderedMap:
		return normalize(&val)
	case *Object:
		val.SetEscapeHTML(false)
		for _, key := range val.Keys() {
			child, _ := val.Get(key)
			val.Set(key, normalize(child))
		}
		return val
	case []any:
		for i := range val {
			val[i] = normalize(val[i])
		}
		return val
	default:
		return v
	}
}

// Encode renders v the way JSON.stringify(v, null, 2) does: indented by two
// spaces, no HTML escaping, line and paragraph separators written as is, and
// no trailing newline.
func Encode(v any) ([]byte, error) {
	var compact bytes.Buffer
	enc := json.NewEncoder(&compact)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(compact.Bytes()), "", "  "); err != nil {
		return nil, err
	}
	return unescapeRaw(out.Bytes()), nil
}

// rawEscapes are the \u escapes encoding/json emits that JSON.stringify
// writes as the character itself.
var rawEscapes = map[string]rune{
	"\\u2028": '\u2028',
	"\\u2029": '\u2029',
	"\\ufffd": utf8.RuneError,
}

func unescapeRaw(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if i+6 <= len(data) {
			if r, ok := rawEscapes[string(data[i:i+6])]; ok {
				out = utf8.AppendRune(out, r)
				i += 5
				continue
			}
		}
		// Copy the escape pair so an escaped backslash is never read as the
		// start of another escape.
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case *Object:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
