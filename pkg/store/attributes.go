package store

import "maps"

// Well-known attribute names. The store itself treats every attribute as
// opaque; these names are shared by the highlighter, label selectors and
// renderers.
const (
	AttrX         = "x"
	AttrY         = "y"
	AttrZ         = "z"
	AttrSize      = "size"
	AttrColor     = "color"
	AttrLabel     = "label"
	AttrHidden    = "hidden"
	AttrImportant = "important"
	AttrCategory  = "category"
	AttrType      = "type"
	AttrWeight    = "weight"
)

// Attributes is the key-value bag attached to nodes and edges.
//
// Values decoded from JSON arrive as float64, bool, string, or nested
// maps and slices. The typed accessors accept every numeric Go type so that
// programmatically built graphs and decoded graphs behave the same.
type Attributes map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	maps.Copy(out, a)
	return out
}

// Merge copies every entry of src into a, overwriting existing keys.
func (a Attributes) Merge(src Attributes) {
	maps.Copy(a, src)
}

// Float returns the attribute as float64 and whether it was a number.
func (a Attributes) Float(name string) (float64, bool) {
	return toFloat(a[name])
}

// Int returns the attribute as int and whether it was a number.
// Fractional values are truncated.
func (a Attributes) Int(name string) (int, bool) {
	f, ok := toFloat(a[name])
	return int(f), ok
}

// Bool returns true only for a boolean true value.
func (a Attributes) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// BoolValue returns the boolean value and whether the attribute was a bool.
// It distinguishes an explicit false from a missing attribute.
func (a Attributes) BoolValue(name string) (value, ok bool) {
	value, ok = a[name].(bool)
	return value, ok
}

// String returns the attribute as string and whether it was a string.
func (a Attributes) String(name string) (string, bool) {
	s, ok := a[name].(string)
	return s, ok
}

// AsFloat converts any numeric attribute value to float64.
func AsFloat(v any) (float64, bool) { return toFloat(v) }

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
