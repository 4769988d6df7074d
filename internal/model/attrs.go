package model

// Truthy follows the loose truth test the document attributes were
// designed around: nil, false, zero numbers and "" are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

// String returns the attribute as a string, "" when unset or not a string.
func (a Attrs) String(name string) string {
	if s, ok := a[name].(string); ok {
		return s
	}
	return ""
}

// Int returns the attribute as an int, fallback when unset or not numeric.
func (a Attrs) Int(name string, fallback int) int {
	switch t := a[name].(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return fallback
}

// Bool reports whether the attribute is truthy.
func (a Attrs) Bool(name string) bool { return Truthy(a[name]) }
