// Package types - User answers
package types

import "strconv"

// Answers maps step/input field names to the values the user entered.
// Values may be numbers, strings, booleans or hex color strings; a
// missing field is never an error, it just contributes nothing.
type Answers map[string]any

// Has reports whether the field has a non-nil value
func (a Answers) Has(field string) bool {
	v, ok := a[field]
	return ok && v != nil
}

// Float returns the field coerced to a number. Numeric strings parse,
// booleans map to 1/0, anything else reports false.
func (a Answers) Float(field string) (float64, bool) {
	v, ok := a[field]
	if !ok || v == nil {
		return 0, false
	}
	if f, ok := toFloat(v); ok {
		return f, true
	}
	if b, ok := v.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Bool returns the field as a boolean. The strings "true"/"false" and
// numeric 0/1 coerce; anything else reports false.
func (a Answers) Bool(field string) (bool, bool) {
	v, ok := a[field]
	if !ok || v == nil {
		return false, false
	}
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, false
		}
		return b, true
	}
	if f, ok := toFloat(v); ok {
		return f != 0, true
	}
	return false, false
}

// String returns the field as a string, reporting presence
func (a Answers) String(field string) (string, bool) {
	v, ok := a[field]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy, used when the resolver needs to add
// derived quantities without mutating caller state.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
