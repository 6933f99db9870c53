// Package coerce converts raw values into target types with an intelligent
// guess. It backs the per-field coercion of the record constructor and the
// string typification done by the config package on environment values.
package coerce

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Canonical boolean tokens. Matching is case-insensitive.
var (
	truthy = map[string]bool{"true": true, "yes": true, "on": true, "y": true, "1": true}
	falsy  = map[string]bool{"false": true, "no": true, "off": true, "n": true, "0": true}
)

var (
	reInteger = regexp.MustCompile(`^-?[0-9]+$`)
	reFloat   = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
	reNone    = regexp.MustCompile(`^(?i:none|null)$`)
)

// Layouts tried in order when parsing a time from a string.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Bool converts a number, string, or boolean into a pure boolean.
// Numbers convert by non-zero-ness. Strings convert through the canonical
// token sets (true/yes/on/y/1 and false/no/off/n/0) or, when numeric, by the
// value they parse to. Anything else fails.
func Bool(v any) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		switch {
		case truthy[s]:
			return true, nil
		case falsy[s]:
			return false, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f != 0, nil
		}
		return false, fmt.Errorf("cannot interpret %q as a boolean", v)
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	}
	return false, fmt.Errorf("cannot interpret %T as a boolean", v)
}

// Boolish is the permissive variant of Bool: values that cannot be
// interpreted are simply false. Sequences and maps convert by emptiness.
func Boolish(v any) bool {
	if v == nil {
		return false
	}
	if b, err := Bool(v); err == nil {
		return b
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	return false
}

// Int converts a numeric value or numeric string into an int64.
// Floats convert only when integral.
func Int(v any) (int64, error) {
	switch v := v.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case string:
		s := strings.TrimSpace(v)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt64(f)
		}
		return 0, fmt.Errorf("cannot parse %q as an integer", v)
	}
	return 0, fmt.Errorf("cannot interpret %T as an integer", v)
}

func uintToInt64(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("value %d overflows int64", u)
	}
	return int64(u), nil
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("value %v is not integral", f)
	}
	return int64(f), nil
}

// Float converts a numeric value or numeric string into a float64.
func Float(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as a float", v)
		}
		return f, nil
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	}
	return 0, fmt.Errorf("cannot interpret %T as a float", v)
}

// String converts a scalar value into its string form. Composite values are
// rejected; stringifying a map or slice is almost never what a caller wants.
func String(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	}
	return "", fmt.Errorf("cannot interpret %T as a string", v)
}

// Time converts a time.Time or a textual timestamp into a time.Time.
// Strings are tried against RFC 3339 and common date layouts.
func Time(v any) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as a time", v)
	}
	return time.Time{}, fmt.Errorf("cannot interpret %T as a time", v)
}

// UUID converts a uuid.UUID, its textual form, or a 16-byte slice into a
// uuid.UUID.
func UUID(v any) (uuid.UUID, error) {
	switch v := v.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		u, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return uuid.Nil, fmt.Errorf("cannot parse %q as a uuid", v)
		}
		return u, nil
	case []byte:
		u, err := uuid.FromBytes(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("cannot interpret %d bytes as a uuid", len(v))
		}
		return u, nil
	}
	return uuid.Nil, fmt.Errorf("cannot interpret %T as a uuid", v)
}

// Map converts a value into a map[string]any. Maps with non-string keys are
// converted key by key; other values are rejected. The result is always a
// copy, never the caller's map.
func Map(v any) (map[string]any, error) {
	switch v := v.(type) {
	case map[string]any:
		return maps.Clone(v), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("cannot interpret %T as a mapping", v)
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := String(iter.Key().Interface())
		if err != nil {
			return nil, fmt.Errorf("cannot interpret %T as a mapping: %w", v, err)
		}
		out[key] = iter.Value().Interface()
	}
	return out, nil
}

// Listify converts a value into a []any: nil becomes an empty list, slices
// and arrays convert element-wise, and any other value becomes a single
// element list. Strings are scalars, not sequences.
func Listify(v any) []any {
	if v == nil {
		return []any{}
	}
	if l, ok := v.([]any); ok {
		return l
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}

// Typify takes a string and guesses a more relevant type for it: boolean
// tokens become bools, integer and float literals become numbers, none/null
// becomes nil, and anything else stays a string.
//
//	Typify("32")   // int64(32)
//	Typify("32.0") // float64(32)
//	Typify("yes")  // true
//	Typify("none") // nil
func Typify(s string) any {
	v := strings.TrimSpace(s)
	lower := strings.ToLower(v)
	switch {
	case truthy[lower] && !reInteger.MatchString(v):
		return true
	case falsy[lower] && !reInteger.MatchString(v):
		return false
	case reNone.MatchString(v):
		return nil
	case reInteger.MatchString(v):
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	case reFloat.MatchString(v):
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return v
}

// TypifyAs coerces a string to the type of the given hint value. A nil hint
// falls back to Typify's guessing.
func TypifyAs(s string, hint any) (any, error) {
	if hint == nil {
		return Typify(s), nil
	}
	switch hint.(type) {
	case bool:
		return Bool(s)
	case string:
		return s, nil
	case float32, float64:
		return Float(s)
	case time.Time:
		return Time(s)
	case uuid.UUID:
		return UUID(s)
	}
	switch reflect.ValueOf(hint).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(s)
	}
	return s, nil
}
