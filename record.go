package attrkit

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// A Record is a constructed entity instance: an ordered mapping from field
// name to coerced value. Records are created through Schema.New; after
// construction every non-nillable field holds a value of its declared type.
type Record struct {
	schema  *Schema
	values  []any
	present []bool
}

// Schema returns the declaration table the record was constructed from.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the coerced value of the named field. A nillable field holding
// no value returns nil. Undeclared names fail with UnknownFieldError.
func (r *Record) Get(name string) (any, error) {
	i, ok := r.schema.index[name]
	if !ok {
		return nil, NewUnknownFieldError(name)
	}
	return r.values[i], nil
}

// MustGet is like Get but panics on undeclared names.
func (r *Record) MustGet(name string) any {
	v, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// GetString returns the value of a string or enum field.
func (r *Record) GetString(name string) (string, error) {
	v, err := r.Get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("attrkit: field %q does not hold a string (%T)", name, v)
	}
	return s, nil
}

// GetInt returns the value of an integer field.
func (r *Record) GetInt(name string) (int64, error) {
	v, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("attrkit: field %q does not hold an integer (%T)", name, v)
	}
	return i, nil
}

// GetFloat returns the value of a float field.
func (r *Record) GetFloat(name string) (float64, error) {
	v, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("attrkit: field %q does not hold a float (%T)", name, v)
	}
	return f, nil
}

// GetBool returns the value of a boolean field.
func (r *Record) GetBool(name string) (bool, error) {
	v, err := r.Get(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("attrkit: field %q does not hold a bool (%T)", name, v)
	}
	return b, nil
}

// GetTime returns the value of a time field.
func (r *Record) GetTime(name string) (time.Time, error) {
	v, err := r.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("attrkit: field %q does not hold a time (%T)", name, v)
	}
	return t, nil
}

// GetRecord returns the value of a nested-entity field.
func (r *Record) GetRecord(name string) (*Record, error) {
	v, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	rec, ok := v.(*Record)
	if !ok {
		return nil, fmt.Errorf("attrkit: field %q does not hold a record (%T)", name, v)
	}
	return rec, nil
}

// Set assigns a new value to the named field, re-running coercion and
// validation for that field alone. It fails with ImmutableFieldError when
// the field is immutable and already holds a value, and with
// MissingFieldError when nil is assigned to a non-nillable field.
func (r *Record) Set(name string, v any) error {
	i, ok := r.schema.index[name]
	if !ok {
		return NewUnknownFieldError(name)
	}
	fd := r.schema.fields[i]
	if fd.Immutable && r.present[i] {
		return NewImmutableFieldError(name)
	}
	if v == nil {
		if !fd.Nillable {
			return NewMissingFieldError(name)
		}
		r.values[i], r.present[i] = nil, false
		return nil
	}
	cv, err := coerceValue(fd, v)
	if err != nil {
		return err
	}
	if err := runValidators(fd, cv); err != nil {
		return err
	}
	r.values[i], r.present[i] = cv, true
	return nil
}

// Fields returns the field names in declaration order.
func (r *Record) Fields() []string {
	return r.schema.FieldNames()
}

// Values returns the coerced field values in declaration order. Nillable
// fields holding no value contribute nil.
func (r *Record) Values() []any {
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

// ToMap produces a plain nested mapping of field name to value, the
// serialization boundary of a record. Nested records convert recursively,
// UUID values render as their textual form, and sensitive fields are
// omitted. Calling ToMap twice yields equal mappings, and feeding the result
// back to Schema.New reconstructs an equal record.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, fd := range r.schema.fields {
		if fd.Sensitive {
			continue
		}
		out[fd.Name] = exportValue(r.values[i])
	}
	return out
}

// Dump implements the Dumper interface as an alias of ToMap.
func (r *Record) Dump() map[string]any {
	return r.ToMap()
}

func exportValue(v any) any {
	switch v := v.(type) {
	case *Record:
		return v.ToMap()
	case uuid.UUID:
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = exportValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = exportValue(e)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two records declare equivalent schemas (same field
// names, types, enum token sets, and nested shapes, in order) and hold equal
// coerced values for every field. The schemas need not be the same value.
func (r *Record) Equal(other *Record) bool {
	if other == nil || !r.schema.equivalent(other.schema) {
		return false
	}
	for i := range r.values {
		if !valueEqual(r.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *Record:
		rb, ok := b.(*Record)
		return ok && a.Equal(rb)
	case time.Time:
		tb, ok := b.(time.Time)
		return ok && a.Equal(tb)
	case []any:
		lb, ok := b.([]any)
		if !ok || len(a) != len(lb) {
			return false
		}
		for i := range a {
			if !valueEqual(a[i], lb[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// String renders the record for debugging, fields in name order.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Record(")
	names := r.schema.FieldNames()
	sort.Strings(names)
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", name, r.values[r.schema.index[name]])
	}
	sb.WriteString(")")
	return sb.String()
}
