package attrkit

import (
	"fmt"
	"slices"
	"time"

	"github.com/attrkit/attrkit/coerce"
	"github.com/attrkit/attrkit/field"

	"github.com/google/uuid"
	"github.com/hengadev/errsx"
)

// A Schema is the immutable declaration table of an entity type. It is built
// once from field builders and safe for concurrent use afterwards.
type Schema struct {
	fields []*field.Descriptor
	index  map[string]int
}

// NewSchema assembles a schema from the given field declarations. It fails
// with DuplicateFieldError when a name is declared twice, and surfaces any
// deferred builder error.
func NewSchema(builders ...field.Builder) (*Schema, error) {
	s := &Schema{
		fields: make([]*field.Descriptor, 0, len(builders)),
		index:  make(map[string]int, len(builders)),
	}
	for _, b := range builders {
		fd := b.Descriptor()
		if fd.Err != nil {
			return nil, fmt.Errorf("attrkit: field %q: %w", fd.Name, fd.Err)
		}
		if !fd.Type.Valid() {
			return nil, fmt.Errorf("attrkit: field %q has invalid type", fd.Name)
		}
		if _, ok := s.index[fd.Name]; ok {
			return nil, NewDuplicateFieldError(fd.Name)
		}
		s.index[fd.Name] = len(s.fields)
		s.fields = append(s.fields, fd)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is intended for
// schemas assembled at package initialization, where a declaration error is
// a programming mistake.
func MustSchema(builders ...field.Builder) *Schema {
	s, err := NewSchema(builders...)
	if err != nil {
		panic(err)
	}
	return s
}

// SchemaFrom assembles a schema from definitions, merging their field groups
// in order. Mixins and ad hoc FieldSet values compose freely:
//
//	s, err := attrkit.SchemaFrom(
//	    attrkit.Timestamps{},
//	    attrkit.FieldSet{field.String("name").NotEmpty()},
//	)
func SchemaFrom(defs ...Definition) (*Schema, error) {
	var builders []field.Builder
	for _, d := range defs {
		builders = append(builders, d.Fields()...)
	}
	return NewSchema(builders...)
}

// Extend returns a new schema carrying the receiver's fields plus the given
// declarations. The receiver is not modified.
func (s *Schema) Extend(builders ...field.Builder) (*Schema, error) {
	all := make([]field.Builder, 0, len(s.fields)+len(builders))
	for _, fd := range s.fields {
		all = append(all, fd)
	}
	all = append(all, builders...)
	return NewSchema(all...)
}

// Fields returns the field descriptors in declaration order.
// The returned slice must not be modified.
func (s *Schema) Fields() []*field.Descriptor {
	return slices.Clone(s.fields)
}

// FieldNames returns the declared field names in declaration order.
// It implements field.Interface, allowing a schema to be nested through
// field.Entity.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, fd := range s.fields {
		names[i] = fd.Name
	}
	return names
}

// Descriptor returns the declaration of the named field.
func (s *Schema) Descriptor(name string) (*field.Descriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

var _ field.Interface = (*Schema)(nil)

// equivalent reports whether two schemas declare the same shape: equal field
// names, types, enum token sets, and nested entity schemas, in the same
// order. Defaults and validators do not participate; they affect how records
// are built, not what a built record holds.
func (s *Schema) equivalent(other *Schema) bool {
	if other == nil || len(s.fields) != len(other.fields) {
		return false
	}
	for i, fd := range s.fields {
		if !descriptorEquivalent(fd, other.fields[i]) {
			return false
		}
	}
	return true
}

func descriptorEquivalent(a, b *field.Descriptor) bool {
	if a.Name != b.Name || a.Type != b.Type {
		return false
	}
	if !slices.Equal(a.Values, b.Values) {
		return false
	}
	if a.Type == field.TypeEntity {
		sa, aok := a.Schema.(*Schema)
		sb, bok := b.Schema.(*Schema)
		if aok != bok {
			return false
		}
		if aok && !sa.equivalent(sb) {
			return false
		}
	}
	return true
}

// New constructs a record from a mapping of raw field values. Each declared
// field is looked up in raw; an absent (or explicitly nil) value falls back
// to the field default, invoking it when it is a producer. A field left
// without a value fails with MissingFieldError unless it is nillable.
// Present values are coerced to the declared type (CoercionError on failure)
// and run through the field's validators (ValidationError on rejection).
//
// Construction fails fast: the first failing field in declaration order
// aborts it. Keys in raw that match no declared field are ignored.
func (s *Schema) New(raw map[string]any) (*Record, error) {
	r := &Record{
		schema:  s,
		values:  make([]any, len(s.fields)),
		present: make([]bool, len(s.fields)),
	}
	for i, fd := range s.fields {
		v, err := s.fieldValue(fd, raw)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		r.values[i] = v
		r.present[i] = true
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(s *Schema, raw map[string]any) *Record {
	r, err := s.New(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate runs the full construction pipeline against raw without building
// a record, collecting every per-field failure into one error keyed by field
// name. It is the aggregating counterpart of New for form-style reporting.
func (s *Schema) Validate(raw map[string]any) error {
	var errs errsx.Map
	for _, fd := range s.fields {
		if _, err := s.fieldValue(fd, raw); err != nil {
			errs.Set(fd.Name, err)
		}
	}
	return errs.AsError()
}

// fieldValue resolves, coerces, and validates the value of a single field
// from the raw mapping. A nil result with nil error means a nillable field
// holding no value.
func (s *Schema) fieldValue(fd *field.Descriptor, raw map[string]any) (any, error) {
	v, ok := raw[fd.Name]
	if !ok || v == nil {
		if fd.HasDefault() {
			v = fd.DefaultValue()
		} else if fd.Nillable {
			return nil, nil
		} else {
			return nil, NewMissingFieldError(fd.Name)
		}
	}
	cv, err := coerceValue(fd, v)
	if err != nil {
		return nil, err
	}
	if err := runValidators(fd, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

// coerceValue converts a raw value to the canonical Go type of the field's
// declared kind: string, int64, float64, bool, time.Time, uuid.UUID, enum
// token string, map[string]any, []any, or *Record.
func coerceValue(fd *field.Descriptor, v any) (any, error) {
	switch fd.Type {
	case field.TypeString:
		s, err := coerce.String(v)
		if err != nil {
			return nil, NewCoercionError(fd.Name, v, fd.Type, err)
		}
		return s, nil
	case field.TypeInt:
		i, err := coerce.Int(v)
		if err != nil {
			return nil, NewCoercionError(fd.Name, v, fd.Type, err)
		}
		return i, nil
	case field.TypeFloat:
		f, err := coerce.Float(v)
		if err != nil {
			return nil, NewCoercionError(fd.Name, v, fd.Type, err)
		}
		return f, nil
	case field.TypeBool:
		b, err := coerce.Bool(v)
		if err != nil {
			return nil, NewCoercionError(fd.Name, v, fd.Type, err)
		}
		return b, nil
	case field.TypeTime:
		t, err := coerce.Time(v)
		if err != nil {
			return nil, NewCoercionError(fd.Name, v, fd.Type, err)
		}
		return t, nil
	case field.TypeUUID:
		u, err := coerce.UUID(v)
		if err != nil {
			return nil, NewCoercionError(fd.Name, v, fd.Type, err)
		}
		return u, nil
	case field.TypeEnum:
		s, err := coerce.String(v)
		if err != nil {
			return nil, NewCoercionError(fd.Name, v, fd.Type, err)
		}
		if !slices.Contains(fd.Values, s) {
			return nil, NewCoercionError(fd.Name, v, fd.Type,
				fmt.Errorf("%q is not one of %v", s, fd.Values))
		}
		return s, nil
	case field.TypeMap:
		m, err := coerce.Map(v)
		if err != nil {
			return nil, NewCoercionError(fd.Name, v, fd.Type, err)
		}
		return m, nil
	case field.TypeList:
		return coerce.Listify(v), nil
	case field.TypeEntity:
		sub, ok := fd.Schema.(*Schema)
		if !ok {
			return nil, fmt.Errorf("attrkit: entity field %q has no usable schema", fd.Name)
		}
		switch v := v.(type) {
		case *Record:
			if !v.schema.equivalent(sub) {
				return nil, NewCoercionError(fd.Name, v, fd.Type,
					fmt.Errorf("record was built from a different schema"))
			}
			return v, nil
		case map[string]any:
			rec, err := sub.New(v)
			if err != nil {
				return nil, NewCoercionError(fd.Name, v, fd.Type, err)
			}
			return rec, nil
		default:
			return nil, NewCoercionError(fd.Name, v, fd.Type, nil)
		}
	}
	return nil, fmt.Errorf("attrkit: field %q has invalid type", fd.Name)
}

// runValidators applies the field's typed predicates to the coerced value.
func runValidators(fd *field.Descriptor, v any) error {
	for _, fn := range fd.Validators {
		var err error
		switch fn := fn.(type) {
		case func(string) error:
			err = fn(v.(string))
		case func(int64) error:
			err = fn(v.(int64))
		case func(float64) error:
			err = fn(v.(float64))
		case func(bool) error:
			err = fn(v.(bool))
		case func(time.Time) error:
			err = fn(v.(time.Time))
		case func(uuid.UUID) error:
			err = fn(v.(uuid.UUID))
		case func(map[string]any) error:
			err = fn(v.(map[string]any))
		case func([]any) error:
			err = fn(v.([]any))
		case func(any) error:
			err = fn(v)
		default:
			err = fmt.Errorf("invalid validator type %T", fn)
		}
		if err != nil {
			return NewValidationError(fd.Name, err)
		}
	}
	return nil
}
