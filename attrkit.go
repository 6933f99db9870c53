// Package attrkit provides serializable, validatable, type-enforcing domain
// records.
//
// A schema declares an ordered set of typed fields once; records are then
// constructed from raw mappings, with each value coerced to its declared type
// and checked against the field's validators:
//
//	truck := attrkit.MustSchema(
//	    field.String("color").NotEmpty(),
//	    field.Float("weight"),
//	    field.Int("wheels").Default(4),
//	)
//
//	rec, err := truck.New(map[string]any{"color": "blue", "weight": "44.4"})
//	// rec.MustGet("weight") == 44.4, rec.MustGet("wheels") == int64(4)
//
// Construction fails fast with a typed error: MissingFieldError when a
// required field has no value and no default, CoercionError when a raw value
// cannot be converted, ValidationError when a predicate rejects the coerced
// value. Keys in the raw mapping that match no declared field are ignored.
//
// Records serialize through ToMap, a plain nested mapping suitable for
// hand-off to any encoder; *Record also implements the json, yaml, and
// msgpack marshaler interfaces directly.
//
// Reusable field groups are expressed as definitions and merged with
// SchemaFrom:
//
//	s, err := attrkit.SchemaFrom(
//	    attrkit.Timestamps{},
//	    attrkit.FieldSet{field.String("name")},
//	)
package attrkit

import "github.com/attrkit/attrkit/field"

// Dumper is implemented by values that render themselves as a plain mapping.
// *Record implements it, and logz.JSONDumps honors it when encoding.
type Dumper interface {
	Dump() map[string]any
}

// A Definition describes an entity type as an ordered list of field builders.
type Definition interface {
	Fields() []field.Builder
}

// A Mixin is a reusable group of field declarations shared between schemas.
// Any Definition can serve as a mixin; SchemaFrom merges them in order.
type Mixin = Definition

// FieldSet adapts a plain list of builders to the Definition interface.
type FieldSet []field.Builder

// Fields returns the builders unchanged.
func (fs FieldSet) Fields() []field.Builder { return fs }
