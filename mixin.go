package attrkit

import (
	"time"

	"github.com/attrkit/attrkit/field"
)

// Timestamps is a reusable field group adding created_at and updated_at to a
// schema. created_at defaults to the construction time and is immutable;
// updated_at defaults to the construction time and may be set afterwards.
//
//	s, err := attrkit.SchemaFrom(
//	    attrkit.Timestamps{},
//	    attrkit.FieldSet{field.String("name")},
//	)
type Timestamps struct{}

// Fields returns the time tracking fields.
func (Timestamps) Fields() []field.Builder {
	return []field.Builder{
		field.Time("created_at").
			DefaultFunc(time.Now).
			Immutable().
			Comment("Time when the record was created"),
		field.Time("updated_at").
			DefaultFunc(time.Now).
			Comment("Time when the record was last updated"),
	}
}

// CreateTime adds only the created_at field, for types that never change
// after construction.
type CreateTime struct{}

// Fields returns the created_at field.
func (CreateTime) Fields() []field.Builder {
	return []field.Builder{
		field.Time("created_at").
			DefaultFunc(time.Now).
			Immutable().
			Comment("Time when the record was created"),
	}
}
