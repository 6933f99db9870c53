package field

import (
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// A Builder produces a field descriptor. All builders in this package
// implement it, and a schema is assembled from a list of builders.
type Builder interface {
	Descriptor() *Descriptor
}

// Interface is the part of an entity schema that nested-entity fields carry.
// It is implemented by *attrkit.Schema and declared here to keep this package
// free of a dependency on the root package.
type Interface interface {
	// FieldNames returns the declared field names in declaration order.
	FieldNames() []string
}

// A Descriptor is the immutable declaration of a single field. Builders
// populate it; after the owning schema is assembled it is never modified.
type Descriptor struct {
	Name       string    // field name, unique within a schema
	Type       Type      // declared kind
	Default    any       // literal default, or a func() any producer
	Nillable   bool      // field may hold no value
	Immutable  bool      // field cannot be set after construction
	Sensitive  bool      // field is omitted from dump output
	Comment    string    // documentation comment
	Values     []string  // permitted tokens, enum fields only
	Schema     Interface // nested schema, entity fields only
	Validators []any     // typed predicates, func(T) error
	Err        error     // deferred builder misuse, surfaced at schema assembly
}

// Descriptor implements the Builder interface, letting an assembled
// descriptor be reused directly when a schema is extended.
func (d *Descriptor) Descriptor() *Descriptor { return d }

// HasDefault reports if the field declares a default value or producer.
func (d *Descriptor) HasDefault() bool {
	return d.Default != nil
}

// DefaultValue returns the field default, invoking it when it is a producer.
func (d *Descriptor) DefaultValue() any {
	if fn, ok := d.Default.(func() any); ok {
		return fn()
	}
	return d.Default
}

func (d *Descriptor) checkName() {
	if d.Name == "" && d.Err == nil {
		d.Err = fmt.Errorf("field name cannot be empty")
	}
}

// String returns a fluent string builder.
//
//	field.String("name").NotEmpty().Default("unknown")
func String(name string) *stringBuilder {
	return &stringBuilder{&Descriptor{Name: name, Type: TypeString}}
}

// Int returns a fluent integer builder. Integer fields hold int64 values.
//
//	field.Int("age").NonNegative()
func Int(name string) *intBuilder {
	return &intBuilder{&Descriptor{Name: name, Type: TypeInt}}
}

// Float returns a fluent float builder. Float fields hold float64 values.
//
//	field.Float("weight").Positive()
func Float(name string) *floatBuilder {
	return &floatBuilder{&Descriptor{Name: name, Type: TypeFloat}}
}

// Bool returns a fluent boolean builder.
//
//	field.Bool("active").Nillable()
func Bool(name string) *boolBuilder {
	return &boolBuilder{&Descriptor{Name: name, Type: TypeBool}}
}

// Time returns a fluent time builder.
//
//	field.Time("created_at").DefaultFunc(time.Now).Immutable()
func Time(name string) *timeBuilder {
	return &timeBuilder{&Descriptor{Name: name, Type: TypeTime}}
}

// UUID returns a fluent UUID builder.
//
//	field.UUID("id").DefaultFunc(uuid.New).Immutable()
func UUID(name string) *uuidBuilder {
	return &uuidBuilder{&Descriptor{Name: name, Type: TypeUUID}}
}

// Enum returns a fluent enum builder. Enum fields hold one of a closed set of
// string tokens declared with Values.
//
//	field.Enum("color").Values("red", "green", "blue")
func Enum(name string) *enumBuilder {
	return &enumBuilder{&Descriptor{Name: name, Type: TypeEnum}}
}

// Map returns a fluent mapping builder. Map fields hold map[string]any values.
//
//	field.Map("metadata").Nillable()
func Map(name string) *mapBuilder {
	return &mapBuilder{&Descriptor{Name: name, Type: TypeMap}}
}

// List returns a fluent sequence builder. List fields hold []any values.
//
//	field.List("tags").Default([]any{})
func List(name string) *listBuilder {
	return &listBuilder{&Descriptor{Name: name, Type: TypeList}}
}

// Entity returns a fluent nested-entity builder. Entity fields hold records
// constructed from the given schema.
//
//	field.Entity("owner", ownerSchema)
func Entity(name string, schema Interface) *entityBuilder {
	b := &entityBuilder{&Descriptor{Name: name, Type: TypeEntity, Schema: schema}}
	if schema == nil {
		b.desc.Err = fmt.Errorf("entity field %q requires a schema", name)
	}
	return b
}

// stringBuilder is the builder for string fields.
type stringBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *stringBuilder) Default(s string) *stringBuilder {
	b.desc.Default = s
	return b
}

// DefaultFunc sets a producer invoked at construction time to generate
// the default value of the field.
func (b *stringBuilder) DefaultFunc(fn func() string) *stringBuilder {
	b.desc.Default = func() any { return fn() }
	return b
}

// Nillable marks the field as nullable.
func (b *stringBuilder) Nillable() *stringBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *stringBuilder) Immutable() *stringBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *stringBuilder) Sensitive() *stringBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *stringBuilder) Comment(c string) *stringBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced value.
func (b *stringBuilder) Validate(fn func(string) error) *stringBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// NotEmpty adds a validator rejecting empty strings.
func (b *stringBuilder) NotEmpty() *stringBuilder {
	return b.Validate(func(s string) error {
		if s == "" {
			return fmt.Errorf("value is empty")
		}
		return nil
	})
}

// MinLen adds a minimum length validator.
func (b *stringBuilder) MinLen(i int) *stringBuilder {
	return b.Validate(func(s string) error {
		if len(s) < i {
			return fmt.Errorf("value is less than the required length %d", i)
		}
		return nil
	})
}

// MaxLen adds a maximum length validator.
func (b *stringBuilder) MaxLen(i int) *stringBuilder {
	return b.Validate(func(s string) error {
		if len(s) > i {
			return fmt.Errorf("value is greater than the required length %d", i)
		}
		return nil
	})
}

// Match adds a regular expression validator.
func (b *stringBuilder) Match(re *regexp.Regexp) *stringBuilder {
	return b.Validate(func(s string) error {
		if !re.MatchString(s) {
			return fmt.Errorf("value does not match validation %q", re)
		}
		return nil
	})
}

// Descriptor implements the Builder interface.
func (b *stringBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}

// intBuilder is the builder for integer fields.
type intBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *intBuilder) Default(i int64) *intBuilder {
	b.desc.Default = i
	return b
}

// DefaultFunc sets a producer invoked at construction time to generate
// the default value of the field.
func (b *intBuilder) DefaultFunc(fn func() int64) *intBuilder {
	b.desc.Default = func() any { return fn() }
	return b
}

// Nillable marks the field as nullable.
func (b *intBuilder) Nillable() *intBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *intBuilder) Immutable() *intBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *intBuilder) Sensitive() *intBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *intBuilder) Comment(c string) *intBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced value.
func (b *intBuilder) Validate(fn func(int64) error) *intBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Min adds a minimum value validator.
func (b *intBuilder) Min(i int64) *intBuilder {
	return b.Validate(func(v int64) error {
		if v < i {
			return fmt.Errorf("value out of range")
		}
		return nil
	})
}

// Max adds a maximum value validator.
func (b *intBuilder) Max(i int64) *intBuilder {
	return b.Validate(func(v int64) error {
		if v > i {
			return fmt.Errorf("value out of range")
		}
		return nil
	})
}

// Range adds an inclusive range validator.
func (b *intBuilder) Range(i, j int64) *intBuilder {
	return b.Validate(func(v int64) error {
		if v < i || v > j {
			return fmt.Errorf("value out of range")
		}
		return nil
	})
}

// Positive adds a validator requiring the value to be greater than zero.
func (b *intBuilder) Positive() *intBuilder {
	return b.Min(1)
}

// NonNegative adds a validator requiring the value to be zero or greater.
func (b *intBuilder) NonNegative() *intBuilder {
	return b.Min(0)
}

// Descriptor implements the Builder interface.
func (b *intBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}

// floatBuilder is the builder for float fields.
type floatBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *floatBuilder) Default(f float64) *floatBuilder {
	b.desc.Default = f
	return b
}

// DefaultFunc sets a producer invoked at construction time to generate
// the default value of the field.
func (b *floatBuilder) DefaultFunc(fn func() float64) *floatBuilder {
	b.desc.Default = func() any { return fn() }
	return b
}

// Nillable marks the field as nullable.
func (b *floatBuilder) Nillable() *floatBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *floatBuilder) Immutable() *floatBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *floatBuilder) Sensitive() *floatBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *floatBuilder) Comment(c string) *floatBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced value.
func (b *floatBuilder) Validate(fn func(float64) error) *floatBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Min adds a minimum value validator.
func (b *floatBuilder) Min(f float64) *floatBuilder {
	return b.Validate(func(v float64) error {
		if v < f {
			return fmt.Errorf("value out of range")
		}
		return nil
	})
}

// Max adds a maximum value validator.
func (b *floatBuilder) Max(f float64) *floatBuilder {
	return b.Validate(func(v float64) error {
		if v > f {
			return fmt.Errorf("value out of range")
		}
		return nil
	})
}

// Range adds an inclusive range validator.
func (b *floatBuilder) Range(i, j float64) *floatBuilder {
	return b.Validate(func(v float64) error {
		if v < i || v > j {
			return fmt.Errorf("value out of range")
		}
		return nil
	})
}

// Positive adds a validator requiring the value to be greater than zero.
func (b *floatBuilder) Positive() *floatBuilder {
	return b.Validate(func(v float64) error {
		if v <= 0 {
			return fmt.Errorf("value out of range")
		}
		return nil
	})
}

// Descriptor implements the Builder interface.
func (b *floatBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}

// boolBuilder is the builder for boolean fields.
type boolBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *boolBuilder) Default(v bool) *boolBuilder {
	b.desc.Default = v
	return b
}

// Nillable marks the field as nullable.
func (b *boolBuilder) Nillable() *boolBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *boolBuilder) Immutable() *boolBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *boolBuilder) Sensitive() *boolBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *boolBuilder) Comment(c string) *boolBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced value.
func (b *boolBuilder) Validate(fn func(bool) error) *boolBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Descriptor implements the Builder interface.
func (b *boolBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}

// timeBuilder is the builder for time fields.
type timeBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *timeBuilder) Default(t time.Time) *timeBuilder {
	b.desc.Default = t
	return b
}

// DefaultFunc sets a producer invoked at construction time to generate
// the default value of the field. time.Now is the common producer:
//
//	field.Time("created_at").DefaultFunc(time.Now)
func (b *timeBuilder) DefaultFunc(fn func() time.Time) *timeBuilder {
	b.desc.Default = func() any { return fn() }
	return b
}

// Nillable marks the field as nullable.
func (b *timeBuilder) Nillable() *timeBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *timeBuilder) Immutable() *timeBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *timeBuilder) Sensitive() *timeBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *timeBuilder) Comment(c string) *timeBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced value.
func (b *timeBuilder) Validate(fn func(time.Time) error) *timeBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Descriptor implements the Builder interface.
func (b *timeBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}

// uuidBuilder is the builder for UUID fields.
type uuidBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *uuidBuilder) Default(u uuid.UUID) *uuidBuilder {
	b.desc.Default = u
	return b
}

// DefaultFunc sets a producer invoked at construction time to generate
// the default value of the field. uuid.New is the common producer:
//
//	field.UUID("id").DefaultFunc(uuid.New)
func (b *uuidBuilder) DefaultFunc(fn func() uuid.UUID) *uuidBuilder {
	b.desc.Default = func() any { return fn() }
	return b
}

// Nillable marks the field as nullable.
func (b *uuidBuilder) Nillable() *uuidBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *uuidBuilder) Immutable() *uuidBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *uuidBuilder) Sensitive() *uuidBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *uuidBuilder) Comment(c string) *uuidBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced value.
func (b *uuidBuilder) Validate(fn func(uuid.UUID) error) *uuidBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Descriptor implements the Builder interface.
func (b *uuidBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}

// enumBuilder is the builder for enum fields.
type enumBuilder struct {
	desc *Descriptor
}

// Values sets the permitted tokens of the enum.
func (b *enumBuilder) Values(values ...string) *enumBuilder {
	b.desc.Values = append(b.desc.Values, values...)
	return b
}

// Default sets the default value of the field.
func (b *enumBuilder) Default(s string) *enumBuilder {
	b.desc.Default = s
	return b
}

// Nillable marks the field as nullable.
func (b *enumBuilder) Nillable() *enumBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *enumBuilder) Immutable() *enumBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *enumBuilder) Sensitive() *enumBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *enumBuilder) Comment(c string) *enumBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced token.
func (b *enumBuilder) Validate(fn func(string) error) *enumBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Descriptor implements the Builder interface.
func (b *enumBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	if b.desc.Err == nil && len(b.desc.Values) == 0 {
		b.desc.Err = fmt.Errorf("enum field %q has no values", b.desc.Name)
	}
	if d, ok := b.desc.Default.(string); ok && b.desc.Err == nil {
		if !slices.Contains(b.desc.Values, d) {
			b.desc.Err = fmt.Errorf("enum field %q default %q is not a declared value", b.desc.Name, d)
		}
	}
	return b.desc
}

// mapBuilder is the builder for mapping fields.
type mapBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *mapBuilder) Default(m map[string]any) *mapBuilder {
	b.desc.Default = m
	return b
}

// DefaultFunc sets a producer invoked at construction time to generate
// the default value of the field.
func (b *mapBuilder) DefaultFunc(fn func() map[string]any) *mapBuilder {
	b.desc.Default = func() any { return fn() }
	return b
}

// Nillable marks the field as nullable.
func (b *mapBuilder) Nillable() *mapBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *mapBuilder) Immutable() *mapBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *mapBuilder) Sensitive() *mapBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *mapBuilder) Comment(c string) *mapBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced value.
func (b *mapBuilder) Validate(fn func(map[string]any) error) *mapBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// Descriptor implements the Builder interface.
func (b *mapBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}

// listBuilder is the builder for sequence fields.
type listBuilder struct {
	desc *Descriptor
}

// Default sets the default value of the field.
func (b *listBuilder) Default(l []any) *listBuilder {
	b.desc.Default = l
	return b
}

// DefaultFunc sets a producer invoked at construction time to generate
// the default value of the field.
func (b *listBuilder) DefaultFunc(fn func() []any) *listBuilder {
	b.desc.Default = func() any { return fn() }
	return b
}

// Nillable marks the field as nullable.
func (b *listBuilder) Nillable() *listBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *listBuilder) Immutable() *listBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *listBuilder) Sensitive() *listBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *listBuilder) Comment(c string) *listBuilder {
	b.desc.Comment = c
	return b
}

// Validate adds a validation predicate run against the coerced value.
func (b *listBuilder) Validate(fn func([]any) error) *listBuilder {
	b.desc.Validators = append(b.desc.Validators, fn)
	return b
}

// MinItems adds a minimum length validator.
func (b *listBuilder) MinItems(i int) *listBuilder {
	return b.Validate(func(l []any) error {
		if len(l) < i {
			return fmt.Errorf("list has fewer than %d items", i)
		}
		return nil
	})
}

// MaxItems adds a maximum length validator.
func (b *listBuilder) MaxItems(i int) *listBuilder {
	return b.Validate(func(l []any) error {
		if len(l) > i {
			return fmt.Errorf("list has more than %d items", i)
		}
		return nil
	})
}

// Descriptor implements the Builder interface.
func (b *listBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}

// entityBuilder is the builder for nested-entity fields.
type entityBuilder struct {
	desc *Descriptor
}

// Nillable marks the field as nullable.
func (b *entityBuilder) Nillable() *entityBuilder {
	b.desc.Nillable = true
	return b
}

// Immutable marks the field as immutable after construction.
func (b *entityBuilder) Immutable() *entityBuilder {
	b.desc.Immutable = true
	return b
}

// Sensitive excludes the field from dump output.
func (b *entityBuilder) Sensitive() *entityBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the documentation comment of the field.
func (b *entityBuilder) Comment(c string) *entityBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the Builder interface.
func (b *entityBuilder) Descriptor() *Descriptor {
	b.desc.checkName()
	return b.desc
}
