// Package field provides fluent builders for declaring typed entity fields.
//
// A field declaration names an attribute, fixes its kind from a closed set of
// primitive and composite kinds, and optionally carries a default value,
// nullability, immutability, and validation predicates:
//
//	// String fields
//	field.String("name")
//
//	// Numeric fields
//	field.Int("age")
//	field.Float("weight")
//
//	// Boolean fields
//	field.Bool("active")
//
//	// Time fields
//	field.Time("created_at")
//
//	// UUID fields
//	field.UUID("id")
//
//	// Enum fields
//	field.Enum("color").Values("red", "green", "blue")
//
//	// Composite fields
//	field.Map("metadata")
//	field.List("tags")
//	field.Entity("owner", ownerSchema)
//
// # Field Options
//
// Fields support various configuration options:
//
//	field.String("email").
//	    Nillable().            // May hold no value
//	    Immutable().           // Cannot be set after construction
//	    Default("unknown").    // Default value
//	    Sensitive().           // Excluded from dump output
//	    Comment("User email")  // Documentation comment
//
// # Defaults
//
// Fields support both literal and producer defaults:
//
//	field.Int("wheels").Default(4)
//	field.Time("created_at").DefaultFunc(time.Now)
//	field.UUID("id").DefaultFunc(uuid.New)
//
// # Validation
//
// Fields support built-in validators and custom predicates:
//
//	field.String("name").NotEmpty().MaxLen(100)
//	field.Int("age").NonNegative().Max(150)
//	field.Float("rating").Range(1, 5)
//	field.String("host").Validate(func(s string) error {
//	    if strings.Contains(s, "/") {
//	        return errors.New("host must not contain a path")
//	    }
//	    return nil
//	})
//
// Builder misuse, such as an enum default outside its value set, is deferred
// into Descriptor.Err and reported when the schema is assembled.
package field
