package field

// A Type is the kind tag of a field. Coercion of raw input is dispatched on
// the declared type of the target field.
type Type uint8

// List of field kinds.
const (
	TypeInvalid Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeUUID
	TypeEnum
	TypeMap
	TypeList
	TypeEntity
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeString:  "string",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeBool:    "bool",
	TypeTime:    "time",
	TypeUUID:    "uuid",
	TypeEnum:    "enum",
	TypeMap:     "map",
	TypeList:    "list",
	TypeEntity:  "entity",
}

// String returns the name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a declarable field kind.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric kind.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}
