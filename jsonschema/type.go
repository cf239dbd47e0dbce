package jsonschema

// Type is the value of a property's "type" keyword. The set is closed: every
// consumer switches over all seven kinds.
type Type string

const (
	TypeNull    Type = "null"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

var allTypes = []Type{TypeNull, TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject}

// ParseType maps a keyword value to a Type.
func ParseType(s string) (Type, bool) {
	for _, t := range allTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t Type) String() string { return string(t) }
