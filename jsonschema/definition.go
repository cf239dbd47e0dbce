package jsonschema

// Definition is a named, reusable fragment under a document's "definitions".
// It carries the attributes of every property kind because it is not bound to
// one until a referencing property consumes it. Numeric bounds are kept as
// float64 and narrowed by integer consumers.
type Definition struct {
	Type        *Type
	Title       *string
	Description *string

	MinLength *int
	MaxLength *int

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64

	MinItems    *int
	MaxItems    *int
	Items       []Property
	UniqueItems *bool

	Required      []string
	Properties    Properties
	MinProperties *int
	MaxProperties *int

	// Enum is left untyped; see InferStringSet and friends.
	Enum Literals
}
