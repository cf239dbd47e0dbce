package jsonschema

import "slices"

// Property is one node of a schema's property tree. The set of implementations
// is closed; switch over the concrete types:
//
//	switch p := prop.(type) {
//	case NullProperty, StringProperty, NumberProperty, IntegerProperty,
//		BooleanProperty, ArrayProperty, ObjectProperty:
//	}
type Property interface {
	Type() Type
	Common() Annotations
	isProperty()
}

// Properties maps member names to properties. Iteration order is irrelevant.
type Properties map[string]Property

// Annotations are the attributes every property kind carries.
type Annotations struct {
	Title       *string
	Description *string
	Ref         *Reference
}

// Common returns the shared attributes.
func (a Annotations) Common() Annotations { return a }

type NullProperty struct {
	Annotations
}

type StringProperty struct {
	Annotations
	MinLength *int
	MaxLength *int
	Enum      Enum[string]
}

type NumberProperty struct {
	Annotations
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	Enum             Enum[float64]
}

type IntegerProperty struct {
	Annotations
	Minimum          *int64
	Maximum          *int64
	ExclusiveMinimum *int64
	ExclusiveMaximum *int64
	Enum             Enum[int64]
}

type BooleanProperty struct {
	Annotations
	Enum Enum[bool]
}

// ArrayProperty holds its item schemas as an ordered list; a single "items"
// object decodes to a list of one.
type ArrayProperty struct {
	Annotations
	MinItems    *int
	MaxItems    *int
	Items       []Property
	UniqueItems *bool
}

type ObjectProperty struct {
	Annotations
	Required      []string
	Properties    Properties
	MinProperties *int
	MaxProperties *int
}

func (NullProperty) Type() Type    { return TypeNull }
func (StringProperty) Type() Type  { return TypeString }
func (NumberProperty) Type() Type  { return TypeNumber }
func (IntegerProperty) Type() Type { return TypeInteger }
func (BooleanProperty) Type() Type { return TypeBoolean }
func (ArrayProperty) Type() Type   { return TypeArray }
func (ObjectProperty) Type() Type  { return TypeObject }

func (NullProperty) isProperty()    {}
func (StringProperty) isProperty()  {}
func (NumberProperty) isProperty()  {}
func (IntegerProperty) isProperty() {}
func (BooleanProperty) isProperty() {}
func (ArrayProperty) isProperty()   {}
func (ObjectProperty) isProperty()  {}

// Ptr returns a pointer to v. Handy for optional attributes.
func Ptr[T any](v T) *T { return &v }

// RefOf returns the property's reference, or nil.
func RefOf(p Property) *Reference {
	if p == nil {
		return nil
	}
	return p.Common().Ref
}

// Equal reports whether both maps hold equal properties under the same
// names. A nil map differs from an empty one.
func (ps Properties) Equal(o Properties) bool {
	if (ps == nil) != (o == nil) || len(ps) != len(o) {
		return false
	}
	for k, p := range ps {
		q, ok := o[k]
		if !ok || !EqualProperty(p, q) {
			return false
		}
	}
	return true
}

// EqualItems compares item lists element by element.
func EqualItems(a, b []Property) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualProperty(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualProperty reports whether a and b are the same kind with equal
// attributes. Enums compare as sets.
func EqualProperty(a, b Property) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !a.Common().equal(b.Common()) {
		return false
	}
	switch a := a.(type) {
	case NullProperty:
		_, ok := b.(NullProperty)
		return ok
	case StringProperty:
		b, ok := b.(StringProperty)
		return ok && eq(a.MinLength, b.MinLength) && eq(a.MaxLength, b.MaxLength) && a.Enum.Equal(b.Enum)
	case NumberProperty:
		b, ok := b.(NumberProperty)
		return ok && eq(a.Minimum, b.Minimum) && eq(a.Maximum, b.Maximum) &&
			eq(a.ExclusiveMinimum, b.ExclusiveMinimum) && eq(a.ExclusiveMaximum, b.ExclusiveMaximum) &&
			a.Enum.Equal(b.Enum)
	case IntegerProperty:
		b, ok := b.(IntegerProperty)
		return ok && eq(a.Minimum, b.Minimum) && eq(a.Maximum, b.Maximum) &&
			eq(a.ExclusiveMinimum, b.ExclusiveMinimum) && eq(a.ExclusiveMaximum, b.ExclusiveMaximum) &&
			a.Enum.Equal(b.Enum)
	case BooleanProperty:
		b, ok := b.(BooleanProperty)
		return ok && a.Enum.Equal(b.Enum)
	case ArrayProperty:
		b, ok := b.(ArrayProperty)
		return ok && eq(a.MinItems, b.MinItems) && eq(a.MaxItems, b.MaxItems) &&
			eq(a.UniqueItems, b.UniqueItems) && EqualItems(a.Items, b.Items)
	case ObjectProperty:
		b, ok := b.(ObjectProperty)
		return ok && slices.Equal(a.Required, b.Required) &&
			eq(a.MinProperties, b.MinProperties) && eq(a.MaxProperties, b.MaxProperties) &&
			a.Properties.Equal(b.Properties)
	}
	return false
}

func (a Annotations) equal(b Annotations) bool {
	if (a.Ref == nil) != (b.Ref == nil) || a.Ref != nil && !a.Ref.Equal(*b.Ref) {
		return false
	}
	return eq(a.Title, b.Title) && eq(a.Description, b.Description)
}

func eq[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
