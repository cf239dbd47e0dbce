package jsonschema

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Literals is an untyped enum set as read from a definition: each member is a
// string, json.Number, bool or nil. Its members are only given a native type
// once a consuming property decides which one.
type Literals []any

// Enum is an ordered set of typed enum members. A nil member is the JSON null
// literal.
type Enum[T comparable] []*T

// EnumOf builds an Enum from values, dropping repeats.
func EnumOf[T comparable](values ...T) Enum[T] {
	e := make(Enum[T], 0, len(values))
	for i := range values {
		e = e.add(&values[i])
	}
	return e
}

// WithNull returns a copy of e that also contains the null literal.
func (e Enum[T]) WithNull() Enum[T] {
	return append(append(Enum[T]{}, e...), nil).dedupe()
}

// Contains reports whether v (nil for null) is a member.
func (e Enum[T]) Contains(v *T) bool {
	for _, m := range e {
		if (m == nil) != (v == nil) {
			continue
		}
		if m == nil || *m == *v {
			return true
		}
	}
	return false
}

// HasNull reports whether the null literal is a member.
func (e Enum[T]) HasNull() bool { return e.Contains(nil) }

// Values returns the non-null members in order.
func (e Enum[T]) Values() []T {
	out := make([]T, 0, len(e))
	for _, m := range e {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// Equal compares as sets: order does not matter.
func (e Enum[T]) Equal(o Enum[T]) bool {
	if (e == nil) != (o == nil) || len(e) != len(o) {
		return false
	}
	for _, m := range e {
		if !o.Contains(m) {
			return false
		}
	}
	return true
}

func (e Enum[T]) add(v *T) Enum[T] {
	if e.Contains(v) {
		return e
	}
	return append(e, v)
}

func (e Enum[T]) dedupe() Enum[T] {
	out := make(Enum[T], 0, len(e))
	for _, m := range e {
		out = out.add(m)
	}
	return out
}

// InferStringSet casts every literal to a string.
func InferStringSet(l Literals) (Enum[string], error) {
	return inferSet(l, TypeString, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// InferNumberSet casts every literal to float64.
func InferNumberSet(l Literals) (Enum[float64], error) {
	return inferSet(l, TypeNumber, toFloat)
}

// InferIntegerSet casts every literal to int64. Fractional numbers are
// truncated toward zero.
func InferIntegerSet(l Literals) (Enum[int64], error) {
	return inferSet(l, TypeInteger, toInt)
}

// InferBooleanSet casts every literal to bool.
func InferBooleanSet(l Literals) (Enum[bool], error) {
	return inferSet(l, TypeBoolean, func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	})
}

// UnsupportedEnum reports that enums cannot be declared on properties of kind t.
func UnsupportedEnum(t Type) *Error {
	return Errorf(CodeUnsupportedEnumType, "enums for %s types are not supported", t)
}

// inferSet returns nil for a nil input so that an absent enum stays absent.
func inferSet[T comparable](l Literals, t Type, cast func(any) (T, bool)) (Enum[T], error) {
	if l == nil {
		return nil, nil
	}
	out := make(Enum[T], 0, len(l))
	matched := 0
	for _, v := range l {
		if v == nil {
			out = out.add(nil)
			matched++
			continue
		}
		c, ok := cast(v)
		if !ok {
			continue
		}
		out = out.add(&c)
		matched++
	}
	if matched != len(l) {
		return nil, Errorf(CodeHeterogeneousEnum, "expected enum definition to contain only %s values", t)
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
		f, err := n.Float64()
		return int64(f), err == nil
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// literal checks that v is a JSON scalar usable as an enum member.
func literal(v any) bool {
	switch v.(type) {
	case nil, string, bool, json.Number:
		return true
	}
	return false
}

// enumAny renders a typed enum back into literals for encoding.
func enumAny[T comparable](e Enum[T]) []any {
	if e == nil {
		return nil
	}
	out := make([]any, len(e))
	for i, m := range e {
		if m != nil {
			out[i] = *m
		}
	}
	return out
}
