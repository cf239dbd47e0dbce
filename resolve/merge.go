package resolve

import (
	"maps"
	"slices"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
	"github.com/justin-guan/jsonschema2kotlin/internal/pointer"
)

// MergeDefinitions combines every property in props with the definition its
// "$ref" points to, recursing into object members. currentFile is the file
// props belong to and anchors local references. The input is not modified.
func MergeDefinitions(props js.Properties, refs *ReferenceMap, s Strategy, currentFile string) (js.Properties, error) {
	m := merger{refs: refs, strategy: s}
	return m.properties(props, currentFile, pointer.Root().Field("properties"))
}

// MergeSchema applies MergeDefinitions to the root properties of a document.
// Definitions are carried over untouched.
func MergeSchema(s *js.Schema, refs *ReferenceMap, strategy Strategy, currentFile string) (*js.Schema, error) {
	props, err := MergeDefinitions(s.Properties, refs, strategy, currentFile)
	if err != nil {
		return nil, err
	}
	return s.WithProperties(props), nil
}

type merger struct {
	refs     *ReferenceMap
	strategy Strategy
}

// lazyErr records the first failure raised inside a deferred definition value.
type lazyErr struct {
	err error
}

func (l *lazyErr) set(err error) {
	if l.err == nil {
		l.err = err
	}
}

func (m merger) properties(props js.Properties, file string, at pointer.Pointer) (js.Properties, error) {
	if props == nil {
		return nil, nil
	}
	out := make(js.Properties, len(props))
	for _, k := range slices.Sorted(maps.Keys(props)) {
		p, err := m.property(props[k], file, at.Field(k))
		if err != nil {
			return nil, err
		}
		out[k] = p
	}
	return out, nil
}

// items merges each item schema on its own; the list as a whole is then
// combined with the definition's list.
func (m merger) items(items []js.Property, file string, at pointer.Pointer) ([]js.Property, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]js.Property, len(items))
	for i, it := range items {
		p, err := m.property(it, file, at.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func (m merger) property(p js.Property, file string, at pointer.Pointer) (js.Property, error) {
	ref := js.RefOf(p)
	def, err := m.refs.GetDefinition(ref, file)
	if err != nil {
		return nil, js.Annotate(err, file, at.Field("$ref").String())
	}
	// Without a reference there is nothing to take from, but nested members
	// may still carry their own.
	defFile, defAt := file, at
	if def == nil {
		def = &js.Definition{}
	} else {
		defFile = ref.FileName(file)
		defAt = pointer.Root().Field("definitions").Field(ref.DefinitionPath())
	}

	s := m.strategy
	c := p.Common()
	ann := js.Annotations{
		Title:       Combine(s, c.Title, func() *string { return def.Title }),
		Description: Combine(s, c.Description, func() *string { return def.Description }),
		Ref:         c.Ref,
	}
	var lazy lazyErr
	enumFailed := func() error {
		if lazy.err == nil {
			return nil
		}
		return js.Annotate(lazy.err, defFile, defAt.Field("enum").String())
	}

	switch p := p.(type) {
	case js.NullProperty:
		return js.NullProperty{Annotations: ann}, nil

	case js.StringProperty:
		out := js.StringProperty{
			Annotations: ann,
			MinLength:   Combine(s, p.MinLength, func() *int { return def.MinLength }),
			MaxLength:   Combine(s, p.MaxLength, func() *int { return def.MaxLength }),
			Enum:        combineEnum(s, p.Enum, inferred(&lazy, js.InferStringSet, def.Enum)),
		}
		return out, enumFailed()

	case js.NumberProperty:
		out := js.NumberProperty{
			Annotations:      ann,
			Minimum:          Combine(s, p.Minimum, func() *float64 { return def.Minimum }),
			Maximum:          Combine(s, p.Maximum, func() *float64 { return def.Maximum }),
			ExclusiveMinimum: Combine(s, p.ExclusiveMinimum, func() *float64 { return def.ExclusiveMinimum }),
			ExclusiveMaximum: Combine(s, p.ExclusiveMaximum, func() *float64 { return def.ExclusiveMaximum }),
			Enum:             combineEnum(s, p.Enum, inferred(&lazy, js.InferNumberSet, def.Enum)),
		}
		return out, enumFailed()

	case js.IntegerProperty:
		out := js.IntegerProperty{
			Annotations:      ann,
			Minimum:          Combine(s, p.Minimum, truncated(def.Minimum)),
			Maximum:          Combine(s, p.Maximum, truncated(def.Maximum)),
			ExclusiveMinimum: Combine(s, p.ExclusiveMinimum, truncated(def.ExclusiveMinimum)),
			ExclusiveMaximum: Combine(s, p.ExclusiveMaximum, truncated(def.ExclusiveMaximum)),
			Enum:             combineEnum(s, p.Enum, inferred(&lazy, js.InferIntegerSet, def.Enum)),
		}
		return out, enumFailed()

	case js.BooleanProperty:
		out := js.BooleanProperty{
			Annotations: ann,
			Enum:        combineEnum(s, p.Enum, inferred(&lazy, js.InferBooleanSet, def.Enum)),
		}
		return out, enumFailed()

	case js.ArrayProperty:
		if err := m.noEnum(def, p.Type()); err != nil {
			return nil, js.Annotate(err, defFile, defAt.Field("enum").String())
		}
		mine, err := m.items(p.Items, file, at.Field("items"))
		if err != nil {
			return nil, err
		}
		var nested lazyErr
		items := CombineFunc(s, mine,
			func() []js.Property {
				theirs, err := m.items(def.Items, defFile, defAt.Field("items"))
				nested.set(err)
				return theirs
			},
			func(v []js.Property) bool { return v == nil },
			js.EqualItems,
		)
		if nested.err != nil {
			return nil, nested.err
		}
		return js.ArrayProperty{
			Annotations: ann,
			MinItems:    Combine(s, p.MinItems, func() *int { return def.MinItems }),
			MaxItems:    Combine(s, p.MaxItems, func() *int { return def.MaxItems }),
			Items:       items,
			UniqueItems: Combine(s, p.UniqueItems, func() *bool { return def.UniqueItems }),
		}, nil

	case js.ObjectProperty:
		if err := m.noEnum(def, p.Type()); err != nil {
			return nil, js.Annotate(err, defFile, defAt.Field("enum").String())
		}
		mine, err := m.properties(p.Properties, file, at.Field("properties"))
		if err != nil {
			return nil, err
		}
		// Inherited members resolve their own references against the file
		// that declares the definition.
		var nested lazyErr
		props := CombineFunc(s, mine,
			func() js.Properties {
				theirs, err := m.properties(def.Properties, defFile, defAt.Field("properties"))
				nested.set(err)
				return theirs
			},
			func(v js.Properties) bool { return v == nil },
			js.Properties.Equal,
		)
		if nested.err != nil {
			return nil, nested.err
		}
		return js.ObjectProperty{
			Annotations: ann,
			Required: CombineFunc(s, p.Required, func() []string { return def.Required },
				func(v []string) bool { return v == nil },
				func(a, b []string) bool { return slices.Equal(a, b) },
			),
			Properties:    props,
			MinProperties: Combine(s, p.MinProperties, func() *int { return def.MinProperties }),
			MaxProperties: Combine(s, p.MaxProperties, func() *int { return def.MaxProperties }),
		}, nil
	}
	return nil, js.Errorf(js.CodeInvalidType, "unsupported property %T", p).WithPath(at.String()).WithFile(file)
}

// noEnum rejects a definition enum that a merged array or object property
// would have to inherit. Unmerge never asks for the definition's enum because
// these kinds cannot declare one themselves.
func (m merger) noEnum(def *js.Definition, t js.Type) error {
	if m.strategy == Merge && len(def.Enum) > 0 {
		return js.UnsupportedEnum(t)
	}
	return nil
}

func combineEnum[T comparable](s Strategy, mine js.Enum[T], theirs func() js.Enum[T]) js.Enum[T] {
	return CombineFunc(s, mine, theirs,
		func(v js.Enum[T]) bool { return v == nil },
		func(a, b js.Enum[T]) bool { return a.Equal(b) },
	)
}

// inferred defers casting a definition's literals until the strategy asks.
func inferred[T comparable](lazy *lazyErr, infer func(js.Literals) (js.Enum[T], error), lits js.Literals) func() js.Enum[T] {
	return func() js.Enum[T] {
		e, err := infer(lits)
		if err != nil {
			lazy.set(err)
			return nil
		}
		return e
	}
}

// truncated narrows a definition bound toward zero.
func truncated(f *float64) func() *int64 {
	return func() *int64 {
		if f == nil {
			return nil
		}
		v := int64(*f)
		return &v
	}
}
