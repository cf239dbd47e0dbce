package jsonschema

import (
	"github.com/goccy/go-json"
)

// wire is the on-disk shape shared by the root, properties and definitions.
// Field order is the output key order; map keys are sorted by the encoder.
// Collections are pointers so that an explicitly empty one is still written.
type wire struct {
	ID      *string `json:"$id,omitempty"`
	Version string  `json:"$schema,omitempty"`
	Ref     *string `json:"$ref,omitempty"`
	Type    Type    `json:"type,omitempty"`

	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`

	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	Minimum          any `json:"minimum,omitempty"`
	Maximum          any `json:"maximum,omitempty"`
	ExclusiveMinimum any `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum any `json:"exclusiveMaximum,omitempty"`

	MinItems    *int     `json:"minItems,omitempty"`
	MaxItems    *int     `json:"maxItems,omitempty"`
	Items       *[]*wire `json:"items,omitempty"`
	UniqueItems *bool    `json:"uniqueItems,omitempty"`

	Required      *[]string         `json:"required,omitempty"`
	MinProperties *int              `json:"minProperties,omitempty"`
	MaxProperties *int              `json:"maxProperties,omitempty"`
	Properties    *map[string]*wire `json:"properties,omitempty"`

	Enum *[]any `json:"enum,omitempty"`

	Definitions *map[string]*wire `json:"definitions,omitempty"`
}

// Encode renders s as indented JSON. Absent attributes are omitted, "items" is
// always written as an array and "$ref" keeps its original text.
func Encode(s *Schema) ([]byte, error) {
	w := &wire{
		ID:            s.ID,
		Version:       s.Version,
		Type:          TypeObject,
		Title:         s.Title,
		Description:   s.Description,
		Required:      keep(s.Required, s.Required == nil),
		MinProperties: s.MinProperties,
		MaxProperties: s.MaxProperties,
		Properties:    keep(wireProperties(s.Properties), s.Properties == nil),
	}
	if s.Definitions != nil {
		defs := make(map[string]*wire, len(s.Definitions))
		for k, d := range s.Definitions {
			defs[k] = wireDefinition(d)
		}
		w.Definitions = &defs
	}
	b, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, Annotate(err, "", "/")
	}
	return append(b, '\n'), nil
}

// EncodeProperty renders a single property as indented JSON.
func EncodeProperty(p Property) ([]byte, error) {
	return json.MarshalIndent(wireProperty(p), "", "  ")
}

func wireProperties(ps Properties) map[string]*wire {
	if ps == nil {
		return nil
	}
	out := make(map[string]*wire, len(ps))
	for k, p := range ps {
		out[k] = wireProperty(p)
	}
	return out
}

func wireItems(items []Property) *[]*wire {
	if items == nil {
		return nil
	}
	out := make([]*wire, len(items))
	for i, p := range items {
		out[i] = wireProperty(p)
	}
	return &out
}

func wireProperty(p Property) *wire {
	c := p.Common()
	w := &wire{Type: p.Type(), Title: c.Title, Description: c.Description}
	if c.Ref != nil {
		ref := c.Ref.String()
		w.Ref = &ref
	}
	switch p := p.(type) {
	case NullProperty:
	case StringProperty:
		w.MinLength, w.MaxLength = p.MinLength, p.MaxLength
		w.Enum = keep(enumAny(p.Enum), p.Enum == nil)
	case NumberProperty:
		w.Minimum = optional(p.Minimum)
		w.Maximum = optional(p.Maximum)
		w.ExclusiveMinimum = optional(p.ExclusiveMinimum)
		w.ExclusiveMaximum = optional(p.ExclusiveMaximum)
		w.Enum = keep(enumAny(p.Enum), p.Enum == nil)
	case IntegerProperty:
		w.Minimum = optional(p.Minimum)
		w.Maximum = optional(p.Maximum)
		w.ExclusiveMinimum = optional(p.ExclusiveMinimum)
		w.ExclusiveMaximum = optional(p.ExclusiveMaximum)
		w.Enum = keep(enumAny(p.Enum), p.Enum == nil)
	case BooleanProperty:
		w.Enum = keep(enumAny(p.Enum), p.Enum == nil)
	case ArrayProperty:
		w.MinItems, w.MaxItems, w.UniqueItems = p.MinItems, p.MaxItems, p.UniqueItems
		w.Items = wireItems(p.Items)
	case ObjectProperty:
		w.Required = keep(p.Required, p.Required == nil)
		w.MinProperties, w.MaxProperties = p.MinProperties, p.MaxProperties
		w.Properties = keep(wireProperties(p.Properties), p.Properties == nil)
	}
	return w
}

func wireDefinition(d Definition) *wire {
	w := &wire{
		Title:         d.Title,
		Description:   d.Description,
		MinLength:     d.MinLength,
		MaxLength:     d.MaxLength,
		Minimum:       optional(d.Minimum),
		Maximum:       optional(d.Maximum),
		MinItems:      d.MinItems,
		MaxItems:      d.MaxItems,
		Items:         wireItems(d.Items),
		UniqueItems:   d.UniqueItems,
		Required:      keep(d.Required, d.Required == nil),
		MinProperties: d.MinProperties,
		MaxProperties: d.MaxProperties,
		Properties:    keep(wireProperties(d.Properties), d.Properties == nil),
		Enum:          keep([]any(d.Enum), d.Enum == nil),
	}
	w.ExclusiveMinimum = optional(d.ExclusiveMinimum)
	w.ExclusiveMaximum = optional(d.ExclusiveMaximum)
	if d.Type != nil {
		w.Type = *d.Type
	}
	return w
}

// optional unwraps a numeric pointer so that a nil bound leaves the field as
// a nil interface and is omitted.
func optional[T int64 | float64](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func keep[T any](v T, absent bool) *T {
	if absent {
		return nil
	}
	return &v
}
