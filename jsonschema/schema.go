package jsonschema

// Schema is one decoded document. Its root is always an object.
type Schema struct {
	ID          *string
	Version     string
	Title       *string
	Description *string

	Required      []string
	Properties    Properties
	MinProperties *int
	MaxProperties *int

	Definitions map[string]Definition
}

// Root views the document root as an object property.
func (s *Schema) Root() ObjectProperty {
	return ObjectProperty{
		Annotations:   Annotations{Title: s.Title, Description: s.Description},
		Required:      s.Required,
		Properties:    s.Properties,
		MinProperties: s.MinProperties,
		MaxProperties: s.MaxProperties,
	}
}

// WithProperties returns a shallow copy of s with its property map replaced.
func (s *Schema) WithProperties(p Properties) *Schema {
	c := *s
	c.Properties = p
	return &c
}
