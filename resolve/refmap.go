package resolve

import (
	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

// ReferenceMap indexes every definition of a batch by file name and key. It
// is built once, before any reference is resolved, and is read-only after.
type ReferenceMap struct {
	files map[string]map[string]js.Definition
}

// NewReferenceMap indexes the definitions of all schemas. A document without a
// "definitions" keyword is not indexed, so a reference into it reports an
// unknown file; an empty "definitions" object is indexed.
func NewReferenceMap(schemas map[string]*js.Schema) *ReferenceMap {
	m := &ReferenceMap{files: make(map[string]map[string]js.Definition, len(schemas))}
	for name, s := range schemas {
		if s == nil || s.Definitions == nil {
			continue
		}
		defs := make(map[string]js.Definition, len(s.Definitions))
		for k, d := range s.Definitions {
			defs[k] = d
		}
		m.files[name] = defs
	}
	return m
}

// GetDefinition looks up the target of ref as seen from currentFile. A nil
// ref yields (nil, nil).
func (m *ReferenceMap) GetDefinition(ref *js.Reference, currentFile string) (*js.Definition, error) {
	if ref == nil {
		return nil, nil
	}
	file := ref.FileName(currentFile)
	defs, ok := m.files[file]
	if !ok {
		return nil, js.Errorf(js.CodeUnknownReferenceFile, "%q points to file %q which is not part of this batch or declares no definitions", ref.String(), file)
	}
	key := ref.DefinitionPath()
	d, ok := defs[key]
	if !ok {
		return nil, js.Errorf(js.CodeUnknownReferenceKey, "%q points to definition %q which %s does not declare", ref.String(), key, file)
	}
	return &d, nil
}

// Files returns the number of indexed files.
func (m *ReferenceMap) Files() int { return len(m.files) }

// Definitions returns the number of indexed definitions.
func (m *ReferenceMap) Definitions() int {
	n := 0
	for _, defs := range m.files {
		n += len(defs)
	}
	return n
}
