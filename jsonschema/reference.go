package jsonschema

import "strings"

const (
	refDelimiter    = "#"
	definitionsPath = "/definitions/"
)

// Reference is a decomposed "$ref" value of the form
// "<file>#/definitions/<key>" or "#/definitions/<key>".
type Reference struct {
	raw string
}

// ParseReference wraps a raw "$ref" string. Parsing never fails; unresolvable
// references are reported when they are looked up.
func ParseReference(s string) Reference { return Reference{raw: s} }

// RefTo builds a reference to a definition key in file. An empty file makes
// the reference local.
func RefTo(file, key string) Reference {
	return Reference{raw: file + refDelimiter + definitionsPath + key}
}

// String returns the raw "$ref" value.
func (r Reference) String() string { return r.raw }

// IsLocal reports whether the reference points into the referencing document.
func (r Reference) IsLocal() bool { return strings.HasPrefix(r.raw, refDelimiter) }

// FileName returns the file that holds the target definition. Local
// references resolve to currentFile.
func (r Reference) FileName(currentFile string) string {
	if r.IsLocal() {
		return currentFile
	}
	file, _, _ := strings.Cut(r.raw, refDelimiter)
	return file
}

// DefinitionPath returns the definition key: the text after the last '#'
// with the "/definitions/" prefix removed.
func (r Reference) DefinitionPath() string {
	frag := r.raw
	if i := strings.LastIndex(frag, refDelimiter); i >= 0 {
		frag = frag[i+1:]
	}
	return strings.TrimPrefix(frag, definitionsPath)
}

// Equal reports whether both references carry the same raw value.
func (r Reference) Equal(o Reference) bool { return r.raw == o.raw }
