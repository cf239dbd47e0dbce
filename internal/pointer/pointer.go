package pointer

import (
	"strconv"
	"strings"
)

var escaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer builds RFC 6901 JSON Pointers in a chain-safe way. The zero value is
// the document root.
type Pointer struct {
	parts []string
}

// Root returns the pointer to the whole document.
func Root() Pointer { return Pointer{} }

// Field appends an object member name, escaping '~' and '/'.
func (p Pointer) Field(name string) Pointer {
	return Pointer{parts: append(append([]string{}, p.parts...), Escape(name))}
}

// Index appends an array index.
func (p Pointer) Index(i int) Pointer {
	return Pointer{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// String renders the pointer; the root renders as "/".
func (p Pointer) String() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Escape escapes a single reference token.
func Escape(token string) string { return escaper.Replace(token) }

// Join appends an escaped token to an already rendered pointer. An empty base
// is treated as the root.
func Join(base, token string) string {
	if base == "" || base == "/" {
		return "/" + Escape(token)
	}
	return base + "/" + Escape(token)
}
