// Package plan describes the types a generator should declare for a merged
// schema batch: one object type per object level and one enum type per
// enum-bearing property, named from the keys that own them.
package plan

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
	"github.com/justin-guan/jsonschema2kotlin/internal/pointer"
)

type Kind string

const (
	KindObject Kind = "object"
	KindEnum   Kind = "enum"
)

// Decl is one type to generate.
type Decl struct {
	File string
	// Path points at the declaring property; "/" for a document root.
	Path string
	Name string
	// Parent names the enclosing declaration. Roots have none.
	Parent string
	Kind   Kind

	Fields []Field // objects

	ValueType js.Type    // enums
	Constants []Constant // enums
	Nullable  bool       // enums that list null
}

// QualifiedName joins the enclosing names with dots.
func (d Decl) QualifiedName() string {
	if d.Parent == "" {
		return d.Name
	}
	return d.Parent + "." + d.Name
}

type Field struct {
	Key      string
	Name     string
	Type     TypeRef
	Required bool
}

// TypeRef is the type of a field or array item.
type TypeRef struct {
	Kind js.Type
	// Name is the qualified declaration name for objects and enums.
	Name  string
	Items []TypeRef
}

func (t TypeRef) String() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Kind == js.TypeArray {
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = it.String()
		}
		return "array<" + strings.Join(parts, "|") + ">"
	}
	return string(t.Kind)
}

type Constant struct {
	Name  string
	Value any
}

// Build plans every document of a merged batch, ordered by file name and
// then depth-first by key.
func Build(schemas map[string]*js.Schema) []Decl {
	var out []Decl
	for _, file := range slices.Sorted(maps.Keys(schemas)) {
		s := schemas[file]
		if s == nil {
			continue
		}
		b := builder{file: file}
		b.object(s.Root(), RootName(file), "", pointer.Root())
		out = append(out, b.decls...)
	}
	return out
}

// RootName derives a document's type name from its file name: the base name
// up to the first '.', camel-cased.
func RootName(file string) string {
	if i := strings.LastIndex(file, "/"); i >= 0 {
		file = file[i+1:]
	}
	base, _, _ := strings.Cut(file, ".")
	return strcase.ToCamel(base)
}

type builder struct {
	file  string
	decls []Decl
}

func (b *builder) object(p js.ObjectProperty, name, parent string, at pointer.Pointer) {
	idx := len(b.decls)
	b.decls = append(b.decls, Decl{File: b.file, Path: at.String(), Name: name, Parent: parent, Kind: KindObject})
	qualified := b.decls[idx].QualifiedName()

	scope := map[string]int{}
	fields := make([]Field, 0, len(p.Properties))
	for _, key := range slices.Sorted(maps.Keys(p.Properties)) {
		fields = append(fields, Field{
			Key:      key,
			Name:     strcase.ToLowerCamel(key),
			Type:     b.typeOf(p.Properties[key], strcase.ToCamel(key), qualified, at.Field("properties").Field(key), scope),
			Required: slices.Contains(p.Required, key),
		})
	}
	b.decls[idx].Fields = fields
}

// typeOf declares whatever nested types p needs and returns its reference.
func (b *builder) typeOf(p js.Property, name, parent string, at pointer.Pointer, scope map[string]int) TypeRef {
	switch p := p.(type) {
	case js.ObjectProperty:
		name = unique(scope, name)
		b.object(p, name, parent, at)
		return TypeRef{Kind: js.TypeObject, Name: parent + "." + name}
	case js.ArrayProperty:
		items := make([]TypeRef, len(p.Items))
		for i, it := range p.Items {
			itemName := name + "Item"
			if len(p.Items) > 1 {
				itemName += strconv.Itoa(i + 1)
			}
			items[i] = b.typeOf(it, itemName, parent, at.Field("items").Index(i), scope)
		}
		return TypeRef{Kind: js.TypeArray, Items: items}
	case js.StringProperty:
		return enumDecl(b, p.Type(), name, parent, at, scope, p.Enum, func(v string) string {
			return strcase.ToScreamingSnake(v)
		})
	case js.NumberProperty:
		return enumDecl(b, p.Type(), name, parent, at, scope, p.Enum, func(v float64) string {
			return numberConstant(name, strconv.FormatFloat(v, 'f', -1, 64))
		})
	case js.IntegerProperty:
		return enumDecl(b, p.Type(), name, parent, at, scope, p.Enum, func(v int64) string {
			return numberConstant(name, strconv.FormatInt(v, 10))
		})
	case js.BooleanProperty:
		return enumDecl(b, p.Type(), name, parent, at, scope, p.Enum, func(v bool) string {
			return strings.ToUpper(strconv.FormatBool(v))
		})
	}
	return TypeRef{Kind: p.Type()}
}

func enumDecl[T comparable](b *builder, t js.Type, name, parent string, at pointer.Pointer, scope map[string]int, e js.Enum[T], constName func(T) string) TypeRef {
	if e == nil {
		return TypeRef{Kind: t}
	}
	name = unique(scope, name)
	d := Decl{File: b.file, Path: at.String(), Name: name, Parent: parent, Kind: KindEnum, ValueType: t, Nullable: e.HasNull()}
	for _, v := range e.Values() {
		d.Constants = append(d.Constants, Constant{Name: constName(v), Value: v})
	}
	b.decls = append(b.decls, d)
	return TypeRef{Kind: t, Name: d.QualifiedName()}
}

func numberConstant(enumName, value string) string {
	return strings.ToUpper(fmt.Sprintf("%s_%s", enumName, strings.NewReplacer(".", "_", "-", "MINUS_").Replace(value)))
}

func unique(scope map[string]int, name string) string {
	scope[name]++
	if n := scope[name]; n > 1 {
		return name + strconv.Itoa(n)
	}
	return name
}
