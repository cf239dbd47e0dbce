package jsonschema

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	eng "github.com/justin-guan/jsonschema2kotlin/internal/engine"
	"github.com/justin-guan/jsonschema2kotlin/internal/pointer"
	"github.com/justin-guan/jsonschema2kotlin/internal/source"
)

// DuplicateKeys selects how repeated object keys in a document are handled.
type DuplicateKeys string

const (
	DuplicateError  DuplicateKeys = "error"
	DuplicateWarn   DuplicateKeys = "warn"
	DuplicateIgnore DuplicateKeys = "ignore"
)

// Format is the document syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// DecodeOptions tunes document decoding. The zero value rejects duplicate
// keys and sets no depth or size limit.
type DecodeOptions struct {
	DuplicateKeys DuplicateKeys `yaml:"duplicateKeys"`
	MaxDepth      int           `yaml:"maxDepth"`
	MaxBytes      int           `yaml:"maxBytes"`
	Format        Format        `yaml:"-"`
}

// Warning is a non-fatal decoder finding.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string { return w.Message + " at " + w.Path }

// Decode reads one schema document with default options.
func Decode(data []byte) (*Schema, error) {
	s, _, err := DecodeWith(data, DecodeOptions{})
	return s, err
}

// DecodeWith reads one schema document. Decoding stops at the first error and
// never returns a partial schema.
func DecodeWith(data []byte, opt DecodeOptions) (*Schema, []Warning, error) {
	d := &decoder{}
	tree, err := d.read(data, opt)
	if err != nil {
		return nil, d.warnings, err
	}
	s, err := d.schema(tree)
	if err != nil {
		return nil, d.warnings, err
	}
	return s, d.warnings, nil
}

// DecodeProperty reads a single property object.
func DecodeProperty(data []byte) (Property, error) {
	d := &decoder{}
	tree, err := d.read(data, DecodeOptions{})
	if err != nil {
		return nil, err
	}
	o, err := asObject(tree, pointer.Root())
	if err != nil {
		return nil, err
	}
	return d.property(o)
}

// DecodeDefinition reads a single definition object.
func DecodeDefinition(data []byte) (Definition, error) {
	d := &decoder{}
	tree, err := d.read(data, DecodeOptions{})
	if err != nil {
		return Definition{}, err
	}
	o, err := asObject(tree, pointer.Root())
	if err != nil {
		return Definition{}, err
	}
	return d.definition(o)
}

type decoder struct {
	warnings []Warning
}

func (d *decoder) warn(path, format string, args ...any) {
	d.warnings = append(d.warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (d *decoder) read(data []byte, opt DecodeOptions) (any, error) {
	if opt.MaxBytes > 0 && len(data) > opt.MaxBytes {
		return nil, Errorf(CodeMalformedDocument, "document is %d bytes, limit is %d", len(data), opt.MaxBytes)
	}
	eo := eng.EnforceOptions{MaxDepth: opt.MaxDepth}
	switch opt.DuplicateKeys {
	case DuplicateIgnore:
		eo.OnDuplicate = eng.DupIgnore
	case DuplicateWarn:
		eo.OnDuplicate = eng.DupWarn
		eo.IssueSink = func(si eng.SimpleIssue) { d.warn(si.Path, "%s", si.Message) }
	default:
		eo.OnDuplicate = eng.DupError
	}
	var (
		tree any
		err  error
	)
	if opt.Format == FormatYAML {
		tree, err = source.DecodeYAML(data, eo)
	} else {
		tree, err = source.DecodeJSON(data, eo)
	}
	if err != nil {
		return nil, readError(err)
	}
	return tree, nil
}

func readError(err error) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return &Error{Code: CodeMalformedDocument, Path: ie.Path, Message: ie.Message}
	}
	var dk *source.DuplicateKeyError
	if errors.As(err, &dk) {
		return &Error{Code: CodeMalformedDocument, Path: dk.Path, Message: dk.Error()}
	}
	return &Error{Code: CodeMalformedDocument, Path: "/", Cause: err}
}

func (d *decoder) schema(tree any) (*Schema, error) {
	o, err := asObject(tree, pointer.Root())
	if err != nil {
		return nil, err
	}
	raw, ok := o.m["type"]
	if !ok {
		return nil, Errorf(CodeMissingType, "schema root has no type").WithPath(o.ptr.String())
	}
	if s, _ := raw.(string); s != string(TypeObject) {
		return nil, Errorf(CodeInvalidType, "schema root must be of type object, got %v", raw).WithPath(o.at("type"))
	}
	if _, ok := o.m["$ref"]; ok {
		d.warn(o.at("$ref"), "$ref on the schema root is ignored")
	}

	s := &Schema{}
	if s.ID, err = o.string("$id"); err != nil {
		return nil, err
	}
	if v, err := o.string("$schema"); err != nil {
		return nil, err
	} else if v != nil {
		s.Version = *v
	}
	if s.Title, err = o.string("title"); err != nil {
		return nil, err
	}
	if s.Description, err = o.string("description"); err != nil {
		return nil, err
	}
	if s.Required, err = o.strings("required"); err != nil {
		return nil, err
	}
	if s.MinProperties, err = o.count("minProperties"); err != nil {
		return nil, err
	}
	if s.MaxProperties, err = o.count("maxProperties"); err != nil {
		return nil, err
	}
	if s.Properties, err = d.properties(o, "properties"); err != nil {
		return nil, err
	}
	if s.Definitions, err = d.definitions(o); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *decoder) definitions(o object) (map[string]Definition, error) {
	v, ok := o.m["definitions"]
	if !ok || v == nil {
		return nil, nil
	}
	defs, err := asObject(v, o.ptr.Field("definitions"))
	if err != nil {
		return nil, err
	}
	out := make(map[string]Definition, len(defs.m))
	for _, k := range sortedKeys(defs.m) {
		do, err := asObject(defs.m[k], defs.ptr.Field(k))
		if err != nil {
			return nil, err
		}
		def, err := d.definition(do)
		if err != nil {
			return nil, err
		}
		out[k] = def
	}
	return out, nil
}

func (d *decoder) definition(o object) (Definition, error) {
	var (
		def Definition
		err error
	)
	if raw, ok := o.m["type"]; ok && raw != nil {
		t, err := parseType(o, raw)
		if err != nil {
			return Definition{}, err
		}
		def.Type = &t
	}
	if _, ok := o.m["$ref"]; ok {
		d.warn(o.at("$ref"), "$ref inside a definition is not resolved and is ignored")
	}
	if def.Title, err = o.string("title"); err != nil {
		return Definition{}, err
	}
	if def.Description, err = o.string("description"); err != nil {
		return Definition{}, err
	}
	if def.MinLength, err = o.count("minLength"); err != nil {
		return Definition{}, err
	}
	if def.MaxLength, err = o.count("maxLength"); err != nil {
		return Definition{}, err
	}
	if def.Minimum, err = o.float("minimum"); err != nil {
		return Definition{}, err
	}
	if def.Maximum, err = o.float("maximum"); err != nil {
		return Definition{}, err
	}
	if def.ExclusiveMinimum, err = o.float("exclusiveMinimum"); err != nil {
		return Definition{}, err
	}
	if def.ExclusiveMaximum, err = o.float("exclusiveMaximum"); err != nil {
		return Definition{}, err
	}
	if def.MinItems, err = o.count("minItems"); err != nil {
		return Definition{}, err
	}
	if def.MaxItems, err = o.count("maxItems"); err != nil {
		return Definition{}, err
	}
	if def.Items, err = d.items(o); err != nil {
		return Definition{}, err
	}
	if def.UniqueItems, err = o.boolean("uniqueItems"); err != nil {
		return Definition{}, err
	}
	if def.Required, err = o.strings("required"); err != nil {
		return Definition{}, err
	}
	if def.Properties, err = d.properties(o, "properties"); err != nil {
		return Definition{}, err
	}
	if def.MinProperties, err = o.count("minProperties"); err != nil {
		return Definition{}, err
	}
	if def.MaxProperties, err = o.count("maxProperties"); err != nil {
		return Definition{}, err
	}
	if def.Enum, err = o.literals(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func (d *decoder) properties(o object, key string) (Properties, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	po, err := asObject(v, o.ptr.Field(key))
	if err != nil {
		return nil, err
	}
	out := make(Properties, len(po.m))
	for _, k := range sortedKeys(po.m) {
		mo, err := asObject(po.m[k], po.ptr.Field(k))
		if err != nil {
			return nil, err
		}
		p, err := d.property(mo)
		if err != nil {
			return nil, err
		}
		out[k] = p
	}
	return out, nil
}

// items accepts a single property object or an array of them.
func (d *decoder) items(o object) ([]Property, error) {
	v, ok := o.m["items"]
	if !ok || v == nil {
		return nil, nil
	}
	ptr := o.ptr.Field("items")
	switch x := v.(type) {
	case map[string]any:
		p, err := d.property(object{m: x, ptr: ptr})
		if err != nil {
			return nil, err
		}
		return []Property{p}, nil
	case []any:
		out := make([]Property, 0, len(x))
		for i, e := range x {
			item, err := asObject(e, ptr.Index(i))
			if err != nil {
				return nil, err
			}
			p, err := d.property(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	default:
		return nil, Errorf(CodeMalformedDocument, "items must be an object or an array of objects").WithPath(ptr.String())
	}
}

func (d *decoder) property(o object) (Property, error) {
	raw, ok := o.m["type"]
	if !ok {
		return nil, Errorf(CodeMissingType, "property has no type").WithPath(o.ptr.String())
	}
	t, err := parseType(o, raw)
	if err != nil {
		return nil, err
	}
	ann, err := o.annotations()
	if err != nil {
		return nil, err
	}
	lits, err := o.literals()
	if err != nil {
		return nil, err
	}
	enumErr := func(err error) error { return Annotate(err, "", o.at("enum")) }

	switch t {
	case TypeNull:
		if lits != nil {
			return nil, enumErr(UnsupportedEnum(t))
		}
		return NullProperty{Annotations: ann}, nil

	case TypeString:
		p := StringProperty{Annotations: ann}
		if p.MinLength, err = o.count("minLength"); err != nil {
			return nil, err
		}
		if p.MaxLength, err = o.count("maxLength"); err != nil {
			return nil, err
		}
		if p.Enum, err = InferStringSet(lits); err != nil {
			return nil, enumErr(err)
		}
		return p, nil

	case TypeNumber:
		p := NumberProperty{Annotations: ann}
		if p.Minimum, err = o.float("minimum"); err != nil {
			return nil, err
		}
		if p.Maximum, err = o.float("maximum"); err != nil {
			return nil, err
		}
		if p.ExclusiveMinimum, err = o.float("exclusiveMinimum"); err != nil {
			return nil, err
		}
		if p.ExclusiveMaximum, err = o.float("exclusiveMaximum"); err != nil {
			return nil, err
		}
		if p.Enum, err = InferNumberSet(lits); err != nil {
			return nil, enumErr(err)
		}
		return p, nil

	case TypeInteger:
		p := IntegerProperty{Annotations: ann}
		if p.Minimum, err = o.integer("minimum"); err != nil {
			return nil, err
		}
		if p.Maximum, err = o.integer("maximum"); err != nil {
			return nil, err
		}
		if p.ExclusiveMinimum, err = o.integer("exclusiveMinimum"); err != nil {
			return nil, err
		}
		if p.ExclusiveMaximum, err = o.integer("exclusiveMaximum"); err != nil {
			return nil, err
		}
		if p.Enum, err = InferIntegerSet(lits); err != nil {
			return nil, enumErr(err)
		}
		return p, nil

	case TypeBoolean:
		p := BooleanProperty{Annotations: ann}
		if p.Enum, err = InferBooleanSet(lits); err != nil {
			return nil, enumErr(err)
		}
		return p, nil

	case TypeArray:
		if lits != nil {
			return nil, enumErr(UnsupportedEnum(t))
		}
		p := ArrayProperty{Annotations: ann}
		if p.MinItems, err = o.count("minItems"); err != nil {
			return nil, err
		}
		if p.MaxItems, err = o.count("maxItems"); err != nil {
			return nil, err
		}
		if p.Items, err = d.items(o); err != nil {
			return nil, err
		}
		if p.UniqueItems, err = o.boolean("uniqueItems"); err != nil {
			return nil, err
		}
		return p, nil

	case TypeObject:
		if lits != nil {
			return nil, enumErr(UnsupportedEnum(t))
		}
		p := ObjectProperty{Annotations: ann}
		if p.Required, err = o.strings("required"); err != nil {
			return nil, err
		}
		if p.Properties, err = d.properties(o, "properties"); err != nil {
			return nil, err
		}
		if p.MinProperties, err = o.count("minProperties"); err != nil {
			return nil, err
		}
		if p.MaxProperties, err = o.count("maxProperties"); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, Errorf(CodeInvalidType, "unknown type %q", t).WithPath(o.at("type"))
}

func parseType(o object, raw any) (Type, error) {
	s, ok := raw.(string)
	if !ok {
		return "", Errorf(CodeInvalidType, "type must be a string, got %v", raw).WithPath(o.at("type"))
	}
	t, ok := ParseType(s)
	if !ok {
		return "", Errorf(CodeInvalidType, "unknown type %q", s).WithPath(o.at("type"))
	}
	return t, nil
}

// object is a decoded JSON object positioned inside its document.
type object struct {
	m   map[string]any
	ptr pointer.Pointer
}

func asObject(v any, ptr pointer.Pointer) (object, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return object{}, Errorf(CodeMalformedDocument, "expected an object").WithPath(ptr.String())
	}
	return object{m: m, ptr: ptr}, nil
}

func (o object) at(key string) string { return o.ptr.Field(key).String() }

func (o object) mistyped(key, want string) error {
	return Errorf(CodeMalformedDocument, "%s must be %s", key, want).WithPath(o.at(key))
}

// JSON null is treated as an absent keyword by every accessor below.

func (o object) string(key string) (*string, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, o.mistyped(key, "a string")
	}
	return &s, nil
}

func (o object) boolean(key string) (*bool, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, o.mistyped(key, "a boolean")
	}
	return &b, nil
}

func (o object) float(key string) (*float64, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, o.mistyped(key, "a number")
	}
	return &f, nil
}

func (o object) integer(key string) (*int64, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	i, ok := toInt(v)
	if !ok {
		return nil, o.mistyped(key, "a number")
	}
	return &i, nil
}

func (o object) count(key string) (*int, error) {
	i, err := o.integer(key)
	if err != nil || i == nil {
		return nil, err
	}
	if *i < 0 {
		return nil, o.mistyped(key, "a non-negative integer")
	}
	n := int(*i)
	return &n, nil
}

func (o object) strings(key string) ([]string, error) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, o.mistyped(key, "an array of strings")
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, o.mistyped(key, "an array of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func (o object) annotations() (Annotations, error) {
	var (
		a   Annotations
		err error
	)
	if a.Title, err = o.string("title"); err != nil {
		return a, err
	}
	if a.Description, err = o.string("description"); err != nil {
		return a, err
	}
	ref, err := o.string("$ref")
	if err != nil {
		return a, err
	}
	if ref != nil {
		r := ParseReference(*ref)
		a.Ref = &r
	}
	return a, nil
}

// literals reads "enum" as untyped JSON scalars, dropping repeats.
func (o object) literals() (Literals, error) {
	v, ok := o.m["enum"]
	if !ok || v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, o.mistyped("enum", "an array")
	}
	ptr := o.ptr.Field("enum")
	out := make(Literals, 0, len(arr))
	for i, e := range arr {
		if !literal(e) {
			return nil, Errorf(CodeMalformedEnumLiteral, "enum values must be strings, numbers, booleans or null").WithPath(ptr.Index(i).String())
		}
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
