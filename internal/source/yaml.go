package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	eng "github.com/justin-guan/jsonschema2kotlin/internal/engine"
	"github.com/justin-guan/jsonschema2kotlin/internal/pointer"
)

// DuplicateKeyError locates a repeated YAML mapping key.
type DuplicateKeyError struct {
	Key  string
	Path string

	Line, Column           int
	FirstLine, FirstColumn int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%d:%d: key %q already defined at %d:%d", e.Line, e.Column, e.Key, e.FirstLine, e.FirstColumn)
}

// DecodeYAML reads a single YAML document into the same tree shape DecodeJSON
// produces. Numbers become json.Number so both formats decode identically.
func DecodeYAML(data []byte, opt eng.EnforceOptions) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	var next yaml.Node
	if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, eng.ErrTrailingData
	}
	r := yamlReader{opt: opt}
	return r.node(&root, "", 0)
}

type yamlReader struct {
	opt eng.EnforceOptions
}

func (r yamlReader) node(n *yaml.Node, path string, depth int) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, io.ErrUnexpectedEOF
		}
		return r.node(n.Content[0], path, depth)
	case yaml.AliasNode:
		return r.node(n.Alias, path, depth)
	case yaml.MappingNode:
		if err := r.opt.CheckDepth(path, depth+1); err != nil {
			return nil, err
		}
		out := make(map[string]any, len(n.Content)/2)
		keys := map[string]*yaml.Node{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			at := pointer.Join(path, kn.Value)
			if prev := keys[kn.Value]; prev != nil {
				if r.opt.OnDuplicate == eng.DupError {
					return nil, &DuplicateKeyError{
						Key: kn.Value, Path: at,
						Line: kn.Line, Column: kn.Column,
						FirstLine: prev.Line, FirstColumn: prev.Column,
					}
				}
				_ = r.opt.Duplicate(at, kn.Value)
			}
			keys[kn.Value] = kn
			v, err := r.node(vn, at, depth+1)
			if err != nil {
				return nil, err
			}
			out[kn.Value] = v
		}
		return out, nil
	case yaml.SequenceNode:
		if err := r.opt.CheckDepth(path, depth+1); err != nil {
			return nil, err
		}
		items := make([]any, len(n.Content))
		for i, c := range n.Content {
			var err error
			if items[i], err = r.node(c, pointer.Join(path, strconv.Itoa(i)), depth+1); err != nil {
				return nil, err
			}
		}
		return items, nil
	case yaml.ScalarNode:
		return scalar(n)
	default:
		return nil, nil
	}
}

func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return j.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("line %d: %q is not representable in JSON", n.Line, n.Value)
		}
		return j.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return n.Value, nil
	}
}
