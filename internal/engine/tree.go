// Package engine turns a stream of JSON tokens into a generic tree while
// applying duplicate key and nesting limits.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/justin-guan/jsonschema2kotlin/internal/pointer"
)

type Kind uint8

const (
	KindBeginObject Kind = iota + 1
	KindEndObject
	KindBeginArray
	KindEndArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is one lexical token. Text carries string contents, including object
// keys, and the literal digits of numbers.
type Token struct {
	Kind Kind
	Text string
	Bool bool
}

type TokenSource interface {
	NextToken() (Token, error)
}

var ErrTrailingData = errors.New("unexpected data after top-level value")

// Decode reads exactly one value from src. The result is built from
// map[string]any, []any, string, json.Number, bool and nil, so integers never
// pass through float64.
func Decode(src TokenSource, opt EnforceOptions) (any, error) {
	b := treeBuilder{src: src, opt: opt}
	tok, err := b.next()
	if err != nil {
		return nil, err
	}
	v, err := b.value(tok, "", 0)
	if err != nil {
		return nil, err
	}
	_, err = src.NextToken()
	switch {
	case errors.Is(err, io.EOF):
		return v, nil
	case err != nil:
		return nil, err
	}
	return nil, ErrTrailingData
}

type treeBuilder struct {
	src TokenSource
	opt EnforceOptions
}

// next reports running out of tokens mid-value as truncation.
func (b *treeBuilder) next() (Token, error) {
	tok, err := b.src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (b *treeBuilder) value(tok Token, path string, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return b.object(path, depth+1)
	case KindBeginArray:
		return b.array(path, depth+1)
	case KindString:
		return tok.Text, nil
	case KindNumber:
		return json.Number(tok.Text), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	}
	return nil, fmt.Errorf("unexpected token at %q", path)
}

func (b *treeBuilder) object(path string, depth int) (map[string]any, error) {
	if err := b.opt.CheckDepth(path, depth); err != nil {
		return nil, err
	}
	m := map[string]any{}
	for {
		key, err := b.next()
		if err != nil {
			return nil, err
		}
		if key.Kind == KindEndObject {
			return m, nil
		}
		if key.Kind != KindString {
			return nil, fmt.Errorf("expected an object key at %q", path)
		}
		at := pointer.Join(path, key.Text)
		if _, seen := m[key.Text]; seen {
			if err := b.opt.Duplicate(at, key.Text); err != nil {
				return nil, err
			}
		}
		tok, err := b.next()
		if err != nil {
			return nil, err
		}
		if m[key.Text], err = b.value(tok, at, depth); err != nil {
			return nil, err
		}
	}
}

func (b *treeBuilder) array(path string, depth int) ([]any, error) {
	if err := b.opt.CheckDepth(path, depth); err != nil {
		return nil, err
	}
	arr := []any{}
	for {
		tok, err := b.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := b.value(tok, pointer.Join(path, strconv.Itoa(len(arr))), depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
