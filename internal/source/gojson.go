package source

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/justin-guan/jsonschema2kotlin/internal/engine"
)

// ErrSyntax reports a document that is not well-formed JSON.
var ErrSyntax = errors.New("invalid JSON syntax")

var delims = map[j.Delim]eng.Kind{
	'{': eng.KindBeginObject,
	'}': eng.KindEndObject,
	'[': eng.KindBeginArray,
	']': eng.KindEndArray,
}

// jsonTokens adapts the go-json streaming decoder. Object keys come out as
// plain strings; the tree builder knows when a key is due.
type jsonTokens struct {
	dec *j.Decoder
}

func newJSONTokens(data []byte) eng.TokenSource {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return jsonTokens{dec: dec}
}

func (t jsonTokens) NextToken() (eng.Token, error) {
	raw, err := t.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := raw.(type) {
	case j.Delim:
		if k, ok := delims[v]; ok {
			return eng.Token{Kind: k}, nil
		}
	case string:
		return eng.Token{Kind: eng.KindString, Text: v}, nil
	case j.Number:
		return eng.Token{Kind: eng.KindNumber, Text: v.String()}, nil
	case float64:
		return eng.Token{Kind: eng.KindNumber, Text: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		return eng.Token{Kind: eng.KindBool, Bool: v}, nil
	case nil:
		return eng.Token{Kind: eng.KindNull}, nil
	}
	return eng.Token{}, fmt.Errorf("unexpected JSON token %v", raw)
}

// DecodeJSON reads a single JSON document into a generic tree, applying opt
// while streaming. The token stream does not check separators, so the whole
// document is validated first.
func DecodeJSON(data []byte, opt eng.EnforceOptions) (any, error) {
	if !j.Valid(data) {
		return nil, ErrSyntax
	}
	return eng.Decode(newJSONTokens(data), opt)
}
