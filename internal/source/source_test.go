package source_test

import (
	"errors"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	eng "github.com/justin-guan/jsonschema2kotlin/internal/engine"
	"github.com/justin-guan/jsonschema2kotlin/internal/source"
)

func TestDecodeJSON_Tree(t *testing.T) {
	got, err := source.DecodeJSON([]byte(`{"a":[1,"x",true,null],"b":{"c":1.5}}`), eng.EnforceOptions{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"a": []any{j.Number("1"), "x", true, nil},
		"b": map[string]any{"c": j.Number("1.5")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON_DuplicateKeyRejected(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`{"a":{"x":1,"x":2}}`), eng.EnforceOptions{OnDuplicate: eng.DupError})
	var ie eng.IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Code != eng.CodeDuplicateKey || ie.Path != "/a/x" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestDecodeJSON_DuplicateKeyWarn(t *testing.T) {
	var seen []eng.SimpleIssue
	got, err := source.DecodeJSON([]byte(`{"x":1,"x":2}`), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink:   func(si eng.SimpleIssue) { seen = append(seen, si) },
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected one warning, got %v", seen)
	}
	if m := got.(map[string]any); m["x"] != j.Number("2") {
		t.Fatalf("last value should win, got %v", m["x"])
	}
}

func TestDecodeJSON_MaxDepth(t *testing.T) {
	_, err := source.DecodeJSON([]byte(`{"a":{"b":{"c":{}}}}`), eng.EnforceOptions{MaxDepth: 2})
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeDepthExceeded {
		t.Fatalf("expected depth error, got %v", err)
	}
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	if _, err := source.DecodeJSON([]byte(`{} {}`), eng.EnforceOptions{}); err == nil {
		t.Fatalf("expected error for trailing document")
	}
}

func TestDecodeYAML_MatchesJSONShape(t *testing.T) {
	doc := []byte("a:\n  - 1\n  - x\n  - true\n  - null\nb:\n  c: 1.5\n")
	got, err := source.DecodeYAML(doc, eng.EnforceOptions{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"a": []any{j.Number("1"), "x", true, nil},
		"b": map[string]any{"c": j.Number("1.5")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeYAML_DuplicateKey(t *testing.T) {
	_, err := source.DecodeYAML([]byte("a: 1\na: 2\n"), eng.EnforceOptions{OnDuplicate: eng.DupError})
	var dk *source.DuplicateKeyError
	if !errors.As(err, &dk) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if dk.Key != "a" || dk.Line != 2 || dk.FirstLine != 1 {
		t.Fatalf("unexpected positions: %+v", dk)
	}
}

func TestDecodeJSON_Syntax(t *testing.T) {
	for _, doc := range []string{
		`{"type" "object"}`,
		`{"type":"object",,}`,
		`{"type":"object" "title":"x"}`,
		`{"required":["a" "b"]}`,
		`{"a":1,}`,
		``,
	} {
		if _, err := source.DecodeJSON([]byte(doc), eng.EnforceOptions{}); !errors.Is(err, source.ErrSyntax) {
			t.Fatalf("%q: expected syntax error, got %v", doc, err)
		}
	}
}
