package resolve_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
	"github.com/justin-guan/jsonschema2kotlin/resolve"
)

func TestReferenceMap_GetDefinition(t *testing.T) {
	d := js.Definition{Title: js.Ptr("D"), MinLength: js.Ptr(3)}
	refs := resolve.NewReferenceMap(map[string]*js.Schema{
		"a.json": {Definitions: map[string]js.Definition{"k": d}},
		"b.json": {},
		"c.json": {Definitions: map[string]js.Definition{}},
	})
	if refs.Files() != 2 || refs.Definitions() != 1 {
		t.Fatalf("unexpected index size: %d files, %d definitions", refs.Files(), refs.Definitions())
	}

	for _, tc := range []struct{ raw, current string }{
		{"a.json#/definitions/k", "b.json"},
		{"a.json#/definitions/k", "a.json"},
		{"#/definitions/k", "a.json"},
	} {
		ref := js.ParseReference(tc.raw)
		got, err := refs.GetDefinition(&ref, tc.current)
		if err != nil {
			t.Fatalf("%s from %s: %v", tc.raw, tc.current, err)
		}
		if diff := cmp.Diff(&d, got); diff != "" {
			t.Fatalf("%s from %s (-want +got):\n%s", tc.raw, tc.current, diff)
		}
	}

	got, err := refs.GetDefinition(nil, "a.json")
	if got != nil || err != nil {
		t.Fatalf("nil reference should resolve to nothing, got %v %v", got, err)
	}
}

func TestReferenceMap_Unresolved(t *testing.T) {
	refs := resolve.NewReferenceMap(map[string]*js.Schema{
		"a.json": {Definitions: map[string]js.Definition{"k": {}}},
		"b.json": {},
		"e.json": {Definitions: map[string]js.Definition{}},
	})
	cases := []struct {
		raw, current string
		want         error
	}{
		{"missing.json#/definitions/k", "a.json", js.ErrUnknownReferenceFile},
		{"a.json#/definitions/nope", "b.json", js.ErrUnknownReferenceKey},
		{"#/definitions/k", "e.json", js.ErrUnknownReferenceKey},
		{"#/definitions/k", "c.json", js.ErrUnknownReferenceFile},
		{"#/definitions/k", "b.json", js.ErrUnknownReferenceFile},
		{"b.json#/definitions/k", "a.json", js.ErrUnknownReferenceFile},
	}
	for _, tc := range cases {
		ref := js.ParseReference(tc.raw)
		_, err := refs.GetDefinition(&ref, tc.current)
		if !errors.Is(err, tc.want) || !errors.Is(err, js.ErrUnresolvedReference) {
			t.Fatalf("%s from %s: expected %v, got %v", tc.raw, tc.current, tc.want, err)
		}
	}
}
