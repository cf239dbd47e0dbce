package jsonschema_test

import (
	"errors"
	"testing"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

func TestReference_Decompose(t *testing.T) {
	cases := []struct {
		raw, current string
		file, key    string
		local        bool
	}{
		{"a.json#/definitions/k", "b.json", "a.json", "k", false},
		{"#/definitions/k", "a.json", "a.json", "k", true},
		{"dir/a.json#/definitions/with/slash", "b.json", "dir/a.json", "with/slash", false},
		{"k", "a.json", "k", "k", false},
	}
	for _, tc := range cases {
		r := js.ParseReference(tc.raw)
		if got := r.FileName(tc.current); got != tc.file {
			t.Fatalf("%s: file %q, want %q", tc.raw, got, tc.file)
		}
		if got := r.DefinitionPath(); got != tc.key {
			t.Fatalf("%s: key %q, want %q", tc.raw, got, tc.key)
		}
		if r.IsLocal() != tc.local {
			t.Fatalf("%s: local %v", tc.raw, r.IsLocal())
		}
		if r.String() != tc.raw {
			t.Fatalf("raw value must round trip, got %q", r.String())
		}
	}
}

func TestRefTo(t *testing.T) {
	if got := js.RefTo("", "k").String(); got != "#/definitions/k" {
		t.Fatalf("local: %q", got)
	}
	if got := js.RefTo("a.json", "k"); !got.Equal(js.ParseReference("a.json#/definitions/k")) {
		t.Fatalf("cross-file: %q", got.String())
	}
}

func TestError_Format(t *testing.T) {
	err := js.Annotate(js.Errorf(js.CodeUnknownReferenceKey, "no definition %q", "k"), "a.json", "/properties/x")
	want := `a.json: unknown_reference_key at /properties/x: no definition "k"`
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, js.ErrUnresolvedReference) || !errors.Is(err, js.ErrUnknownReferenceKey) {
		t.Fatalf("sentinel matching failed for %v", err)
	}
	if errors.Is(err, js.ErrUnknownReferenceFile) {
		t.Fatalf("must not match a different code")
	}

	wrapped := js.Annotate(errors.New("boom"), "b.json", "/")
	if !errors.Is(wrapped, js.ErrMalformedDocument) {
		t.Fatalf("foreign errors become malformed documents, got %v", wrapped)
	}
}
