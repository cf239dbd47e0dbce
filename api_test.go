package jsonschema2kotlin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	j2k "github.com/justin-guan/jsonschema2kotlin"
	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, body := range files {
		if err := afero.WriteFile(fsys, name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fsys
}

var quiet = j2k.WithLogger(zap.NewNop())

const (
	personDoc = `{
		"type": "object",
		"title": "Person",
		"properties": {
			"name": {"type": "string", "$ref": "common.json#/definitions/name"},
			"role": {"type": "string", "$ref": "roles.yaml#/definitions/role", "title": "Role"}
		}
	}`
	commonDoc = `{"type":"object","definitions":{"name":{"type":"string","minLength":1,"title":"Name"}}}`
	rolesDoc  = "type: object\ndefinitions:\n  role:\n    type: string\n    enum: [admin, user]\n"
)

func TestParseFS_MergesAcrossFiles(t *testing.T) {
	fsys := writeFiles(t, map[string]string{
		"schemas/person.json": personDoc,
		"schemas/common.json": commonDoc,
		"schemas/roles.yaml":  rolesDoc,
		"schemas/README.md":   "not a schema",
	})
	got, err := j2k.ParseFS(context.Background(), fsys, "schemas", quiet)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected three documents, got %d", len(got))
	}
	name := got["person.json"].Properties["name"].(js.StringProperty)
	if name.MinLength == nil || *name.MinLength != 1 || *name.Title != "Name" {
		t.Fatalf("name not merged: %+v", name)
	}
	role := got["person.json"].Properties["role"].(js.StringProperty)
	if *role.Title != "Role" || !role.Enum.Equal(js.EnumOf("admin", "user")) {
		t.Fatalf("role not merged: %+v", role)
	}
}

func TestParseFS_Recursive(t *testing.T) {
	fsys := writeFiles(t, map[string]string{
		"root/a.json":     `{"type":"object","properties":{"x":{"type":"integer","$ref":"sub/b.json#/definitions/n"}}}`,
		"root/sub/b.json": `{"type":"object","definitions":{"n":{"maximum":9}}}`,
	})
	if _, err := j2k.ParseFS(context.Background(), fsys, "root", quiet); !errors.Is(err, js.ErrUnknownReferenceFile) {
		t.Fatalf("non-recursive load should not see sub/b.json, got %v", err)
	}
	got, err := j2k.ParseFS(context.Background(), fsys, "root", quiet, j2k.WithRecursive(true))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	x := got["a.json"].Properties["x"].(js.IntegerProperty)
	if x.Maximum == nil || *x.Maximum != 9 {
		t.Fatalf("x not merged: %+v", x)
	}
}

func TestParseFS_ErrorNamesFile(t *testing.T) {
	fsys := writeFiles(t, map[string]string{
		"s/ok.json":  `{"type":"object"}`,
		"s/bad.json": `{"type":"object","properties":{"p":{"title":"no type"}}}`,
	})
	_, err := j2k.ParseFS(context.Background(), fsys, "s", quiet, j2k.WithConcurrency(1))
	se, ok := js.AsError(err)
	if !ok || se.Code != js.CodeMissingType || se.File != "bad.json" || se.Path != "/properties/p" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestParseFS_ExtensionsAndDecodeOptions(t *testing.T) {
	fsys := writeFiles(t, map[string]string{
		"s/a.json":   `{"type":"object","title":"A","title":"B"}`,
		"s/b.schema": `{"type":"object"}`,
	})
	_, err := j2k.ParseFS(context.Background(), fsys, "s", quiet)
	if !errors.Is(err, js.ErrMalformedDocument) {
		t.Fatalf("duplicate keys are rejected by default, got %v", err)
	}
	got, err := j2k.ParseFS(context.Background(), fsys, "s", quiet,
		j2k.WithExtensions(".json", ".schema"),
		j2k.WithDecodeOptions(js.DecodeOptions{DuplicateKeys: js.DuplicateIgnore}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 || *got["a.json"].Title != "B" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestSerialize_StripsInheritedAttributes(t *testing.T) {
	fsys := writeFiles(t, map[string]string{
		"in/person.json": personDoc,
		"in/common.json": commonDoc,
		"in/roles.yaml":  rolesDoc,
	})
	ctx := context.Background()
	merged, err := j2k.ParseFS(ctx, fsys, "in", quiet)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := j2k.SerializeFS(ctx, fsys, "out", merged, quiet); err != nil {
		t.Fatalf("serialize: %v", err)
	}

	data, err := afero.ReadFile(fsys, "out/person.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	back, err := js.Decode(data)
	if err != nil {
		t.Fatalf("decode serialized: %v\n%s", err, data)
	}
	original, err := js.Decode([]byte(personDoc))
	if err != nil {
		t.Fatalf("decode original: %v", err)
	}
	if diff := cmp.Diff(original, back); diff != "" {
		t.Fatalf("serialized form differs from the source (-source +serialized):\n%s", diff)
	}
	if ok, _ := afero.Exists(fsys, "out/roles.yaml"); !ok {
		t.Fatalf("every document should be written")
	}
}

func TestGenerate_EmitsMergedBatch(t *testing.T) {
	fsys := writeFiles(t, map[string]string{"d/common.json": commonDoc})
	var seen []string
	e := j2k.EmitterFunc(func(_ context.Context, schemas map[string]*js.Schema) error {
		for name := range schemas {
			seen = append(seen, name)
		}
		return nil
	})
	if err := j2k.Generate(context.Background(), fsys, "d", e, quiet); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"common.json"}, seen); diff != "" {
		t.Fatalf("emitted files (-want +got):\n%s", diff)
	}
}
