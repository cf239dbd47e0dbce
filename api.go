package jsonschema2kotlin

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
	"github.com/justin-guan/jsonschema2kotlin/resolve"
)

// Emitter consumes a fully merged batch, for example to generate source code.
type Emitter interface {
	Emit(ctx context.Context, schemas map[string]*js.Schema) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, schemas map[string]*js.Schema) error

func (f EmitterFunc) Emit(ctx context.Context, schemas map[string]*js.Schema) error {
	return f(ctx, schemas)
}

// ParseDirectory loads every schema file in dir from the OS file system and
// merges each property with the definition it references.
func ParseDirectory(ctx context.Context, dir string, opts ...Option) (map[string]*js.Schema, error) {
	return ParseFS(ctx, afero.NewOsFs(), dir, opts...)
}

// ParseFS is ParseDirectory over an arbitrary file system.
func ParseFS(ctx context.Context, fsys afero.Fs, dir string, opts ...Option) (map[string]*js.Schema, error) {
	schemas, err := Load(ctx, fsys, dir, opts...)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, schemas, opts...)
}

// Parse merges an already decoded batch. The reference map covers exactly the
// given schemas.
func Parse(ctx context.Context, schemas map[string]*js.Schema, opts ...Option) (map[string]*js.Schema, error) {
	return resolveWith(ctx, schemas, resolve.Merge, newOptions(opts))
}

// Serialize strips every attribute that only restates a referenced definition
// and encodes each document as JSON.
func Serialize(ctx context.Context, schemas map[string]*js.Schema, opts ...Option) (map[string][]byte, error) {
	o := newOptions(opts)
	unmerged, err := resolveWith(ctx, schemas, resolve.Unmerge, o)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(unmerged))
	for name, s := range unmerged {
		b, err := js.Encode(s)
		if err != nil {
			return nil, js.Annotate(err, name, "")
		}
		out[name] = b
	}
	return out, nil
}

// SerializeFS writes the output of Serialize below dir, one file per
// document under its original name.
func SerializeFS(ctx context.Context, fsys afero.Fs, dir string, schemas map[string]*js.Schema, opts ...Option) error {
	o := newOptions(opts)
	docs, err := Serialize(ctx, schemas, opts...)
	if err != nil {
		return err
	}
	for name, b := range docs {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
		}
		if err := afero.WriteFile(fsys, target, b, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		o.log.Debug("Wrote schema", zap.String("file", target), zap.Int("bytes", len(b)))
	}
	return nil
}

// Generate parses dir and hands the merged batch to e.
func Generate(ctx context.Context, fsys afero.Fs, dir string, e Emitter, opts ...Option) error {
	schemas, err := ParseFS(ctx, fsys, dir, opts...)
	if err != nil {
		return err
	}
	return e.Emit(ctx, schemas)
}

func resolveWith(ctx context.Context, schemas map[string]*js.Schema, s resolve.Strategy, o options) (map[string]*js.Schema, error) {
	return resolve.Resolve(ctx, schemas, s,
		resolve.WithLogger(o.log),
		resolve.WithConcurrency(o.concurrency),
	)
}
