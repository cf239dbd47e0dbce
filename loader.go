package jsonschema2kotlin

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

// Load decodes every schema file under dir without resolving references.
// Files are keyed by their path relative to dir so that cross-file "$ref"
// values match.
func Load(ctx context.Context, fsys afero.Fs, dir string, opts ...Option) (map[string]*js.Schema, error) {
	o := newOptions(opts)
	log := o.log.Named("loader")

	files, err := listFiles(fsys, dir, o)
	if err != nil {
		return nil, err
	}
	log.Debug("Found schema files", zap.String("dir", dir), zap.Int("count", len(files)))

	var mu sync.Mutex
	out := make(map[string]*js.Schema, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := loadFile(fsys, dir, name, o, log)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = s
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadFile(fsys afero.Fs, dir, name string, o options, log *zap.Logger) (*js.Schema, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	dopt := o.decode
	dopt.Format = formatOf(name)
	s, warnings, err := js.DecodeWith(data, dopt)
	for _, w := range warnings {
		log.Warn("Schema decoded with warnings", zap.String("file", name), zap.String("path", w.Path), zap.String("warning", w.Message))
	}
	if err != nil {
		return nil, js.Annotate(err, name, "")
	}
	log.Debug("Decoded schema", zap.String("file", name), zap.Int("properties", len(s.Properties)), zap.Int("definitions", len(s.Definitions)))
	return s, nil
}

func formatOf(name string) js.Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return js.FormatYAML
	default:
		return js.FormatJSON
	}
}

// listFiles returns the sorted, slash-separated relative names of the schema
// files under dir.
func listFiles(fsys afero.Fs, dir string, o options) ([]string, error) {
	accept := func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		return slices.ContainsFunc(o.extensions, func(e string) bool { return strings.ToLower(e) == ext })
	}

	var files []string
	if !o.recursive {
		entries, err := afero.ReadDir(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() && accept(e.Name()) {
				files = append(files, e.Name())
			}
		}
		slices.Sort(files)
		return files, nil
	}

	err := afero.Walk(fsys, dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !accept(p) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	slices.Sort(files)
	return files, nil
}
