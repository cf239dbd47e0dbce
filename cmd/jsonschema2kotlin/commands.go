package main

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	j2k "github.com/justin-guan/jsonschema2kotlin"
	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
	"github.com/justin-guan/jsonschema2kotlin/plan"
)

type parseCmd struct {
	Dir    string `arg:"" help:"Directory holding the schema documents."`
	Output string `short:"o" help:"Write one merged document per input file below this directory instead of printing." placeholder:"DIR"`
}

func (c *parseCmd) Run(e *env) error {
	schemas, err := j2k.ParseFS(e.ctx, e.fs, c.Dir, e.options()...)
	if err != nil {
		return err
	}
	header := color.New(color.FgCyan, color.Bold).SprintfFunc()
	for _, name := range slices.Sorted(maps.Keys(schemas)) {
		b, err := js.Encode(schemas[name])
		if err != nil {
			return js.Annotate(err, name, "")
		}
		if c.Output == "" {
			fmt.Fprintln(e.out, header("# %s", name))
			if _, err := e.out.Write(b); err != nil {
				return err
			}
			continue
		}
		target := filepath.Join(c.Output, filepath.FromSlash(name))
		if err := e.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
		}
		if err := afero.WriteFile(e.fs, target, b, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		e.log().Info("Wrote merged schema", zap.String("file", target))
	}
	return nil
}

type serializeCmd struct {
	Dir    string `arg:"" help:"Directory holding the schema documents."`
	Output string `short:"o" required:"" help:"Directory to write the serialized documents to." placeholder:"DIR"`
}

func (c *serializeCmd) Run(e *env) error {
	schemas, err := j2k.ParseFS(e.ctx, e.fs, c.Dir, e.options()...)
	if err != nil {
		return err
	}
	if err := j2k.SerializeFS(e.ctx, e.fs, c.Output, schemas, e.options()...); err != nil {
		return err
	}
	e.log().Info("Serialized schemas", zap.Int("files", len(schemas)), zap.String("dir", c.Output))
	return nil
}

type inspectCmd struct {
	Dir string `arg:"" help:"Directory holding the schema documents."`
}

func (c *inspectCmd) Run(e *env) error {
	schemas, err := j2k.ParseFS(e.ctx, e.fs, c.Dir, e.options()...)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(e.out)
	table.SetHeader([]string{"File", "Type", "Kind", "Path", "Members"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, d := range plan.Build(schemas) {
		table.Append([]string{d.File, d.QualifiedName(), string(d.Kind), d.Path, members(d)})
	}
	table.Render()
	return nil
}

func members(d plan.Decl) string {
	var parts []string
	switch d.Kind {
	case plan.KindObject:
		for _, f := range d.Fields {
			s := f.Name + ": " + f.Type.String()
			if !f.Required {
				s += "?"
			}
			parts = append(parts, s)
		}
	case plan.KindEnum:
		for _, c := range d.Constants {
			parts = append(parts, c.Name)
		}
		if d.Nullable {
			parts = append(parts, "null")
		}
		return string(d.ValueType) + ": " + strings.Join(parts, ", ")
	}
	return strings.Join(parts, ", ")
}
