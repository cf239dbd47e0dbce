package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	j2k "github.com/justin-guan/jsonschema2kotlin"
	"github.com/justin-guan/jsonschema2kotlin/internal/config"
	"github.com/justin-guan/jsonschema2kotlin/internal/logging"
	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

const help = `Resolve interlinked JSON Schema documents.

All documents of a directory are decoded first; every "$ref" is then merged
with the definition it points to, in the same file or in a sibling file.`

type cli struct {
	Config        string `help:"YAML configuration file." placeholder:"FILE"`
	LogLevel      string `help:"Log level: debug, info, warn or error. Overrides the configuration file." placeholder:"LEVEL"`
	Concurrency   int    `help:"Number of files processed in parallel. Overrides the configuration file." placeholder:"N"`
	Recursive     bool   `help:"Descend into sub-directories."`
	DuplicateKeys string `help:"Duplicate key handling: error, warn or ignore. Overrides the configuration file."`

	Parse     parseCmd     `cmd:"" help:"Print or write every document with its references merged."`
	Serialize serializeCmd `cmd:"" help:"Write the override-only form of every document."`
	Inspect   inspectCmd   `cmd:"" help:"List the types a generator would declare."`
}

// env is bound into every command's Run method.
type env struct {
	ctx  context.Context
	fs   afero.Fs
	out  io.Writer
	conf *config.Conf
}

func (e *env) log() *zap.Logger { return logging.FromContext(e.ctx) }

func (e *env) options() []j2k.Option {
	return []j2k.Option{
		j2k.WithLogger(e.log()),
		j2k.WithConcurrency(e.conf.Concurrency),
		j2k.WithExtensions(e.conf.Extensions...),
		j2k.WithRecursive(e.conf.Recursive),
		j2k.WithDecodeOptions(e.conf.Decode),
	}
}

func newParser(c *cli, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("jsonschema2kotlin"),
		kong.Description(help),
		kong.UsageOnError(),
	}, options...)
	return kong.New(c, options...)
}

func main() {
	var c cli
	parser, err := newParser(&c)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, kctx, &c, afero.NewOsFs(), os.Stdout); err != nil {
		stop()
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, kctx *kong.Context, c *cli, fsys afero.Fs, out io.Writer) error {
	conf, err := config.Load(fsys, c.Config)
	if err != nil {
		return err
	}
	if c.LogLevel != "" {
		conf.LogLevel = c.LogLevel
	}
	if c.Concurrency > 0 {
		conf.Concurrency = c.Concurrency
	}
	if c.Recursive {
		conf.Recursive = true
	}
	if c.DuplicateKeys != "" {
		conf.Decode.DuplicateKeys = js.DuplicateKeys(c.DuplicateKeys)
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	log := logging.Init(conf.LogLevel)
	defer func() { _ = log.Sync() }()

	return kctx.Run(&env{ctx: logging.ToContext(ctx, log), fs: fsys, out: out, conf: conf})
}
