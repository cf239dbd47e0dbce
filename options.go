package jsonschema2kotlin

import (
	"runtime"

	"go.uber.org/zap"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

// Option configures the batch entry points.
type Option func(*options)

type options struct {
	log         *zap.Logger
	concurrency int
	extensions  []string
	recursive   bool
	decode      js.DecodeOptions
}

func newOptions(opts []Option) options {
	o := options{
		concurrency: runtime.GOMAXPROCS(0),
		extensions:  []string{".json", ".yaml", ".yml"},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.L()
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}

// WithLogger sets the logger. The default is zap.L().
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithConcurrency bounds how many files are decoded or merged at once. The
// default is runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithExtensions replaces the file suffixes read from a directory. Suffixes
// are matched case-insensitively and must include the leading dot.
func WithExtensions(ext ...string) Option {
	return func(o *options) { o.extensions = ext }
}

// WithRecursive makes directory loading descend into sub-directories. Files
// are then keyed by their slash-separated path relative to the root.
func WithRecursive(recursive bool) Option {
	return func(o *options) { o.recursive = recursive }
}

// WithDecodeOptions sets the per-document decoder options. The format is
// chosen from each file's extension.
func WithDecodeOptions(d js.DecodeOptions) Option {
	return func(o *options) { o.decode = d }
}
