package resolve

import (
	"context"
	"maps"
	"runtime"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

// Option configures Resolve.
type Option func(*options)

type options struct {
	log         *zap.Logger
	concurrency int
}

// WithLogger sets the logger. The default is zap.L().
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithConcurrency bounds the number of files merged at once. Values below one
// select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// Resolve indexes the definitions of the whole batch and then merges every
// document with strategy. The first failure aborts the batch. Inputs are not
// modified; the returned map holds new Schema values keyed like schemas.
func Resolve(ctx context.Context, schemas map[string]*js.Schema, strategy Strategy, opts ...Option) (map[string]*js.Schema, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.L()
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	log := o.log.Named("resolve")

	refs := NewReferenceMap(schemas)
	log.Debug("Reference map built", zap.Int("files", refs.Files()), zap.Int("definitions", refs.Definitions()))

	var mu sync.Mutex
	out := make(map[string]*js.Schema, len(schemas))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, name := range slices.Sorted(maps.Keys(schemas)) {
		s := schemas[name]
		if s == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			merged, err := MergeSchema(s, refs, strategy, name)
			if err != nil {
				return js.Annotate(err, name, "")
			}
			mu.Lock()
			out[name] = merged
			mu.Unlock()
			log.Debug("Resolved file", zap.String("file", name), zap.Stringer("strategy", strategy))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
