package pathfind

import "context"

// Options bound an enumeration. The zero value means unbounded, which keeps
// every simple path; callers that face dense graphs should set limits.
type Options struct {
	Ctx context.Context

	// MaxPaths stops the search once this many paths are collected (0 = no limit).
	MaxPaths int

	// MaxDepth drops branches with more than this many edges (0 = no limit).
	MaxDepth int
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext makes the enumeration stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

func WithMaxPaths(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxPaths = n
		}
	}
}

func WithMaxDepth(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxDepth = n
		}
	}
}
