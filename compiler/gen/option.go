package gen

import (
	"errors"
	"runtime"

	"github.com/rs/zerolog"
)

// Options holds the settings of a graph build.
type Options struct {
	// Workers bounds the number of tables resolved in parallel.
	Workers int
	// KeepGoing continues past failing tables and reports all of them.
	KeepGoing bool
	Logger    zerolog.Logger
	// Hooks run after the hooks of the generation context.
	Hooks []Hook
}

// Option configures a graph build.
type Option func(*Options) error

func defaultOptions() *Options {
	return &Options{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zerolog.Nop(),
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(o *Options) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be at least 1")
		}
		o.Workers = n
		return nil
	}
}

// WithKeepGoing makes the build resolve every table even after one failed.
// The returned error is then a *ResolveErrors.
func WithKeepGoing(keepGoing bool) Option {
	return func(o *Options) error {
		o.KeepGoing = keepGoing
		return nil
	}
}

// WithLogger sets the logger of the build.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) error {
		o.Logger = l
		return nil
	}
}

// WithHooks adds hooks that run on every resolved table.
func WithHooks(hooks ...Hook) Option {
	return func(o *Options) error {
		for _, h := range hooks {
			if h == nil {
				return NewConfigError("Hooks", nil, "hook cannot be nil")
			}
		}
		o.Hooks = append(o.Hooks, hooks...)
		return nil
	}
}

// Apply applies options.
// It returns the first error encountered.
func (o *Options) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (o *Options) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
