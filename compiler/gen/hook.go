package gen

import (
	"context"
	"errors"
	"fmt"
)

// Stop may be returned by hooks to veto the generation of a table. A vetoed
// table is left out of the graph without failing the build.
//
//	if errors.Is(err, gen.Stop) { ... }
var Stop = errors.New("tablegen: stop generation")

// Stopf returns a formatted wrapped Stop decision.
// The returned error wraps Stop and can be checked with errors.Is(err, Stop).
func Stopf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Stop)...)
}

// Hook is called for every resolved table before it is added to the graph.
// Hooks may modify the type. Returning nil continues with the next hook,
// Stop vetoes the table, and any other error fails it.
type Hook interface {
	Apply(context.Context, *Type) error
}

// The HookFunc type is an adapter to allow the use of ordinary functions
// as hooks.
type HookFunc func(context.Context, *Type) error

// Apply calls f(ctx, t).
func (f HookFunc) Apply(ctx context.Context, t *Type) error {
	return f(ctx, t)
}

// Hooks is an ordered chain of hooks.
type Hooks []Hook

// Apply runs the hooks in order and returns the first non-nil result.
func (hs Hooks) Apply(ctx context.Context, t *Type) error {
	for _, h := range hs {
		if err := h.Apply(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// SkipTables returns a hook vetoing the named tables.
func SkipTables(names ...string) Hook {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	return HookFunc(func(_ context.Context, t *Type) error {
		if _, ok := skip[t.Table.Name]; ok {
			return Stopf("table %s is skipped", t.Table.Name)
		}
		return nil
	})
}

// RequireFeature returns a hook vetoing tables that have the named feature
// disabled.
func RequireFeature(name string) Hook {
	return HookFunc(func(_ context.Context, t *Type) error {
		ok, err := t.FeatureEnabled(name)
		if err != nil {
			return err
		}
		if !ok {
			return Stopf("table %s has %s disabled", t.Table.Name, name)
		}
		return nil
	})
}
