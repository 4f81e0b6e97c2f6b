package gen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/tablegen/compiler/load"
	"github.com/syssam/tablegen/schema"
)

// Catalog is the introspected table set a graph is built from.
type Catalog interface {
	load.Lookup
	// Tables returns the tables in catalog order.
	Tables() []*load.Table
}

// Graph holds the resolved types of one generation context, in catalog
// order.
type Graph struct {
	// ID is the id of the context the graph was built from.
	ID string
	// Nodes are the resolved types.
	Nodes []*Type
	// Vetoed holds the tables whose generation a hook stopped.
	Vetoed []string

	patterns  []*schema.TablePattern
	relations *RelationStore
}

// NewGraph validates c and resolves every configured table of catalog.
// Tables without an effective entry are not generated, and neither are
// tables used only as junction middle tables.
//
// By default the first failing table, in catalog order, fails the build
// with a *TableError. With WithKeepGoing the graph holds every table that
// resolved and the error is a *ResolveErrors.
func NewGraph(ctx context.Context, c *Context, catalog Catalog, opts ...Option) (*Graph, error) {
	o := defaultOptions()
	if err := o.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g := &Graph{
		ID:        c.ID,
		patterns:  MergeTablePatterns(c.Tables),
		relations: c.Relations,
	}
	b := &builder{
		opts:  o,
		hooks: append(append(Hooks{}, c.Hooks...), o.Hooks...),
		resolver: &Resolver{
			Lookup:   catalog,
			Patterns: g.patterns,
			Columns:  c.Columns,
		},
		relations: c.Relations,
	}
	err := b.build(ctx, g, catalog.Tables())
	if err != nil && !IsResolveErrors(err) {
		return nil, err
	}
	return g, err
}

type builder struct {
	opts      *Options
	hooks     Hooks
	resolver  *Resolver
	relations *RelationStore
}

// result is the outcome of one table. At most one of its fields is set.
type result struct {
	typ    *Type
	vetoed bool
	err    error
}

func (b *builder) build(ctx context.Context, g *Graph, tables []*load.Table) error {
	log := b.opts.Logger.With().Str("context", g.ID).Logger()
	results := make([]result, len(tables))
	eg := new(errgroup.Group)
	eg.SetLimit(b.opts.Workers)
	for i, t := range tables {
		pattern := PatternFor(g.patterns, t.Name)
		switch {
		case pattern == nil:
			log.Debug().Str("table", t.Name).Msg("table not configured")
			continue
		case b.relations.isJunctionOnly(t.Name):
			log.Info().Str("table", t.Name).Msg("junction table skipped")
			continue
		}
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			results[i] = b.table(ctx, t, pattern)
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	var errs []*TableError
	for i, r := range results {
		name := tables[i].Name
		switch {
		case r.err != nil:
			terr := &TableError{Table: name, Err: r.err}
			if !b.opts.KeepGoing {
				return terr
			}
			log.Error().Err(r.err).Str("table", name).Msg("table failed")
			errs = append(errs, terr)
		case r.vetoed:
			g.Vetoed = append(g.Vetoed, name)
		case r.typ != nil:
			g.Nodes = append(g.Nodes, r.typ)
		}
	}
	if len(errs) > 0 {
		return &ResolveErrors{Errors: errs}
	}
	return nil
}

// table resolves one table: physical fields, relations and hooks.
func (b *builder) table(ctx context.Context, table *load.Table, pattern *schema.TablePattern) result {
	log := b.opts.Logger.With().Str("table", table.Name).Logger()
	t, err := b.resolver.Type(table, pattern)
	if err != nil {
		return result{err: err}
	}
	if decl := b.relations.Get(table.Name); decl != nil {
		rels, err := b.resolver.Relations(t, decl)
		if err != nil {
			return result{err: err}
		}
		for _, rel := range rels {
			t.Fields = append(t.Fields, rel.Field)
		}
		t.Relations = rels
	}
	if err := b.hooks.Apply(ctx, t); err != nil {
		if errors.Is(err, Stop) {
			log.Info().Str("reason", err.Error()).Msg("table vetoed")
			return result{vetoed: true}
		}
		return result{err: fmt.Errorf("hook: %w", err)}
	}
	log.Debug().
		Str("type", t.Name).
		Int("fields", len(t.Fields)).
		Int("relations", len(t.Relations)).
		Msg("table resolved")
	return result{typ: t}
}

// Type returns the resolved type of the named table, or nil.
func (g *Graph) Type(table string) *Type {
	for _, t := range g.Nodes {
		if strings.EqualFold(t.Table.Name, table) {
			return t
		}
	}
	return nil
}

// IsJunctionTable reports whether some junction relation of the context
// uses table as its middle table.
func (g *Graph) IsJunctionTable(table string) bool {
	return g.relations.IsJunctionTable(table)
}

// Patterns returns the merged table entries.
func (g *Graph) Patterns() []*schema.TablePattern {
	return g.patterns
}
