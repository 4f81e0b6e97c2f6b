package gen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/huandu/go-clone"
	"github.com/samber/lo"

	"github.com/syssam/tablegen/schema"
)

// ResolveExtends merges every context with the context it extends, in
// context id order. Parents are resolved before their children. A child
// inherits the connection and target settings it lacks, the parent's
// global column overrides and table entries it does not declare itself,
// and the parent's relation declarations for left tables it does not
// declare. Resolving twice yields the same contexts.
func ResolveExtends(contexts map[string]*Context) error {
	r := &extendsResolver{
		contexts: contexts,
		state:    make(map[string]resolveState, len(contexts)),
	}
	ids := lo.Keys(contexts)
	slices.Sort(ids)
	for _, id := range ids {
		if err := r.resolve(id, nil); err != nil {
			return err
		}
	}
	return nil
}

type resolveState uint8

const (
	unresolved resolveState = iota
	resolving
	resolved
)

type extendsResolver struct {
	contexts map[string]*Context
	state    map[string]resolveState
}

func (r *extendsResolver) resolve(id string, chain []string) error {
	switch r.state[id] {
	case resolved:
		return nil
	case resolving:
		return &ConfigurationError{
			Context:  id,
			Problems: []string{"extends cycle: " + strings.Join(append(chain, id), " -> ")},
		}
	}
	c := r.contexts[id]
	if c == nil || c.Extends == "" {
		r.state[id] = resolved
		return nil
	}
	parent, ok := r.contexts[c.Extends]
	if !ok || parent == nil {
		return &ConfigurationError{
			Context:  id,
			Problems: []string{fmt.Sprintf("unknown extends context %q", c.Extends)},
		}
	}
	r.state[id] = resolving
	if err := r.resolve(c.Extends, append(chain, id)); err != nil {
		return err
	}
	inherit(c, parent)
	c.extended = c.Extends
	r.state[id] = resolved
	return nil
}

// inherit merges parent into child.
func inherit(child, parent *Context) {
	if child.Connection == nil && parent.Connection != nil {
		conn := *parent.Connection
		child.Connection = &conn
	}
	if child.Target == nil && parent.Target != nil {
		target := *parent.Target
		child.Target = &target
	}
	for _, o := range parent.Columns {
		if o == nil || slices.ContainsFunc(child.Columns, func(c *schema.ColumnOverride) bool {
			return c != nil && strings.EqualFold(c.Column, o.Column)
		}) {
			continue
		}
		child.Columns = append(child.Columns, clone.Clone(o).(*schema.ColumnOverride))
	}
	for _, p := range parent.Tables {
		if p == nil || slices.ContainsFunc(child.Tables, p.Equal) {
			continue
		}
		child.Tables = append(child.Tables, clonePattern(p))
	}
	if child.Relations == nil {
		child.Relations = NewRelationStore()
	}
	child.Relations.inherit(parent.Relations)
}
