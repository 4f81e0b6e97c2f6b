package gen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/huandu/go-clone"
	"github.com/samber/lo"

	"github.com/syssam/tablegen/schema"
)

// RelationStore holds the relation declarations of a context, keyed by
// left table name. Keys compare without regard to case. A store is not
// safe for concurrent writes; it is read-only once resolution starts.
type RelationStore struct {
	entries map[string]*storeEntry
}

type storeEntry struct {
	table string
	decl  *schema.RelationDeclaration
}

// NewRelationStore returns an empty store.
func NewRelationStore() *RelationStore {
	return &RelationStore{entries: make(map[string]*storeEntry)}
}

// Put stores the declaration of leftTable, replacing any previous one.
func (s *RelationStore) Put(leftTable string, decl *schema.RelationDeclaration) {
	if s.entries == nil {
		s.entries = make(map[string]*storeEntry)
	}
	s.entries[strings.ToLower(leftTable)] = &storeEntry{table: leftTable, decl: decl}
}

// Get returns the declaration of leftTable, or nil.
func (s *RelationStore) Get(leftTable string) *schema.RelationDeclaration {
	if s == nil {
		return nil
	}
	if e, ok := s.entries[strings.ToLower(leftTable)]; ok {
		return e.decl
	}
	return nil
}

// Tables returns the left table names in sorted order.
func (s *RelationStore) Tables() []string {
	if s == nil {
		return nil
	}
	names := lo.MapToSlice(s.entries, func(_ string, e *storeEntry) string {
		return e.table
	})
	slices.Sort(names)
	return names
}

// Len returns the number of declarations.
func (s *RelationStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Clone returns a deep copy of the store.
func (s *RelationStore) Clone() *RelationStore {
	c := NewRelationStore()
	if s == nil {
		return c
	}
	for k, e := range s.entries {
		c.entries[k] = &storeEntry{table: e.table, decl: clone.Clone(e.decl).(*schema.RelationDeclaration)}
	}
	return c
}

// IsJunctionTable reports whether some junction relation of the store names
// table as its middle table.
func (s *RelationStore) IsJunctionTable(table string) bool {
	if s == nil {
		return false
	}
	for _, e := range s.entries {
		if e.decl == nil {
			continue
		}
		for _, j := range e.decl.Junctions {
			if j != nil && strings.EqualFold(j.MiddleTable, table) {
				return true
			}
		}
	}
	return false
}

// isJunctionOnly reports whether table is used only as a junction middle
// table: it declares no relations and no relation targets it.
func (s *RelationStore) isJunctionOnly(table string) bool {
	if !s.IsJunctionTable(table) || s.Get(table) != nil {
		return false
	}
	for _, e := range s.entries {
		if e.decl != nil && e.decl.References(table) {
			return false
		}
	}
	return true
}

// Validate checks every declaration, in left table order, and returns one
// message per problem. The output target settings are required once the
// context declares relations.
func (s *RelationStore) Validate(target *Target) []string {
	var problems []string
	for _, name := range s.Tables() {
		decl := s.Get(name)
		if decl == nil {
			problems = append(problems, fmt.Sprintf("relation declaration %q is empty", name))
			continue
		}
		problems = append(problems, decl.Problems()...)
		if target == nil || strings.TrimSpace(target.Project) == "" {
			problems = append(problems, fmt.Sprintf("relation declaration %q: missing target project", name))
		}
		if target == nil || strings.TrimSpace(target.Package) == "" {
			problems = append(problems, fmt.Sprintf("relation declaration %q: missing target package", name))
		}
	}
	return problems
}

// inherit adds the parent declarations whose left table is not declared in
// s. Existing entries always win.
func (s *RelationStore) inherit(parent *RelationStore) {
	if parent == nil {
		return
	}
	for k, e := range parent.entries {
		if _, ok := s.entries[k]; ok {
			continue
		}
		s.Put(e.table, clone.Clone(e.decl).(*schema.RelationDeclaration))
	}
}
