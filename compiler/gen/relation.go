package gen

import (
	"fmt"
	"slices"

	"github.com/huandu/go-clone"

	"github.com/syssam/tablegen/compiler/load"
	"github.com/syssam/tablegen/schema"
)

type (
	// Relation is a resolved relation bound to a derived field of the left
	// table's record type.
	Relation struct {
		// Field is the derived field the relation is bound to.
		Field    *Field
		JoinType schema.RelType
		// SourceField is the left table field taking part in the join: the
		// local key of one-to-many and many-to-many relations, the foreign
		// key of many-to-one relations.
		SourceField  *Field
		SourceColumn string
		TargetTable  string
		// TargetType is the record type name of the target table.
		TargetType   string
		TargetColumn string
		// DisplayField is the label field of the target table. It is set for
		// many-to-one relations only, when the target has a label or a
		// primary key.
		DisplayField *DisplayField
		// Junction is set for many-to-many relations only.
		Junction *JunctionJoin
	}

	// DisplayField is a human readable label field of a relation target.
	DisplayField struct {
		Column   string
		Property string
	}

	// JunctionJoin carries the middle table of a many-to-many relation and
	// both of its column pairs.
	JunctionJoin struct {
		MiddleTable        string
		JoinColumns        schema.JoinColumnPair
		InverseJoinColumns schema.JoinColumnPair
	}
)

// IsCollection reports whether the relation holds many target records.
func (r *Relation) IsCollection() bool {
	return r.JoinType == schema.OneToMany || r.JoinType == schema.ManyToMany
}

// Resolver resolves the tables of one generation context against the
// introspected metadata. A Resolver is read-only and safe for concurrent
// use.
type Resolver struct {
	Lookup load.Lookup
	// Patterns holds the merged table entries (see MergeTablePatterns).
	Patterns []*schema.TablePattern
	// Columns holds the global column overrides.
	Columns []*schema.ColumnOverride
}

// Type returns the record type of table with its physical fields. Ignored
// columns have no field. The type holds its own copies of pattern and of
// the column overrides, so hooks may change them freely.
func (r *Resolver) Type(table *load.Table, pattern *schema.TablePattern) (*Type, error) {
	if pattern == nil {
		pattern = schema.NewTablePattern(table.Name)
	} else {
		pattern = clonePattern(pattern)
	}
	name, err := RecordName(table, pattern)
	if err != nil {
		return nil, NewReferenceError(table.Name, "", "", "record name", err)
	}
	t := &Type{Name: name, Table: table, Pattern: pattern}
	for _, c := range table.Columns {
		if pattern.IsColumnIgnored(c.Name) {
			continue
		}
		o := ResolveColumnOverride(r.Columns, pattern, c.Name)
		if o != nil && slices.Contains(r.Columns, o) {
			o = clone.Clone(o).(*schema.ColumnOverride)
		}
		f := &Field{
			Name:     PropertyName(c, o),
			Kind:     Physical,
			Type:     TypeRef{Name: abstractType(c, o)},
			Column:   c,
			Override: o,
		}
		if t.Field(f.Name) != nil {
			return nil, NewReferenceError(table.Name, c.Name, "", fmt.Sprintf("duplicate field %q", f.Name), nil)
		}
		t.Fields = append(t.Fields, f)
	}
	return t, nil
}

// Relations resolves the declared relations of the left type, pairs first
// and junctions second, each in declaration order. The derived fields are
// returned bound to the relations; left is not modified. Any unresolved
// table or column fails the whole declaration with a *ReferenceError.
func (r *Resolver) Relations(left *Type, decl *schema.RelationDeclaration) ([]*Relation, error) {
	var (
		rels  []*Relation
		names = make(map[string]struct{})
	)
	for _, f := range left.Fields {
		names[f.Name] = struct{}{}
	}
	add := func(rel *Relation) error {
		if _, ok := names[rel.Field.Name]; ok {
			return NewReferenceError(left.Table.Name, "", rel.Field.Name, "duplicate field", nil)
		}
		names[rel.Field.Name] = struct{}{}
		rels = append(rels, rel)
		return nil
	}
	for _, p := range decl.Pairs {
		rel, err := r.pair(left, p)
		if err != nil {
			return nil, err
		}
		if err := add(rel); err != nil {
			return nil, err
		}
	}
	for _, j := range decl.Junctions {
		if j == nil {
			continue
		}
		rel, err := r.junction(left, j)
		if err != nil {
			return nil, err
		}
		if err := add(rel); err != nil {
			return nil, err
		}
	}
	return rels, nil
}

func (r *Resolver) pair(left *Type, p schema.RelationPair) (*Relation, error) {
	target := p.Target
	switch target.Type {
	case schema.OneToMany, schema.ManyToOne:
	case "":
		return nil, NewReferenceError(left.Table.Name, p.LeftColumn, target.FieldName, "missing join type", ErrInvalidRelation)
	default:
		return nil, NewReferenceError(left.Table.Name, p.LeftColumn, target.FieldName, fmt.Sprintf("join type %s", target.Type), ErrInvalidRelation)
	}
	right, rightType, err := r.table(target.RightTable, target.FieldName)
	if err != nil {
		return nil, err
	}
	join := right.Column(target.JoinColumn)
	if join == nil {
		return nil, NewReferenceError(right.Name, target.JoinColumn, target.FieldName, "join column not found", nil)
	}
	rel := &Relation{
		JoinType:     target.Type,
		TargetTable:  right.Name,
		TargetType:   rightType,
		TargetColumn: join.Name,
	}
	if _, err := r.column(left.Table, p.LeftColumn, target.FieldName); err != nil {
		return nil, err
	}
	source, err := r.field(left, p.KeyColumn(), target.FieldName)
	if err != nil {
		return nil, err
	}
	rel.SourceField, rel.SourceColumn = source, source.Column.Name
	rel.Field = &Field{
		Name: target.FieldName,
		Kind: Derived,
		Type: TypeRef{Name: rightType, Collection: target.Type == schema.OneToMany},
	}
	if target.Type == schema.ManyToOne {
		if rel.DisplayField, err = r.displayField(right, target.FieldName); err != nil {
			return nil, err
		}
	}
	return rel, nil
}

func (r *Resolver) junction(left *Type, j *schema.JunctionRelation) (*Relation, error) {
	middle, err := r.lookup(j.MiddleTable, j.Property)
	if err != nil {
		return nil, err
	}
	right, rightType, err := r.table(j.RightTable, j.Property)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{j.JoinColumns.Column, j.InverseJoinColumns.Column} {
		if _, err := r.column(middle, name, j.Property); err != nil {
			return nil, err
		}
	}
	source, err := r.field(left, j.JoinColumns.ReferencedColumn, j.Property)
	if err != nil {
		return nil, err
	}
	target, err := r.column(right, j.InverseJoinColumns.ReferencedColumn, j.Property)
	if err != nil {
		return nil, err
	}
	return &Relation{
		Field: &Field{
			Name: j.Property,
			Kind: Derived,
			Type: TypeRef{Name: rightType, Collection: true},
		},
		JoinType:     schema.ManyToMany,
		SourceField:  source,
		SourceColumn: source.Column.Name,
		TargetTable:  right.Name,
		TargetType:   rightType,
		TargetColumn: target.Name,
		Junction: &JunctionJoin{
			MiddleTable:        middle.Name,
			JoinColumns:        j.JoinColumns,
			InverseJoinColumns: j.InverseJoinColumns,
		},
	}, nil
}

// lookup returns the named table or a *ReferenceError wrapping the
// lookup failure.
func (r *Resolver) lookup(name, relation string) (*load.Table, error) {
	t, err := r.Lookup.ByName(name)
	if err != nil {
		return nil, NewReferenceError(name, "", relation, "table not found", err)
	}
	return t, nil
}

// table returns the named table and its record type name.
func (r *Resolver) table(name, relation string) (*load.Table, string, error) {
	t, err := r.lookup(name, relation)
	if err != nil {
		return nil, "", err
	}
	typeName, err := RecordName(t, PatternFor(r.Patterns, t.Name))
	if err != nil {
		return nil, "", NewReferenceError(t.Name, "", relation, "record name", err)
	}
	return t, typeName, nil
}

func (r *Resolver) column(t *load.Table, name, relation string) (*load.Column, error) {
	c := t.Column(name)
	if c == nil {
		return nil, NewReferenceError(t.Name, name, relation, "column not found", nil)
	}
	return c, nil
}

// field returns the physical field of the left type backed by column.
func (r *Resolver) field(left *Type, column, relation string) (*Field, error) {
	if _, err := r.column(left.Table, column, relation); err != nil {
		return nil, err
	}
	f := left.FieldByColumn(column)
	if f == nil {
		return nil, NewReferenceError(left.Table.Name, column, relation, "column is ignored", nil)
	}
	return f, nil
}

// displayField returns the label field of a relation target: its configured
// display column, or else its first primary key column.
func (r *Resolver) displayField(right *load.Table, relation string) (*DisplayField, error) {
	pattern := PatternFor(r.Patterns, right.Name)
	var c *load.Column
	switch {
	case pattern != nil && pattern.DisplayColumn != "":
		col, err := r.column(right, pattern.DisplayColumn, relation)
		if err != nil {
			return nil, err
		}
		c = col
	default:
		if pks := right.PrimaryKeyColumns(); len(pks) > 0 {
			c = pks[0]
		}
	}
	if c == nil {
		return nil, nil
	}
	return &DisplayField{
		Column:   c.Name,
		Property: PropertyName(c, ResolveColumnOverride(r.Columns, pattern, c.Name)),
	}, nil
}

// ResolveRelations resolves the declared relations of left against lookup.
// patterns are the merged table entries used to name target record types,
// columns the global column overrides used to name display fields.
func ResolveRelations(left *Type, decl *schema.RelationDeclaration, lookup load.Lookup, patterns []*schema.TablePattern, columns []*schema.ColumnOverride) ([]*Relation, error) {
	r := &Resolver{Lookup: lookup, Patterns: patterns, Columns: columns}
	return r.Relations(left, decl)
}
