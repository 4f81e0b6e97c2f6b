package schema

import (
	"fmt"
	"strings"
)

// RelType is the kind of a declared relation.
type RelType string

// Relation kinds.
const (
	ManyToOne  RelType = "many_to_one"
	OneToMany  RelType = "one_to_many"
	ManyToMany RelType = "many_to_many"
)

// ParseRelType parses the configuration spelling of a relation type. Both
// the snake case and upper case forms are accepted, as are the short forms
// "m2o", "o2m" and "m2m".
func ParseRelType(s string) (RelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "many_to_one", "manytoone", "m2o":
		return ManyToOne, nil
	case "one_to_many", "onetomany", "o2m":
		return OneToMany, nil
	case "many_to_many", "manytomany", "m2m":
		return ManyToMany, nil
	default:
		return "", fmt.Errorf("unknown relation type %q", s)
	}
}

// String returns the upper case name of the relation type.
func (r RelType) String() string {
	return strings.ToUpper(string(r))
}

// RelationTarget is one endpoint of a declared relation.
type RelationTarget struct {
	RightTable string  `json:"right_table"`
	FieldName  string  `json:"field_name"`
	JoinColumn string  `json:"join_column"`
	Type       RelType `json:"type"`
}

// Validate reports every missing attribute of t in one error.
func (t RelationTarget) Validate() error {
	var m missing
	m.check("rightTable", t.RightTable)
	m.check("fieldName", t.FieldName)
	m.check("joinColumn", t.JoinColumn)
	m.check("type", string(t.Type))
	var msg string
	if t.Type != "" && t.Type != ManyToOne && t.Type != OneToMany {
		msg = fmt.Sprintf("type must be %s or %s, got %q", ManyToOne, OneToMany, string(t.Type))
	}
	if len(m) == 0 && msg == "" {
		return nil
	}
	return &ValidationError{Entity: "relation target", Name: t.FieldName, Missing: m, Message: msg}
}

// RelationPair binds a left-table column to a relation target.
type RelationPair struct {
	LeftColumn string `json:"left_column"`
	// LeftKeyColumn is the local key of a one-to-many relation. It defaults
	// to LeftColumn.
	LeftKeyColumn string         `json:"left_key_column,omitempty"`
	Target        RelationTarget `json:"target"`
}

// KeyColumn returns the local key column of the pair.
func (p RelationPair) KeyColumn() string {
	if p.LeftKeyColumn != "" {
		return p.LeftKeyColumn
	}
	return p.LeftColumn
}

// JoinColumnPair maps a junction table column to the column it references.
type JoinColumnPair struct {
	Column           string `json:"column"`
	ReferencedColumn string `json:"referenced_column"`
}

// JunctionRelation is a many-to-many relation realized through a middle
// table. JoinColumns links the middle table to the left table and
// InverseJoinColumns links it to the right table.
type JunctionRelation struct {
	MiddleTable        string         `json:"middle_table"`
	RightTable         string         `json:"right_table"`
	Property           string         `json:"property"`
	JoinColumns        JoinColumnPair `json:"join_columns"`
	InverseJoinColumns JoinColumnPair `json:"inverse_join_columns"`
}

// Validate reports every missing attribute of j in one error.
func (j *JunctionRelation) Validate() error {
	var m missing
	m.check("middleTable", j.MiddleTable)
	m.check("rightTable", j.RightTable)
	m.check("property", j.Property)
	m.check("joinColumns.column", j.JoinColumns.Column)
	m.check("joinColumns.referencedColumn", j.JoinColumns.ReferencedColumn)
	m.check("inverseJoinColumns.column", j.InverseJoinColumns.Column)
	m.check("inverseJoinColumns.referencedColumn", j.InverseJoinColumns.ReferencedColumn)
	if len(m) == 0 {
		return nil
	}
	return &ValidationError{Entity: "junction relation", Name: j.Property, Missing: m}
}

// RelationDeclaration holds the outgoing relations of one left table.
type RelationDeclaration struct {
	LeftTable string              `json:"left_table"`
	Pairs     []RelationPair      `json:"pairs,omitempty"`
	Junctions []*JunctionRelation `json:"junctions,omitempty"`
}

// Problems validates the declaration and returns one message per problem.
// It never stops at the first one.
func (d *RelationDeclaration) Problems() []string {
	var problems []string
	prefix := "relation declaration"
	if strings.TrimSpace(d.LeftTable) == "" {
		problems = append(problems, prefix+": missing leftTable")
	} else {
		prefix += " " + quote(d.LeftTable)
	}
	for i, p := range d.Pairs {
		if strings.TrimSpace(p.LeftColumn) == "" {
			problems = append(problems, fmt.Sprintf("%s: pair #%d: missing leftColumn", prefix, i+1))
		}
		if err := p.Target.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: pair #%d: %v", prefix, i+1, err))
		}
	}
	for i, j := range d.Junctions {
		if j == nil {
			problems = append(problems, fmt.Sprintf("%s: junction #%d is empty", prefix, i+1))
			continue
		}
		if err := j.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: junction #%d: %v", prefix, i+1, err))
		}
	}
	return problems
}

// References reports whether the declaration names table as a relation
// target (not as a junction middle table).
func (d *RelationDeclaration) References(table string) bool {
	for _, p := range d.Pairs {
		if strings.EqualFold(p.Target.RightTable, table) {
			return true
		}
	}
	for _, j := range d.Junctions {
		if j != nil && strings.EqualFold(j.RightTable, table) {
			return true
		}
	}
	return false
}
