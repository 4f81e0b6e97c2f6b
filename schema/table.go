package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/syssam/tablegen/schema/wildcard"
)

// TablePattern is a table configuration entry. Name is either an exact table
// name or a wildcard pattern (see package wildcard).
type TablePattern struct {
	Catalog string `json:"catalog,omitempty"`
	Schema  string `json:"schema,omitempty"`
	Name    string `json:"name"`

	// Statements generated for the table.
	Features Features `json:"features"`

	// ParentTable names the supertable whose record type this table extends.
	ParentTable       string `json:"parent_table,omitempty"`
	LogicDeleteColumn string `json:"logic_delete_column,omitempty"`
	VersionColumn     string `json:"version_column,omitempty"`
	TenantColumn      string `json:"tenant_column,omitempty"`
	// DisplayColumn is the human readable label column of the table, used
	// when the table is the target of a many-to-one relation.
	DisplayColumn string `json:"display_column,omitempty"`

	DomainObjectRenamingRule *RenamingRule     `json:"domain_object_renaming_rule,omitempty"`
	ColumnOverrides          []*ColumnOverride `json:"column_overrides,omitempty"`
	// IgnoredColumns holds column names or wildcard patterns, compared
	// without regard to case.
	IgnoredColumns []string      `json:"ignored_columns,omitempty"`
	GeneratedKey   *GeneratedKey `json:"generated_key,omitempty"`
}

// Features holds the statement feature flags of a table entry.
type Features struct {
	Insert          bool `json:"insert"`
	SelectByKey     bool `json:"select_by_key"`
	SelectByExample bool `json:"select_by_example"`
	UpdateByKey     bool `json:"update_by_key"`
	UpdateByExample bool `json:"update_by_example"`
	DeleteByKey     bool `json:"delete_by_key"`
	DeleteByExample bool `json:"delete_by_example"`
	CountByExample  bool `json:"count_by_example"`
}

// AllFeatures returns Features with every statement enabled, the default of
// a new table entry.
func AllFeatures() Features {
	return Features{
		Insert:          true,
		SelectByKey:     true,
		SelectByExample: true,
		UpdateByKey:     true,
		UpdateByExample: true,
		DeleteByKey:     true,
		DeleteByExample: true,
		CountByExample:  true,
	}
}

// RenamingRule rewrites a table name before the record type name is derived
// from it. Search is a regular expression.
type RenamingRule struct {
	Search  string `json:"search"`
	Replace string `json:"replace,omitempty"`
}

// Apply returns name with every match of the rule's expression replaced.
func (r *RenamingRule) Apply(name string) (string, error) {
	if r == nil || r.Search == "" {
		return name, nil
	}
	re, err := regexp.Compile(r.Search)
	if err != nil {
		return "", fmt.Errorf("renaming rule %q: %w", r.Search, err)
	}
	return re.ReplaceAllString(name, r.Replace), nil
}

// GeneratedKey describes how the value of a database generated key column
// is read back after insert.
type GeneratedKey struct {
	Column    string `json:"column"`
	Statement string `json:"statement,omitempty"`
	Identity  bool   `json:"identity,omitempty"`
	// Type is "pre" or "post", relative to the insert statement.
	Type string `json:"type,omitempty"`
}

// NewTablePattern returns an entry for name with all features enabled.
func NewTablePattern(name string) *TablePattern {
	return &TablePattern{Name: name, Features: AllFeatures()}
}

// Key identifies the entry by catalog, schema and name.
func (t *TablePattern) Key() string {
	return t.Catalog + "." + t.Schema + "." + t.Name
}

// Equal reports whether t and o identify the same entry. Keys compare
// without regard to case, like Matches.
func (t *TablePattern) Equal(o *TablePattern) bool {
	if t == nil || o == nil {
		return t == o
	}
	return strings.EqualFold(t.Key(), o.Key())
}

// IsWildcard reports whether the entry name is a pattern.
func (t *TablePattern) IsWildcard() bool {
	return wildcard.HasWildcard(t.Name)
}

// Matches reports whether the entry applies to the given physical table.
// Both exact names and wildcard patterns compare without regard to case.
func (t *TablePattern) Matches(table string) bool {
	if t.IsWildcard() {
		return wildcard.MatchFold(table, t.Name)
	}
	return strings.EqualFold(t.Name, table)
}

// ColumnOverride returns the table-local override for column, if any.
func (t *TablePattern) ColumnOverride(column string) *ColumnOverride {
	for _, o := range t.ColumnOverrides {
		if o.Matches(column) {
			return o
		}
	}
	return nil
}

// IsColumnIgnored reports whether column is excluded from generation.
func (t *TablePattern) IsColumnIgnored(column string) bool {
	for _, ignored := range t.IgnoredColumns {
		if wildcard.HasWildcard(ignored) {
			if wildcard.MatchFold(column, ignored) {
				return true
			}
		} else if strings.EqualFold(ignored, column) {
			return true
		}
	}
	return false
}

// Validate checks the entry for missing or malformed values.
func (t *TablePattern) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Entity: "table", Missing: []string{"name"}}
	}
	for i, o := range t.ColumnOverrides {
		if o == nil || strings.TrimSpace(o.Column) == "" {
			return &ValidationError{Entity: "table", Name: t.Name, Message: fmt.Sprintf("column override #%d has no column", i+1)}
		}
	}
	if r := t.DomainObjectRenamingRule; r != nil {
		if r.Search == "" {
			return &ValidationError{Entity: "table", Name: t.Name, Missing: []string{"domain object renaming search"}}
		}
		if _, err := regexp.Compile(r.Search); err != nil {
			return &ValidationError{Entity: "table", Name: t.Name, Message: err.Error()}
		}
	}
	if k := t.GeneratedKey; k != nil && strings.TrimSpace(k.Column) == "" {
		return &ValidationError{Entity: "table", Name: t.Name, Missing: []string{"generated key column"}}
	}
	return nil
}
