package schema

import (
	"golang.org/x/text/cases"
)

// ColumnOverride customizes the generated field of one column. It is either
// global (applies to the named column of any table) or local to one table
// entry. Nil booleans and empty strings mean "not set".
type ColumnOverride struct {
	Column          string   `json:"column"`
	Property        string   `json:"property,omitempty"`
	AbstractType    string   `json:"abstract_type,omitempty"`
	StorageType     string   `json:"storage_type,omitempty"`
	TypeHandler     string   `json:"type_handler,omitempty"`
	Delimited       *bool    `json:"delimited,omitempty"`
	AlwaysGenerated *bool    `json:"always_generated,omitempty"`
	GenericArgs     []string `json:"generic_args,omitempty"`
}

// IsDelimited reports whether the column name is delimited (quoted) and thus
// compared with case.
func (o *ColumnOverride) IsDelimited() bool {
	return o.Delimited != nil && *o.Delimited
}

// IsAlwaysGenerated reports whether the column value is always produced by
// the database.
func (o *ColumnOverride) IsAlwaysGenerated() bool {
	return o.AlwaysGenerated != nil && *o.AlwaysGenerated
}

// Matches reports whether o applies to column.
func (o *ColumnOverride) Matches(column string) bool {
	if o.IsDelimited() {
		return o.Column == column
	}
	return fold(o.Column) == fold(column)
}

// fold returns the case folded form of s. Casers keep state, so a new one is
// created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
