package load

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Table is the introspected metadata of one physical table.
type Table struct {
	Catalog    string    `json:"catalog,omitempty" msgpack:"catalog,omitempty"`
	Schema     string    `json:"schema,omitempty" msgpack:"schema,omitempty"`
	Name       string    `json:"name" msgpack:"name"`
	Comment    string    `json:"comment,omitempty" msgpack:"comment,omitempty"`
	Columns    []*Column `json:"columns,omitempty" msgpack:"columns,omitempty"`
	PrimaryKey []string  `json:"primary_key,omitempty" msgpack:"primary_key,omitempty"`
}

// Column is the introspected metadata of one table column.
type Column struct {
	Name string `json:"name" msgpack:"name"`
	// Property is the generated field identifier. When empty it is derived
	// from Name.
	Property string `json:"property,omitempty" msgpack:"property,omitempty"`
	// Type is the raw database type, e.g. "varchar(255)".
	Type         string `json:"type,omitempty" msgpack:"type,omitempty"`
	AbstractType string `json:"abstract_type,omitempty" msgpack:"abstract_type,omitempty"`
	Nullable     bool   `json:"nullable,omitempty" msgpack:"nullable,omitempty"`
	Comment      string `json:"comment,omitempty" msgpack:"comment,omitempty"`
}

// Column returns the column with the given name, compared without regard
// to case, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// PrimaryKeyColumns returns the primary key columns in key order.
func (t *Table) PrimaryKeyColumns() []*Column {
	cols := make([]*Column, 0, len(t.PrimaryKey))
	for _, name := range t.PrimaryKey {
		if c := t.Column(name); c != nil {
			cols = append(cols, c)
		}
	}
	return cols
}

// RecordTypeName returns the default name of the record type generated for
// the table.
func (t *Table) RecordTypeName() string {
	return strcase.ToCamel(t.Name)
}

// PropertyName returns the generated field identifier of the column.
func (c *Column) PropertyName() string {
	if c.Property != "" {
		return c.Property
	}
	return strcase.ToLowerCamel(c.Name)
}

// normalize fills the derived attributes of the table columns.
func (t *Table) normalize() {
	for _, c := range t.Columns {
		if c.AbstractType == "" {
			c.AbstractType = AbstractType(c.Type)
		}
	}
}
