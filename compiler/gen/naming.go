package gen

import (
	"github.com/iancoleman/strcase"

	"github.com/syssam/tablegen/compiler/load"
	"github.com/syssam/tablegen/schema"
)

// RecordName returns the record type name of a table: the renaming rule of
// its entry applied to the table name, in camel case.
func RecordName(table *load.Table, pattern *schema.TablePattern) (string, error) {
	name := table.Name
	if pattern != nil {
		renamed, err := pattern.DomainObjectRenamingRule.Apply(name)
		if err != nil {
			return "", err
		}
		name = renamed
	}
	return strcase.ToCamel(name), nil
}

// PropertyName returns the generated field identifier of a column.
func PropertyName(column *load.Column, o *schema.ColumnOverride) string {
	if o != nil && o.Property != "" {
		return o.Property
	}
	return column.PropertyName()
}

// abstractType returns the abstract type name of a column.
func abstractType(column *load.Column, o *schema.ColumnOverride) string {
	if o != nil && o.AbstractType != "" {
		return o.AbstractType
	}
	if column.AbstractType != "" {
		return column.AbstractType
	}
	return load.AbstractType(column.Type)
}
