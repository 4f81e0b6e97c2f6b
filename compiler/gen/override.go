package gen

import (
	"slices"

	"github.com/huandu/go-clone"

	"github.com/syssam/tablegen/schema"
)

// ResolveColumnOverride returns the effective override of column in the
// given table entry. When both a global and a table-local override match,
// the explicitly set values of the local one are applied onto a copy of the
// global one. A single matching override is returned as is. It returns nil
// when no override applies.
func ResolveColumnOverride(globals []*schema.ColumnOverride, table *schema.TablePattern, column string) *schema.ColumnOverride {
	var global, local *schema.ColumnOverride
	for _, o := range globals {
		if o != nil && o.Matches(column) {
			global = o
			break
		}
	}
	if table != nil {
		local = table.ColumnOverride(column)
	}
	switch {
	case global == nil:
		return local
	case local == nil:
		return global
	}
	o := clone.Clone(global).(*schema.ColumnOverride)
	if local.Property != "" {
		o.Property = local.Property
	}
	if local.AbstractType != "" {
		o.AbstractType = local.AbstractType
	}
	if local.StorageType != "" {
		o.StorageType = local.StorageType
	}
	if local.TypeHandler != "" {
		o.TypeHandler = local.TypeHandler
	}
	if local.Delimited != nil {
		v := *local.Delimited
		o.Delimited = &v
	}
	if local.AlwaysGenerated != nil {
		v := *local.AlwaysGenerated
		o.AlwaysGenerated = &v
	}
	if len(local.GenericArgs) > 0 {
		o.GenericArgs = slices.Clone(local.GenericArgs)
	}
	return o
}
