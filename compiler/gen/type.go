package gen

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/syssam/tablegen/compiler/load"
	"github.com/syssam/tablegen/schema"
)

// The following types and their exported methods are the resolved model
// handed to code emitters, one Type per generated table.
type (
	// Type is one generated record type, its fields and relations.
	Type struct {
		// Name holds the record type name.
		Name string
		// Table is the introspected table the type is generated from.
		Table *load.Table
		// Pattern is the effective table configuration.
		Pattern *schema.TablePattern
		// Fields holds the physical fields in column order, followed by the
		// derived fields in relation order.
		Fields []*Field
		// Relations holds the resolved relations in declaration order.
		Relations []*Relation
	}

	// Field is a field of a generated record type.
	Field struct {
		// Name is the generated field identifier.
		Name string
		Kind FieldKind
		// Type is the abstract type of a physical field, or the declared
		// type of a derived one.
		Type TypeRef
		// Column and Override are set for physical fields only. Override is
		// nil when no column override applies.
		Column   *load.Column
		Override *schema.ColumnOverride
	}

	// TypeRef names the type of a field. Collection fields hold an ordered
	// list of Name.
	TypeRef struct {
		Name       string
		Collection bool
	}
)

// FieldKind tells physical fields from derived ones.
type FieldKind uint8

// Field kinds.
const (
	// Physical fields are backed by a table column.
	Physical FieldKind = iota
	// Derived fields are synthesized by relation resolution and are never
	// persisted directly.
	Derived
)

// String returns the name of the kind.
func (k FieldKind) String() string {
	switch k {
	case Physical:
		return "physical"
	case Derived:
		return "derived"
	default:
		return fmt.Sprintf("FieldKind(%d)", k)
	}
}

// String returns the Go-like spelling of the reference.
func (r TypeRef) String() string {
	if r.Collection {
		return "[]" + r.Name
	}
	return r.Name
}

// IsDerived reports whether the field is synthesized by a relation.
func (f *Field) IsDerived() bool { return f.Kind == Derived }

// IsPhysical reports whether the field is backed by a column.
func (f *Field) IsPhysical() bool { return f.Kind == Physical }

// ColumnName returns the backing column name, or "" for derived fields.
func (f *Field) ColumnName() string {
	if f.Column == nil {
		return ""
	}
	return f.Column.Name
}

// Nullable reports whether the field may hold no value. Derived fields are
// always nullable.
func (f *Field) Nullable() bool {
	if f.Column == nil {
		return true
	}
	return f.Column.Nullable
}

// StorageType returns the low-level type of a physical field.
func (f *Field) StorageType() string {
	if f.Override != nil && f.Override.StorageType != "" {
		return f.Override.StorageType
	}
	if f.Column != nil {
		return f.Column.Type
	}
	return ""
}

// TypeHandler returns the configured type handler reference, if any.
func (f *Field) TypeHandler() string {
	if f.Override == nil {
		return ""
	}
	return f.Override.TypeHandler
}

// SingularName returns the singular form of a collection field name, e.g.
// "order" for "orders". Other fields return their name.
func (f *Field) SingularName() string {
	if !f.Type.Collection {
		return f.Name
	}
	return inflect.Singularize(f.Name)
}

// Field returns the field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldByColumn returns the physical field backed by the named column,
// or nil when the column does not exist or is ignored.
func (t *Type) FieldByColumn(column string) *Field {
	c := t.Table.Column(column)
	if c == nil {
		return nil
	}
	for _, f := range t.Fields {
		if f.Column == c {
			return f
		}
	}
	return nil
}

// PhysicalFields returns the fields backed by columns.
func (t *Type) PhysicalFields() []*Field {
	return t.fieldsOf(Physical)
}

// DerivedFields returns the fields synthesized by relations.
func (t *Type) DerivedFields() []*Field {
	return t.fieldsOf(Derived)
}

func (t *Type) fieldsOf(k FieldKind) []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if f.Kind == k {
			fields = append(fields, f)
		}
	}
	return fields
}

// PrimaryKeys returns the fields of the primary key columns, in key order.
func (t *Type) PrimaryKeys() []*Field {
	var fields []*Field
	for _, c := range t.Table.PrimaryKeyColumns() {
		if f := t.FieldByColumn(c.Name); f != nil {
			fields = append(fields, f)
		}
	}
	return fields
}

// VersionField returns the optimistic lock field, or nil.
func (t *Type) VersionField() *Field {
	return t.FieldByColumn(t.Pattern.VersionColumn)
}

// LogicDeleteField returns the logical delete marker field, or nil.
func (t *Type) LogicDeleteField() *Field {
	return t.FieldByColumn(t.Pattern.LogicDeleteColumn)
}

// TenantField returns the tenant discriminator field, or nil.
func (t *Type) TenantField() *Field {
	return t.FieldByColumn(t.Pattern.TenantColumn)
}

// FeatureEnabled reports whether the named statement feature is enabled.
func (t *Type) FeatureEnabled(name string) (bool, error) {
	f, ok := FeatureByName(name)
	if !ok {
		return false, NewConfigError("Feature", name, "unknown feature")
	}
	return f.Enabled(t.Pattern), nil
}

// Features returns the names of the enabled statement features.
func (t *Type) Features() []string {
	var names []string
	for _, f := range AllFeatures {
		if f.Enabled(t.Pattern) {
			names = append(names, f.Name)
		}
	}
	return names
}

// RelationByField returns the relation bound to the named derived field,
// or nil.
func (t *Type) RelationByField(name string) *Relation {
	for _, r := range t.Relations {
		if r.Field.Name == name {
			return r
		}
	}
	return nil
}
