package schema

import (
	"context"
	"fmt"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/tablegen/compiler/load"
	"github.com/syssam/tablegen/dialect"
	"github.com/syssam/tablegen/dialect/sql"
)

// Inspect reads the tables of schemaName through drv and returns them as a
// catalog. An empty schemaName inspects the connection's current schema.
func Inspect(ctx context.Context, drv *sql.Driver, schemaName string) (*load.Catalog, error) {
	inspector, err := NewInspector(drv)
	if err != nil {
		return nil, err
	}
	s, err := inspector.InspectSchema(ctx, schemaName, nil)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql/schema: inspect schema %q: %w", schemaName, err)
	}
	return FromSchema(s)
}

// NewInspector returns the Atlas driver for the dialect of drv.
func NewInspector(drv *sql.Driver) (migrate.Driver, error) {
	var (
		d   migrate.Driver
		err error
	)
	switch drv.Dialect() {
	case dialect.MySQL:
		d, err = mysql.Open(drv.DB())
	case dialect.Postgres:
		d, err = postgres.Open(drv.DB())
	case dialect.SQLite:
		d, err = sqlite.Open(drv.DB())
	default:
		return nil, fmt.Errorf("dialect/sql/schema: unsupported dialect %q", drv.Dialect())
	}
	if err != nil {
		return nil, fmt.Errorf("dialect/sql/schema: open %s inspector: %w", drv.Dialect(), err)
	}
	return d, nil
}

// FromSchema converts an inspected Atlas schema to a catalog, keeping the
// table and column order of s.
func FromSchema(s *schema.Schema) (*load.Catalog, error) {
	tables := make([]*load.Table, 0, len(s.Tables))
	for _, t := range s.Tables {
		tables = append(tables, fromTable(s.Name, t))
	}
	return load.NewCatalog(tables...)
}

func fromTable(schemaName string, t *schema.Table) *load.Table {
	table := &load.Table{
		Schema:  schemaName,
		Name:    t.Name,
		Comment: comment(t.Attrs),
		Columns: make([]*load.Column, 0, len(t.Columns)),
	}
	for _, c := range t.Columns {
		col := &load.Column{Name: c.Name, Comment: comment(c.Attrs)}
		if c.Type != nil {
			col.Type = typeName(c.Type)
			col.Nullable = c.Type.Null
		}
		table.Columns = append(table.Columns, col)
	}
	if t.PrimaryKey != nil {
		for _, p := range t.PrimaryKey.Parts {
			if p.C != nil {
				table.PrimaryKey = append(table.PrimaryKey, p.C.Name)
			}
		}
	}
	return table
}

// typeName returns the database spelling of a column type.
func typeName(ct *schema.ColumnType) string {
	if ct.Raw != "" {
		return ct.Raw
	}
	switch t := ct.Type.(type) {
	case *schema.StringType:
		return t.T
	case *schema.IntegerType:
		return t.T
	case *schema.BoolType:
		return t.T
	case *schema.DecimalType:
		return t.T
	case *schema.FloatType:
		return t.T
	case *schema.TimeType:
		return t.T
	case *schema.BinaryType:
		return t.T
	case *schema.JSONType:
		return t.T
	case *schema.UUIDType:
		return t.T
	case *schema.EnumType:
		return t.T
	case *schema.SpatialType:
		return t.T
	case *schema.UnsupportedType:
		return t.T
	default:
		return ""
	}
}

func comment(attrs []schema.Attr) string {
	for _, a := range attrs {
		if c, ok := a.(*schema.Comment); ok {
			return c.Text
		}
	}
	return ""
}
