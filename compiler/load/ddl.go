package load

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

// ParseDDL builds a catalog from the CREATE TABLE statements of a MySQL
// dialect script. Other statements are skipped.
func ParseDDL(sql string) (*Catalog, error) {
	stmts, _, err := parser.New().Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("load: parse ddl: %w", err)
	}
	var tables []*Table
	for _, stmt := range stmts {
		if create, ok := stmt.(*ast.CreateTableStmt); ok {
			tables = append(tables, tableFromStmt(create))
		}
	}
	return NewCatalog(tables...)
}

func tableFromStmt(stmt *ast.CreateTableStmt) *Table {
	t := &Table{
		Schema: stmt.Table.Schema.O,
		Name:   stmt.Table.Name.O,
	}
	for _, opt := range stmt.Options {
		if opt.Tp == ast.TableOptionComment {
			t.Comment = opt.StrValue
		}
	}
	for _, def := range stmt.Cols {
		c := &Column{
			Name:     def.Name.Name.O,
			Type:     def.Tp.String(),
			Nullable: true,
		}
		for _, opt := range def.Options {
			switch opt.Tp {
			case ast.ColumnOptionNotNull:
				c.Nullable = false
			case ast.ColumnOptionNull:
				c.Nullable = true
			case ast.ColumnOptionPrimaryKey:
				c.Nullable = false
				t.PrimaryKey = appendUnique(t.PrimaryKey, c.Name)
			case ast.ColumnOptionComment:
				c.Comment = exprToString(opt.Expr)
			}
		}
		t.Columns = append(t.Columns, c)
	}
	for _, cons := range stmt.Constraints {
		if cons.Tp != ast.ConstraintPrimaryKey {
			continue
		}
		for _, key := range cons.Keys {
			if key.Column == nil {
				continue
			}
			name := key.Column.Name.O
			t.PrimaryKey = appendUnique(t.PrimaryKey, name)
			if c := t.Column(name); c != nil {
				c.Nullable = false
			}
		}
	}
	return t
}

func exprToString(expr ast.ExprNode) string {
	if expr == nil {
		return ""
	}
	var sb strings.Builder
	if err := expr.Restore(format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)); err != nil {
		return ""
	}
	s := strings.TrimSpace(sb.String())
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return names
		}
	}
	return append(names, name)
}
