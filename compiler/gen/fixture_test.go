package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/load"
	"github.com/syssam/tablegen/schema"
)

// testCatalog returns a small user/department/role/order schema.
func testCatalog(t *testing.T) *load.Catalog {
	t.Helper()
	c, err := load.NewCatalog(
		&load.Table{
			Name: "sys_user",
			Columns: []*load.Column{
				{Name: "id", Type: "bigint"},
				{Name: "user_name", Type: "varchar(64)"},
				{Name: "dept_id", Type: "int", Nullable: true},
				{Name: "password", Type: "varchar(128)"},
				{Name: "rev", Type: "int"},
				{Name: "deleted", Type: "tinyint(1)"},
			},
			PrimaryKey: []string{"id"},
		},
		&load.Table{
			Name: "sys_dept",
			Columns: []*load.Column{
				{Name: "dept_id", Type: "int"},
				{Name: "dept_name", Type: "varchar(64)"},
			},
			PrimaryKey: []string{"dept_id"},
		},
		&load.Table{
			Name: "sys_role",
			Columns: []*load.Column{
				{Name: "role_id", Type: "int"},
				{Name: "role_name", Type: "varchar(64)"},
			},
			PrimaryKey: []string{"role_id"},
		},
		&load.Table{
			Name: "user_role",
			Columns: []*load.Column{
				{Name: "user_id", Type: "bigint"},
				{Name: "role_id", Type: "int"},
			},
			PrimaryKey: []string{"user_id", "role_id"},
		},
		&load.Table{
			Name: "orders",
			Columns: []*load.Column{
				{Name: "order_id", Type: "bigint"},
				{Name: "user_id", Type: "bigint"},
				{Name: "amount", Type: "decimal(10,2)"},
			},
			PrimaryKey: []string{"order_id"},
		},
		&load.Table{
			Name: "audit_log",
			Columns: []*load.Column{
				{Name: "message", Type: "text"},
			},
		},
	)
	require.NoError(t, err)
	return c
}

// userDecl declares the relations of sys_user: its department, its orders
// and its roles through user_role.
func userDecl() *schema.RelationDeclaration {
	return &schema.RelationDeclaration{
		LeftTable: "sys_user",
		Pairs: []schema.RelationPair{
			{
				LeftColumn: "dept_id",
				Target:     schema.RelationTarget{RightTable: "sys_dept", FieldName: "dept", JoinColumn: "dept_id", Type: schema.ManyToOne},
			},
			{
				LeftColumn: "id",
				Target:     schema.RelationTarget{RightTable: "orders", FieldName: "orders", JoinColumn: "user_id", Type: schema.OneToMany},
			},
		},
		Junctions: []*schema.JunctionRelation{{
			MiddleTable:        "user_role",
			RightTable:         "sys_role",
			Property:           "roles",
			JoinColumns:        schema.JoinColumnPair{Column: "user_id", ReferencedColumn: "id"},
			InverseJoinColumns: schema.JoinColumnPair{Column: "role_id", ReferencedColumn: "role_id"},
		}},
	}
}

// testContext returns a context generating every sys_ table, orders and
// user_role, with the relations of userDecl.
func testContext() *Context {
	c := NewContext("main")
	c.Target = &Target{Project: "app", Package: "com.example.app"}
	sys := schema.NewTablePattern("sys_%")
	sys.DomainObjectRenamingRule = &schema.RenamingRule{Search: "^sys_"}
	sys.VersionColumn = "rev"
	user := schema.NewTablePattern("sys_user")
	user.IgnoredColumns = []string{"password"}
	user.LogicDeleteColumn = "deleted"
	dept := schema.NewTablePattern("sys_dept")
	dept.DisplayColumn = "dept_name"
	c.Tables = []*schema.TablePattern{
		user,
		sys,
		dept,
		schema.NewTablePattern("orders"),
		schema.NewTablePattern("user_role"),
	}
	c.Columns = []*schema.ColumnOverride{{Column: "user_name", Property: "login"}}
	c.Relations.Put("sys_user", userDecl())
	return c
}
