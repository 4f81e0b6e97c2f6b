package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/schema"
)

func TestResolveExtends(t *testing.T) {
	newParent := func() *Context {
		p := NewContext("base")
		p.Connection = &Connection{Driver: "mysql", DSN: "root@/app"}
		p.Target = &Target{Project: "app", Package: "com.example"}
		p.Columns = []*schema.ColumnOverride{
			{Column: "deleted", Property: "isDeleted"},
			{Column: "created_at", AbstractType: "time"},
		}
		orders := schema.NewTablePattern("orders")
		orders.VersionColumn = "parent_rev"
		p.Tables = []*schema.TablePattern{orders, schema.NewTablePattern("sys_user")}
		p.Relations.Put("sys_user", userDecl())
		p.Relations.Put("orders", &schema.RelationDeclaration{LeftTable: "orders"})
		return p
	}

	t.Run("child inherits parent values", func(t *testing.T) {
		parent := newParent()
		child := NewContext("child")
		child.Extends = "base"

		require.NoError(t, ResolveExtends(map[string]*Context{"base": parent, "child": child}))
		assert.Equal(t, parent.Connection, child.Connection)
		assert.NotSame(t, parent.Connection, child.Connection)
		assert.Equal(t, parent.Target, child.Target)
		assert.Equal(t, parent.Columns, child.Columns)
		assert.Equal(t, parent.Tables, child.Tables)
		assert.Equal(t, []string{"orders", "sys_user"}, child.Relations.Tables())
		assert.NotSame(t, parent.Relations.Get("sys_user"), child.Relations.Get("sys_user"))
	})

	t.Run("child entries win", func(t *testing.T) {
		parent := newParent()
		child := NewContext("child")
		child.Extends = "base"
		child.Connection = &Connection{Driver: "postgres"}
		orders := schema.NewTablePattern("orders")
		orders.VersionColumn = "v"
		child.Tables = []*schema.TablePattern{orders}
		child.Columns = []*schema.ColumnOverride{{Column: "DELETED", Property: "removed"}}
		own := &schema.RelationDeclaration{LeftTable: "orders"}
		child.Relations.Put("orders", own)

		require.NoError(t, ResolveExtends(map[string]*Context{"base": parent, "child": child}))
		assert.Equal(t, "postgres", child.Connection.Driver)
		require.Len(t, child.Tables, 2)
		assert.Equal(t, "v", child.Tables[0].VersionColumn)
		assert.Equal(t, "sys_user", child.Tables[1].Name)
		require.Len(t, child.Columns, 2)
		assert.Equal(t, "removed", child.Columns[0].Property)
		assert.Equal(t, "created_at", child.Columns[1].Column)
		assert.Same(t, own, child.Relations.Get("orders"))
	})

	t.Run("entries differing in case are one entry", func(t *testing.T) {
		parent := newParent()
		child := NewContext("child")
		child.Extends = "base"
		orders := schema.NewTablePattern("ORDERS")
		orders.VersionColumn = "v"
		child.Tables = []*schema.TablePattern{orders}
		child.Columns = []*schema.ColumnOverride{{Column: "Created_At", Property: "createdOn"}}

		require.NoError(t, ResolveExtends(map[string]*Context{"base": parent, "child": child}))
		require.Len(t, child.Tables, 2)
		assert.Same(t, orders, child.Tables[0])
		assert.Equal(t, "sys_user", child.Tables[1].Name)
		require.Len(t, child.Columns, 2)
		assert.Equal(t, "createdOn", child.Columns[0].Property)
		assert.Equal(t, "deleted", child.Columns[1].Column)
	})

	t.Run("parents first", func(t *testing.T) {
		root := NewContext("a_root")
		root.Target = &Target{Project: "root", Package: "root"}
		mid := NewContext("z_mid")
		mid.Extends = "a_root"
		leaf := NewContext("m_leaf")
		leaf.Extends = "z_mid"

		require.NoError(t, ResolveExtends(map[string]*Context{"a_root": root, "z_mid": mid, "m_leaf": leaf}))
		require.NotNil(t, leaf.Target)
		assert.Equal(t, "root", leaf.Target.Project)
	})

	t.Run("idempotent", func(t *testing.T) {
		parent := newParent()
		child := NewContext("child")
		child.Extends = "base"
		contexts := map[string]*Context{"base": parent, "child": child}

		require.NoError(t, ResolveExtends(contexts))
		first := *child
		firstTables := len(child.Tables)
		require.NoError(t, ResolveExtends(contexts))
		assert.Len(t, child.Tables, firstTables)
		assert.Equal(t, first.Columns, child.Columns)
		assert.Equal(t, first.Relations.Tables(), child.Relations.Tables())
	})

	t.Run("unknown context", func(t *testing.T) {
		child := NewContext("child")
		child.Extends = "missing"
		err := ResolveExtends(map[string]*Context{"child": child})
		require.Error(t, err)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, "child", confErr.Context)
		assert.Contains(t, confErr.Problems[0], `unknown extends context "missing"`)
	})

	t.Run("cycle", func(t *testing.T) {
		a := NewContext("a")
		a.Extends = "b"
		b := NewContext("b")
		b.Extends = "a"
		err := ResolveExtends(map[string]*Context{"a": a, "b": b})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "a -> b -> a")
	})

	t.Run("nil relations", func(t *testing.T) {
		parent := newParent()
		child := &Context{ID: "child", Extends: "base"}
		require.NoError(t, ResolveExtends(map[string]*Context{"base": parent, "child": child}))
		assert.Equal(t, 2, child.Relations.Len())
	})
}
