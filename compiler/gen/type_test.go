package gen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/compiler/load"
	"github.com/syssam/tablegen/schema"
)

func TestFieldKind(t *testing.T) {
	assert.Equal(t, "physical", Physical.String())
	assert.Equal(t, "derived", Derived.String())
	assert.Equal(t, "FieldKind(7)", FieldKind(7).String())
}

func TestField(t *testing.T) {
	col := &load.Column{Name: "created_at", Type: "datetime", Nullable: true}

	t.Run("physical", func(t *testing.T) {
		f := &Field{Name: "createdAt", Kind: Physical, Column: col}
		assert.True(t, f.IsPhysical())
		assert.Equal(t, "created_at", f.ColumnName())
		assert.True(t, f.Nullable())
		assert.Equal(t, "datetime", f.StorageType())
		assert.Empty(t, f.TypeHandler())
		assert.Equal(t, "createdAt", f.SingularName())

		f.Override = &schema.ColumnOverride{Column: "created_at", StorageType: "TIMESTAMP", TypeHandler: "InstantHandler"}
		assert.Equal(t, "TIMESTAMP", f.StorageType())
		assert.Equal(t, "InstantHandler", f.TypeHandler())
	})

	t.Run("derived", func(t *testing.T) {
		f := &Field{Name: "categories", Kind: Derived, Type: TypeRef{Name: "Category", Collection: true}}
		assert.True(t, f.IsDerived())
		assert.Empty(t, f.ColumnName())
		assert.True(t, f.Nullable())
		assert.Empty(t, f.StorageType())
		assert.Equal(t, "category", f.SingularName())
	})
}

func TestTypeFeatures(t *testing.T) {
	p := schema.NewTablePattern("orders")
	p.Features.DeleteByExample = false
	p.Features.UpdateByExample = false
	typ := &Type{Table: &load.Table{Name: "orders"}, Pattern: p}

	assert.Equal(t, []string{
		"insert",
		"select_by_key",
		"select_by_example",
		"update_by_key",
		"delete_by_key",
		"count_by_example",
	}, typ.Features())

	ok, err := typ.FeatureEnabled("insert")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = typ.FeatureEnabled("delete_by_example")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = typ.FeatureEnabled("upsert")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestFeatureByName(t *testing.T) {
	for _, f := range AllFeatures {
		got, ok := FeatureByName(f.Name)
		require.True(t, ok, f.Name)
		assert.Equal(t, f.Name, got.Name)
		assert.NotEmpty(t, got.Description)
	}
	_, ok := FeatureByName("missing")
	assert.False(t, ok)
	assert.False(t, FeatureInsert.Enabled(nil))
}

func TestRequireFeature(t *testing.T) {
	p := schema.NewTablePattern("orders")
	p.Features.Insert = false
	typ := &Type{Table: &load.Table{Name: "orders"}, Pattern: p}

	err := RequireFeature("insert").Apply(context.Background(), typ)
	assert.ErrorIs(t, err, Stop)
	assert.NoError(t, RequireFeature("select_by_key").Apply(context.Background(), typ))
	err = RequireFeature("upsert").Apply(context.Background(), typ)
	assert.True(t, IsConfigError(err))
}

func TestHooksApply(t *testing.T) {
	var calls []int
	hook := func(i int, err error) Hook {
		return HookFunc(func(context.Context, *Type) error {
			calls = append(calls, i)
			return err
		})
	}
	typ := &Type{Table: &load.Table{Name: "orders"}}

	t.Run("all continue", func(t *testing.T) {
		calls = nil
		require.NoError(t, Hooks{hook(1, nil), hook(2, nil)}.Apply(context.Background(), typ))
		assert.Equal(t, []int{1, 2}, calls)
	})

	t.Run("stop ends the chain", func(t *testing.T) {
		calls = nil
		err := Hooks{hook(1, Stopf("no %s", "orders")), hook(2, nil)}.Apply(context.Background(), typ)
		assert.ErrorIs(t, err, Stop)
		assert.Equal(t, "no orders: tablegen: stop generation", err.Error())
		assert.Equal(t, []int{1}, calls)
	})

	t.Run("error ends the chain", func(t *testing.T) {
		calls = nil
		boom := errors.New("boom")
		err := Hooks{hook(1, nil), hook(2, boom), hook(3, nil)}.Apply(context.Background(), typ)
		assert.Equal(t, boom, err)
		assert.Equal(t, []int{1, 2}, calls)
	})
}

func TestRecordName(t *testing.T) {
	tbl := &load.Table{Name: "t_sys_user"}

	name, err := RecordName(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, "TSysUser", name)

	p := schema.NewTablePattern("t_%")
	p.DomainObjectRenamingRule = &schema.RenamingRule{Search: "^t_sys_", Replace: "admin_"}
	name, err = RecordName(tbl, p)
	require.NoError(t, err)
	assert.Equal(t, "AdminUser", name)

	p.DomainObjectRenamingRule = &schema.RenamingRule{Search: "("}
	_, err = RecordName(tbl, p)
	require.Error(t, err)
}

func TestPropertyName(t *testing.T) {
	col := &load.Column{Name: "user_name"}
	assert.Equal(t, "userName", PropertyName(col, nil))
	assert.Equal(t, "userName", PropertyName(col, &schema.ColumnOverride{Column: "user_name", TypeHandler: "x"}))
	assert.Equal(t, "login", PropertyName(col, &schema.ColumnOverride{Column: "user_name", Property: "login"}))

	col.Property = "name"
	assert.Equal(t, "name", PropertyName(col, nil))
}
