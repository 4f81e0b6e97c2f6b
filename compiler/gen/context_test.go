package gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/schema"
)

func TestContextValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testContext().Validate())
	})

	t.Run("no relations needs no target", func(t *testing.T) {
		c := NewContext("bare")
		c.Tables = []*schema.TablePattern{schema.NewTablePattern("orders")}
		assert.NoError(t, c.Validate())
	})

	t.Run("collects every problem", func(t *testing.T) {
		c := testContext()
		c.Tables = append(c.Tables, nil, &schema.TablePattern{})
		c.Columns = append(c.Columns, &schema.ColumnOverride{Property: "x"})
		c.Target.Package = ""

		err := c.Validate()
		require.Error(t, err)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Equal(t, []string{
			"table #6 is empty",
			"invalid table: missing name",
			"global column override #2 has no column",
			`relation declaration "sys_user": missing target package`,
		}, confErr.Problems)
	})
}

func TestContextValidateExtends(t *testing.T) {
	t.Run("unknown parent never resolved", func(t *testing.T) {
		c := testContext()
		c.Extends = "ghost"
		assert.Equal(t, []string{`unresolved extends context "ghost"`}, c.Problems())

		g, err := NewGraph(context.Background(), c, testCatalog(t))
		assert.Nil(t, g)
		assert.True(t, IsConfigurationError(err))
	})

	t.Run("resolved parent", func(t *testing.T) {
		parent := NewContext("base")
		c := testContext()
		c.Extends = "base"
		require.NoError(t, ResolveExtends(map[string]*Context{"base": parent, "main": c}))
		assert.NoError(t, c.Validate())
	})

	t.Run("extends changed after resolution", func(t *testing.T) {
		parent := NewContext("base")
		c := testContext()
		c.Extends = "base"
		require.NoError(t, ResolveExtends(map[string]*Context{"base": parent, "main": c}))
		c.Extends = "other"
		assert.Error(t, c.Validate())
	})
}
