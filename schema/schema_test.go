package schema_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tablegen/schema"
)

func TestNewTablePattern(t *testing.T) {
	t.Parallel()

	p := schema.NewTablePattern("usr_%")
	assert.Equal(t, schema.AllFeatures(), p.Features)
	assert.True(t, p.Features.Insert)
	assert.True(t, p.Features.CountByExample)
	assert.True(t, p.IsWildcard())
	assert.False(t, schema.NewTablePattern("usr_account").IsWildcard())
}

func TestTablePatternKey(t *testing.T) {
	t.Parallel()

	a := &schema.TablePattern{Catalog: "c", Schema: "s", Name: "t"}
	b := &schema.TablePattern{Catalog: "c", Schema: "s", Name: "t", VersionColumn: "v"}
	c := &schema.TablePattern{Schema: "s", Name: "t"}

	assert.Equal(t, "c.s.t", a.Key())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.True(t, a.Equal(&schema.TablePattern{Catalog: "C", Schema: "S", Name: "T"}))
}

func TestTablePatternMatches(t *testing.T) {
	t.Parallel()

	assert.True(t, schema.NewTablePattern("usr_%").Matches("usr_account"))
	assert.False(t, schema.NewTablePattern("usr_%").Matches("user"))
	assert.True(t, schema.NewTablePattern("Orders").Matches("orders"))
	assert.False(t, schema.NewTablePattern("orders").Matches("order"))
	assert.True(t, schema.NewTablePattern("usr_%").Matches("USR_ACCOUNT"))
	assert.True(t, schema.NewTablePattern("USR_?").Matches("usr_a"))
	assert.False(t, schema.NewTablePattern("USR_?").Matches("usr_ab"))
}

func TestTablePatternIgnoredColumns(t *testing.T) {
	t.Parallel()

	p := schema.NewTablePattern("users")
	p.IgnoredColumns = []string{"password_hash", "tmp_%"}

	assert.True(t, p.IsColumnIgnored("PASSWORD_HASH"))
	assert.True(t, p.IsColumnIgnored("tmp_token"))
	assert.False(t, p.IsColumnIgnored("email"))
}

func TestTablePatternValidate(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		err := (&schema.TablePattern{}).Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrIncomplete)
		assert.Contains(t, err.Error(), "missing name")
	})

	t.Run("override without column", func(t *testing.T) {
		p := schema.NewTablePattern("users")
		p.ColumnOverrides = []*schema.ColumnOverride{{Property: "x"}}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "column override #1")
	})

	t.Run("bad renaming rule", func(t *testing.T) {
		p := schema.NewTablePattern("users")
		p.DomainObjectRenamingRule = &schema.RenamingRule{Search: "("}
		require.Error(t, p.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		p := schema.NewTablePattern("users")
		p.DomainObjectRenamingRule = &schema.RenamingRule{Search: "^tbl_"}
		p.GeneratedKey = &schema.GeneratedKey{Column: "id", Identity: true}
		assert.NoError(t, p.Validate())
	})
}

func TestRenamingRuleApply(t *testing.T) {
	t.Parallel()

	r := &schema.RenamingRule{Search: "^sys_", Replace: ""}
	name, err := r.Apply("sys_user")
	require.NoError(t, err)
	assert.Equal(t, "user", name)

	var none *schema.RenamingRule
	name, err = none.Apply("sys_user")
	require.NoError(t, err)
	assert.Equal(t, "sys_user", name)
}

func TestColumnOverrideMatches(t *testing.T) {
	t.Parallel()

	plain := &schema.ColumnOverride{Column: "Created_At"}
	assert.True(t, plain.Matches("created_at"))
	assert.True(t, plain.Matches("CREATED_AT"))

	delimited := &schema.ColumnOverride{Column: "Created_At", Delimited: lo.ToPtr(true)}
	assert.True(t, delimited.Matches("Created_At"))
	assert.False(t, delimited.Matches("created_at"))

	assert.False(t, plain.IsDelimited())
	assert.False(t, plain.IsAlwaysGenerated())
}

func TestTablePatternColumnOverride(t *testing.T) {
	t.Parallel()

	p := schema.NewTablePattern("users")
	p.ColumnOverrides = []*schema.ColumnOverride{
		{Column: "email", Property: "mail"},
		{Column: "Name", Property: "fullName", Delimited: lo.ToPtr(true)},
	}

	require.NotNil(t, p.ColumnOverride("EMAIL"))
	assert.Equal(t, "mail", p.ColumnOverride("EMAIL").Property)
	assert.Nil(t, p.ColumnOverride("name"))
	assert.NotNil(t, p.ColumnOverride("Name"))
}

func TestParseRelType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    schema.RelType
		wantErr bool
	}{
		{"many_to_one", schema.ManyToOne, false},
		{"MANY_TO_ONE", schema.ManyToOne, false},
		{"o2m", schema.OneToMany, false},
		{"ONE_TO_MANY", schema.OneToMany, false},
		{"many_to_many", schema.ManyToMany, false},
		{"one_to_one", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := schema.ParseRelType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "ONE_TO_MANY", schema.OneToMany.String())
}

func TestRelationTargetValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		target := schema.RelationTarget{RightTable: "orders", FieldName: "orders", JoinColumn: "user_id", Type: schema.OneToMany}
		assert.NoError(t, target.Validate())
	})

	t.Run("all missing fields in one error", func(t *testing.T) {
		err := schema.RelationTarget{RightTable: "orders"}.Validate()
		require.Error(t, err)
		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"fieldName", "joinColumn", "type"}, verr.Missing)
	})

	t.Run("many to many is not a target type", func(t *testing.T) {
		target := schema.RelationTarget{RightTable: "roles", FieldName: "roles", JoinColumn: "id", Type: schema.ManyToMany}
		err := target.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type must be")
	})
}

func TestJunctionRelationValidate(t *testing.T) {
	t.Parallel()

	j := &schema.JunctionRelation{
		MiddleTable:        "user_role",
		RightTable:         "role",
		Property:           "roles",
		JoinColumns:        schema.JoinColumnPair{Column: "user_id", ReferencedColumn: "id"},
		InverseJoinColumns: schema.JoinColumnPair{Column: "role_id", ReferencedColumn: "id"},
	}
	assert.NoError(t, j.Validate())

	j.InverseJoinColumns = schema.JoinColumnPair{}
	err := j.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inverseJoinColumns.column")
	assert.Contains(t, err.Error(), "inverseJoinColumns.referencedColumn")
}

func TestRelationDeclarationProblems(t *testing.T) {
	t.Parallel()

	t.Run("two invalid targets give two messages", func(t *testing.T) {
		d := &schema.RelationDeclaration{
			LeftTable: "users",
			Pairs: []schema.RelationPair{
				{LeftColumn: "id", Target: schema.RelationTarget{RightTable: "orders"}},
				{LeftColumn: "dept_id", Target: schema.RelationTarget{FieldName: "dept"}},
			},
		}
		problems := d.Problems()
		require.Len(t, problems, 2)
		assert.Contains(t, problems[0], "pair #1")
		assert.Contains(t, problems[1], "pair #2")
	})

	t.Run("collects every kind of problem", func(t *testing.T) {
		d := &schema.RelationDeclaration{
			Pairs: []schema.RelationPair{
				{Target: schema.RelationTarget{RightTable: "a", FieldName: "a", JoinColumn: "id", Type: schema.ManyToOne}},
			},
			Junctions: []*schema.JunctionRelation{nil, {MiddleTable: "m"}},
		}
		problems := d.Problems()
		assert.Len(t, problems, 4)
		assert.Contains(t, problems[0], "missing leftTable")
		assert.Contains(t, problems[1], "missing leftColumn")
	})

	t.Run("valid", func(t *testing.T) {
		d := &schema.RelationDeclaration{
			LeftTable: "orders",
			Pairs: []schema.RelationPair{
				{LeftColumn: "user_id", Target: schema.RelationTarget{RightTable: "users", FieldName: "user", JoinColumn: "id", Type: schema.ManyToOne}},
			},
		}
		assert.Empty(t, d.Problems())
		assert.True(t, d.References("USERS"))
		assert.False(t, d.References("roles"))
	})
}

func TestRelationPairKeyColumn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id", schema.RelationPair{LeftColumn: "id"}.KeyColumn())
	assert.Equal(t, "uid", schema.RelationPair{LeftColumn: "id", LeftKeyColumn: "uid"}.KeyColumn())
}
