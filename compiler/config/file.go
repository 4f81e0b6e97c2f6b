package config

import (
	"fmt"
	"strings"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/schema"
)

// File is the document layout of a configuration file.
type File struct {
	Contexts []ContextFile `yaml:"contexts" toml:"contexts"`
}

// ContextFile maps one generation context.
type ContextFile struct {
	ID         string          `yaml:"id" toml:"id"`
	Extends    string          `yaml:"extends,omitempty" toml:"extends,omitempty"`
	Connection *ConnectionFile `yaml:"connection,omitempty" toml:"connection,omitempty"`
	Target     *TargetFile     `yaml:"target,omitempty" toml:"target,omitempty"`
	Columns    []ColumnFile    `yaml:"columns,omitempty" toml:"columns,omitempty"`
	Tables     []TableFile     `yaml:"tables,omitempty" toml:"tables,omitempty"`
	Relations  []RelationFile  `yaml:"relations,omitempty" toml:"relations,omitempty"`
}

// ConnectionFile maps the database connection. ${VAR} references in DSN are
// expanded from the environment.
type ConnectionFile struct {
	Driver string `yaml:"driver" toml:"driver"`
	DSN    string `yaml:"dsn" toml:"dsn"`
	Schema string `yaml:"schema,omitempty" toml:"schema,omitempty"`
}

// TargetFile maps the output settings.
type TargetFile struct {
	Project string `yaml:"project" toml:"project"`
	Package string `yaml:"package" toml:"package"`
}

// ColumnFile maps a column override.
type ColumnFile struct {
	Column          string   `yaml:"column" toml:"column"`
	Property        string   `yaml:"property,omitempty" toml:"property,omitempty"`
	AbstractType    string   `yaml:"abstract_type,omitempty" toml:"abstract_type,omitempty"`
	StorageType     string   `yaml:"storage_type,omitempty" toml:"storage_type,omitempty"`
	TypeHandler     string   `yaml:"type_handler,omitempty" toml:"type_handler,omitempty"`
	Delimited       *bool    `yaml:"delimited,omitempty" toml:"delimited,omitempty"`
	AlwaysGenerated *bool    `yaml:"always_generated,omitempty" toml:"always_generated,omitempty"`
	GenericArgs     []string `yaml:"generic_args,omitempty" toml:"generic_args,omitempty"`
}

// TableFile maps a table entry. Absent feature flags are enabled.
type TableFile struct {
	Catalog           string            `yaml:"catalog,omitempty" toml:"catalog,omitempty"`
	Schema            string            `yaml:"schema,omitempty" toml:"schema,omitempty"`
	Name              string            `yaml:"name" toml:"name"`
	Features          FeaturesFile      `yaml:"features,omitempty" toml:"features,omitempty"`
	ParentTable       string            `yaml:"parent_table,omitempty" toml:"parent_table,omitempty"`
	LogicDeleteColumn string            `yaml:"logic_delete_column,omitempty" toml:"logic_delete_column,omitempty"`
	VersionColumn     string            `yaml:"version_column,omitempty" toml:"version_column,omitempty"`
	TenantColumn      string            `yaml:"tenant_column,omitempty" toml:"tenant_column,omitempty"`
	DisplayColumn     string            `yaml:"display_column,omitempty" toml:"display_column,omitempty"`
	Renaming          *RenamingFile     `yaml:"renaming,omitempty" toml:"renaming,omitempty"`
	Columns           []ColumnFile      `yaml:"columns,omitempty" toml:"columns,omitempty"`
	IgnoredColumns    []string          `yaml:"ignored_columns,omitempty" toml:"ignored_columns,omitempty"`
	GeneratedKey      *GeneratedKeyFile `yaml:"generated_key,omitempty" toml:"generated_key,omitempty"`
}

// FeaturesFile maps the statement feature flags.
type FeaturesFile struct {
	Insert          *bool `yaml:"insert,omitempty" toml:"insert,omitempty"`
	SelectByKey     *bool `yaml:"select_by_key,omitempty" toml:"select_by_key,omitempty"`
	SelectByExample *bool `yaml:"select_by_example,omitempty" toml:"select_by_example,omitempty"`
	UpdateByKey     *bool `yaml:"update_by_key,omitempty" toml:"update_by_key,omitempty"`
	UpdateByExample *bool `yaml:"update_by_example,omitempty" toml:"update_by_example,omitempty"`
	DeleteByKey     *bool `yaml:"delete_by_key,omitempty" toml:"delete_by_key,omitempty"`
	DeleteByExample *bool `yaml:"delete_by_example,omitempty" toml:"delete_by_example,omitempty"`
	CountByExample  *bool `yaml:"count_by_example,omitempty" toml:"count_by_example,omitempty"`
}

// RenamingFile maps a domain object renaming rule.
type RenamingFile struct {
	Search  string `yaml:"search" toml:"search"`
	Replace string `yaml:"replace,omitempty" toml:"replace,omitempty"`
}

// GeneratedKeyFile maps a generated key descriptor.
type GeneratedKeyFile struct {
	Column    string `yaml:"column" toml:"column"`
	Statement string `yaml:"statement,omitempty" toml:"statement,omitempty"`
	Identity  bool   `yaml:"identity,omitempty" toml:"identity,omitempty"`
	Type      string `yaml:"type,omitempty" toml:"type,omitempty"`
}

// RelationFile maps the relation declaration of one left table.
type RelationFile struct {
	LeftTable string         `yaml:"left_table" toml:"left_table"`
	Pairs     []PairFile     `yaml:"pairs,omitempty" toml:"pairs,omitempty"`
	Junctions []JunctionFile `yaml:"junctions,omitempty" toml:"junctions,omitempty"`
}

// PairFile maps a left column and its relation target.
type PairFile struct {
	LeftColumn    string `yaml:"left_column" toml:"left_column"`
	LeftKeyColumn string `yaml:"left_key_column,omitempty" toml:"left_key_column,omitempty"`
	RightTable    string `yaml:"right_table" toml:"right_table"`
	FieldName     string `yaml:"field_name" toml:"field_name"`
	JoinColumn    string `yaml:"join_column" toml:"join_column"`
	Type          string `yaml:"type" toml:"type"`
}

// JunctionFile maps a many-to-many relation.
type JunctionFile struct {
	MiddleTable        string         `yaml:"middle_table" toml:"middle_table"`
	RightTable         string         `yaml:"right_table" toml:"right_table"`
	Property           string         `yaml:"property" toml:"property"`
	JoinColumns        JoinColumnFile `yaml:"join_columns" toml:"join_columns"`
	InverseJoinColumns JoinColumnFile `yaml:"inverse_join_columns" toml:"inverse_join_columns"`
}

// JoinColumnFile maps a junction column pair.
type JoinColumnFile struct {
	Column           string `yaml:"column" toml:"column"`
	ReferencedColumn string `yaml:"referenced_column" toml:"referenced_column"`
}

// converter builds contexts from a File and collects every problem found.
type converter struct {
	getenv   func(string) string
	problems []string
}

func (c *converter) problemf(format string, a ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, a...))
}

func (c *converter) contexts(f *File) map[string]*gen.Context {
	contexts := make(map[string]*gen.Context, len(f.Contexts))
	for i := range f.Contexts {
		cf := &f.Contexts[i]
		id := strings.TrimSpace(cf.ID)
		if id == "" {
			c.problemf("context #%d: missing id", i+1)
			continue
		}
		if _, ok := contexts[id]; ok {
			c.problemf("duplicate context %q", id)
			continue
		}
		contexts[id] = c.context(id, cf)
	}
	return contexts
}

func (c *converter) context(id string, cf *ContextFile) *gen.Context {
	ctx := gen.NewContext(id)
	ctx.Extends = cf.Extends
	if cf.Connection != nil {
		ctx.Connection = &gen.Connection{
			Driver: cf.Connection.Driver,
			DSN:    expand(cf.Connection.DSN, c.getenv),
			Schema: cf.Connection.Schema,
		}
	}
	if cf.Target != nil {
		ctx.Target = &gen.Target{Project: cf.Target.Project, Package: cf.Target.Package}
	}
	for _, col := range cf.Columns {
		ctx.Columns = append(ctx.Columns, columnOverride(col))
	}
	for _, t := range cf.Tables {
		ctx.Tables = append(ctx.Tables, tablePattern(t))
	}
	for _, r := range cf.Relations {
		if ctx.Relations.Get(r.LeftTable) != nil {
			c.problemf("context %q: duplicate relation declaration %q", id, r.LeftTable)
			continue
		}
		ctx.Relations.Put(r.LeftTable, c.relation(id, r))
	}
	return ctx
}

func (c *converter) relation(id string, r RelationFile) *schema.RelationDeclaration {
	decl := &schema.RelationDeclaration{LeftTable: r.LeftTable}
	for _, p := range r.Pairs {
		var typ schema.RelType
		if p.Type != "" {
			parsed, err := schema.ParseRelType(p.Type)
			if err != nil {
				c.problemf("context %q: relation %q: %v", id, p.FieldName, err)
			}
			typ = parsed
		}
		decl.Pairs = append(decl.Pairs, schema.RelationPair{
			LeftColumn:    p.LeftColumn,
			LeftKeyColumn: p.LeftKeyColumn,
			Target: schema.RelationTarget{
				RightTable: p.RightTable,
				FieldName:  p.FieldName,
				JoinColumn: p.JoinColumn,
				Type:       typ,
			},
		})
	}
	for _, j := range r.Junctions {
		decl.Junctions = append(decl.Junctions, &schema.JunctionRelation{
			MiddleTable:        j.MiddleTable,
			RightTable:         j.RightTable,
			Property:           j.Property,
			JoinColumns:        schema.JoinColumnPair{Column: j.JoinColumns.Column, ReferencedColumn: j.JoinColumns.ReferencedColumn},
			InverseJoinColumns: schema.JoinColumnPair{Column: j.InverseJoinColumns.Column, ReferencedColumn: j.InverseJoinColumns.ReferencedColumn},
		})
	}
	return decl
}

func tablePattern(t TableFile) *schema.TablePattern {
	p := schema.NewTablePattern(t.Name)
	p.Catalog = t.Catalog
	p.Schema = t.Schema
	p.Features = t.Features.features()
	p.ParentTable = t.ParentTable
	p.LogicDeleteColumn = t.LogicDeleteColumn
	p.VersionColumn = t.VersionColumn
	p.TenantColumn = t.TenantColumn
	p.DisplayColumn = t.DisplayColumn
	p.IgnoredColumns = t.IgnoredColumns
	if t.Renaming != nil {
		p.DomainObjectRenamingRule = &schema.RenamingRule{Search: t.Renaming.Search, Replace: t.Renaming.Replace}
	}
	for _, col := range t.Columns {
		p.ColumnOverrides = append(p.ColumnOverrides, columnOverride(col))
	}
	if k := t.GeneratedKey; k != nil {
		p.GeneratedKey = &schema.GeneratedKey{Column: k.Column, Statement: k.Statement, Identity: k.Identity, Type: k.Type}
	}
	return p
}

func columnOverride(c ColumnFile) *schema.ColumnOverride {
	return &schema.ColumnOverride{
		Column:          c.Column,
		Property:        c.Property,
		AbstractType:    c.AbstractType,
		StorageType:     c.StorageType,
		TypeHandler:     c.TypeHandler,
		Delimited:       c.Delimited,
		AlwaysGenerated: c.AlwaysGenerated,
		GenericArgs:     c.GenericArgs,
	}
}

func (f FeaturesFile) features() schema.Features {
	enabled := func(b *bool) bool { return b == nil || *b }
	return schema.Features{
		Insert:          enabled(f.Insert),
		SelectByKey:     enabled(f.SelectByKey),
		SelectByExample: enabled(f.SelectByExample),
		UpdateByKey:     enabled(f.UpdateByKey),
		UpdateByExample: enabled(f.UpdateByExample),
		DeleteByKey:     enabled(f.DeleteByKey),
		DeleteByExample: enabled(f.DeleteByExample),
		CountByExample:  enabled(f.CountByExample),
	}
}
