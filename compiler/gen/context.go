package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/tablegen/schema"
)

// Connection holds the database settings of a context.
type Connection struct {
	Driver string `json:"driver,omitempty"`
	DSN    string `json:"dsn,omitempty"`
	// Schema is the database schema to introspect.
	Schema string `json:"schema,omitempty"`
}

// Target holds the output settings of a context.
type Target struct {
	Project string `json:"project,omitempty"`
	Package string `json:"package,omitempty"`
}

// Context is the configuration of one generation run. It is built once,
// resolved with ResolveExtends, and read-only afterwards.
type Context struct {
	ID string
	// Extends names the context unset values are inherited from.
	Extends    string
	Connection *Connection
	Target     *Target
	// Tables holds the table entries in declaration order.
	Tables []*schema.TablePattern
	// Columns holds the global column overrides.
	Columns   []*schema.ColumnOverride
	Relations *RelationStore
	// Hooks run on every resolved table of the context.
	Hooks Hooks

	// extended is the parent id ResolveExtends merged into the context.
	extended string
}

// NewContext returns an empty context with the given id.
func NewContext(id string) *Context {
	return &Context{ID: id, Relations: NewRelationStore()}
}

// Problems validates the context and returns one message per problem.
func (c *Context) Problems() []string {
	var problems []string
	for i, t := range c.Tables {
		if t == nil {
			problems = append(problems, fmt.Sprintf("table #%d is empty", i+1))
			continue
		}
		if err := t.Validate(); err != nil {
			problems = append(problems, err.Error())
		}
	}
	for i, o := range c.Columns {
		if o == nil || strings.TrimSpace(o.Column) == "" {
			problems = append(problems, fmt.Sprintf("global column override #%d has no column", i+1))
		}
	}
	if c.Extends != "" && !strings.EqualFold(c.extended, c.Extends) {
		problems = append(problems, fmt.Sprintf("unresolved extends context %q", c.Extends))
	}
	return append(problems, c.Relations.Validate(c.Target)...)
}

// Validate returns a *ConfigurationError holding every problem of the
// context, or nil.
func (c *Context) Validate() error {
	if problems := c.Problems(); len(problems) > 0 {
		return &ConfigurationError{Context: c.ID, Problems: problems}
	}
	return nil
}
