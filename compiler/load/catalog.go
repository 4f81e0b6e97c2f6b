package load

import (
	"fmt"
	"strings"
)

// Lookup is the by-name accessor of introspected tables.
type Lookup interface {
	// ByName returns the named table or a *NotFoundError.
	ByName(name string) (*Table, error)
}

// Catalog is an in-memory, ordered set of introspected tables. Table names
// are unique without regard to case. A Catalog is read-only once built and
// safe for concurrent use.
type Catalog struct {
	tables []*Table
	index  map[string]*Table
}

var _ Lookup = (*Catalog)(nil)

// NewCatalog returns a catalog of the given tables in argument order.
func NewCatalog(tables ...*Table) (*Catalog, error) {
	c := &Catalog{
		tables: make([]*Table, 0, len(tables)),
		index:  make(map[string]*Table, len(tables)),
	}
	for i, t := range tables {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("load: table #%d has no name", i+1)
		}
		key := strings.ToLower(t.Name)
		if _, ok := c.index[key]; ok {
			return nil, fmt.Errorf("load: duplicate table %q", t.Name)
		}
		t.normalize()
		c.index[key] = t
		c.tables = append(c.tables, t)
	}
	return c, nil
}

// ByName implements Lookup. Names compare without regard to case.
func (c *Catalog) ByName(name string) (*Table, error) {
	if t, ok := c.index[strings.ToLower(name)]; ok {
		return t, nil
	}
	return nil, &NotFoundError{Table: name}
}

// Tables returns the tables in catalog order.
func (c *Catalog) Tables() []*Table {
	return c.tables
}

// Names returns the table names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.tables))
	for i, t := range c.tables {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tables.
func (c *Catalog) Len() int {
	return len(c.tables)
}
