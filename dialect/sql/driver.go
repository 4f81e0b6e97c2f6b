package sql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/tablegen/dialect"
)

// driverNames maps a dialect to the database/sql driver registered for it.
var driverNames = map[string]string{
	dialect.MySQL:    "mysql",
	dialect.Postgres: "postgres",
	dialect.SQLite:   "sqlite",
}

// Driver is a database handle bound to a dialect.
type Driver struct {
	db      *sql.DB
	dialect string
}

// Open normalizes the dialect name and opens a handle with the matching
// driver. No connection is made until the first use, see Connect.
func Open(name, source string) (*Driver, error) {
	d, err := dialect.Normalize(name)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverNames[d], source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", d, err)
	}
	return &Driver{db: db, dialect: d}, nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return &Driver{db: db, dialect: dialect}
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB { return d.db }

// Dialect returns the dialect of the driver.
func (d *Driver) Dialect() string { return d.dialect }

// Connect verifies the database is reachable.
func (d *Driver) Connect(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("dialect/sql: connect %s: %w", d.dialect, err)
	}
	return nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.db.Close() }
