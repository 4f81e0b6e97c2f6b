package dialect

import (
	"fmt"
	"strings"
)

// Dialect names.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Normalize returns the dialect constant for a configured driver name.
func Normalize(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MySQL, "mariadb", "tidb":
		return MySQL, nil
	case Postgres, "postgresql", "pg":
		return Postgres, nil
	case SQLite, "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("dialect: unsupported dialect %q", name)
	}
}
