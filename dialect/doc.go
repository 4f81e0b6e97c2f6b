// Package dialect names the database dialects tablegen can introspect.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// Configuration files may use common aliases ("postgresql", "mariadb",
// "sqlite3"); Normalize maps them to the constants above.
//
// # Sub-packages
//
//   - dialect/sql: driver registration and connection handling
//   - dialect/sql/schema: catalog introspection backed by Atlas
package dialect
