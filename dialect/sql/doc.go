// Package sql opens database handles for the supported dialects.
//
// The MySQL (go-sql-driver/mysql), PostgreSQL (lib/pq) and SQLite
// (modernc.org/sqlite) drivers are registered by importing this package:
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://gen@localhost/app?sslmode=disable")
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//	if err := drv.Connect(ctx); err != nil {
//	    return err
//	}
package sql
