// Package config reads generation contexts from YAML or TOML files.
//
// A file holds a list of contexts. Each context names its database
// connection, its output target, the table entries to generate, global
// column overrides and relation declarations:
//
//	contexts:
//	  - id: main
//	    connection: {driver: mysql, dsn: "${DB_DSN}", schema: app}
//	    target: {project: app, package: com.example.app}
//	    tables:
//	      - name: "sys_%"
//	        renaming: {search: "^sys_"}
//	    relations:
//	      - left_table: sys_user
//	        pairs:
//	          - {left_column: dept_id, right_table: sys_dept, field_name: dept, join_column: dept_id, type: many_to_one}
//
// Load resolves extends chains, so the returned contexts are ready for
// gen.NewGraph. Watcher reloads a file as it changes.
package config
