// Package load holds the introspected table metadata consumed by the
// resolution engine, and the offline sources it can be loaded from: MySQL
// DDL scripts and msgpack catalog snapshots.
package load
