// Package schema introspects database catalogs with Atlas and converts
// them to the tables consumed by the relation resolver.
package schema
