package load

import "strings"

// Abstract type names assigned to introspected columns.
const (
	TypeString  = "string"
	TypeInt     = "int"
	TypeLong    = "long"
	TypeBool    = "bool"
	TypeFloat   = "float"
	TypeDecimal = "decimal"
	TypeTime    = "time"
	TypeBytes   = "bytes"
	TypeJSON    = "json"
	TypeUUID    = "uuid"
	TypeOther   = "other"
)

// typeRules map base type names, the leading word of a raw type without its
// length or precision, to abstract types.
var typeRules = []struct {
	abstract string
	names    []string
}{
	{TypeBool, []string{"boolean", "bool"}},
	{TypeLong, []string{"bigint", "int8", "bigserial", "serial8"}},
	{TypeInt, []string{"int", "integer", "tinyint", "smallint", "mediumint", "int2", "int4", "serial", "serial4", "smallserial", "serial2"}},
	{TypeDecimal, []string{"decimal", "numeric", "number", "money", "smallmoney", "dec"}},
	{TypeFloat, []string{"float", "float4", "float8", "double", "real"}},
	{TypeUUID, []string{"uuid", "uniqueidentifier"}},
	{TypeJSON, []string{"json", "jsonb"}},
	{TypeTime, []string{"timestamp", "timestamptz", "datetime", "datetime2", "smalldatetime", "datetimeoffset", "date", "time", "timetz", "year"}},
	{TypeBytes, []string{"blob", "tinyblob", "mediumblob", "longblob", "binary", "varbinary", "bytea", "image"}},
	{TypeString, []string{"char", "character", "varchar", "varchar2", "nchar", "nvarchar", "nvarchar2", "bpchar", "text", "tinytext", "mediumtext", "longtext", "ntext", "clob", "nclob", "enum", "set", "string", "citext"}},
}

var typeByName = func() map[string]string {
	m := make(map[string]string)
	for _, rule := range typeRules {
		for _, name := range rule.names {
			m[name] = rule.abstract
		}
	}
	return m
}()

// AbstractType maps a raw database type, e.g. "VARCHAR(255)", to one of the
// abstract type names. Matching is case-insensitive and looks only at the
// base name, so "int(11) unsigned" is an int while "point" and "interval"
// are TypeOther. MySQL's "tinyint(1)" is a bool.
func AbstractType(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(lower, "tinyint(1)") {
		return TypeBool
	}
	if t, ok := typeByName[BaseType(lower)]; ok {
		return t
	}
	return TypeOther
}

// BaseType returns the lower-cased leading word of a raw type, without its
// length, precision or modifiers: "DOUBLE PRECISION" gives "double" and
// "varchar(64)" gives "varchar".
func BaseType(raw string) string {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), "(")
	fields := strings.Fields(base)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
