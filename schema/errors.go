package schema

import (
	"errors"
	"strings"
)

// ErrIncomplete is matched by every ValidationError.
var ErrIncomplete = errors.New("schema: incomplete declaration")

// ValidationError describes one configuration entry that is missing required
// values or holds a malformed one.
type ValidationError struct {
	Entity  string   // "table", "relation target", "junction relation", ...
	Name    string   // Identifying name of the entry, if any.
	Missing []string // Required attributes that are empty.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid ")
	b.WriteString(e.Entity)
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(quote(e.Name))
	}
	if len(e.Missing) > 0 {
		b.WriteString(": missing ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether target is ErrIncomplete.
func (e *ValidationError) Is(target error) bool {
	return target == ErrIncomplete
}

func quote(s string) string {
	return `"` + s + `"`
}

// missing collects the names of the empty values, in argument order.
type missing []string

func (m *missing) check(name, value string) {
	if strings.TrimSpace(value) == "" {
		*m = append(*m, name)
	}
}
