package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidConfig indicates a configuration error.
	ErrInvalidConfig = errors.New("tablegen: invalid configuration")
	// ErrUnresolvedReference indicates a relation or column naming something
	// absent from the introspected metadata.
	ErrUnresolvedReference = errors.New("tablegen: unresolved reference")
	// ErrInvalidRelation indicates a relation with a missing or unknown type.
	ErrInvalidRelation = errors.New("tablegen: invalid relation")
	// ErrResolveFailed indicates that one or more tables failed to resolve.
	ErrResolveFailed = errors.New("tablegen: resolution failed")
)

// ConfigError represents an invalid engine option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("tablegen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("tablegen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// ConfigurationError holds every problem found while validating one
// generation context. Generation is refused until the list is empty.
type ConfigurationError struct {
	Context  string
	Problems []string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("tablegen: configuration error")
	if e.Context != "" {
		fmt.Fprintf(&b, " in context %q", e.Context)
	}
	switch len(e.Problems) {
	case 0:
	case 1:
		b.WriteString(": ")
		b.WriteString(e.Problems[0])
	default:
		fmt.Fprintf(&b, ": %d problems:", len(e.Problems))
		for _, p := range e.Problems {
			b.WriteString("\n\t")
			b.WriteString(p)
		}
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ReferenceError represents a relation or column reference that could not
// be resolved against the introspected metadata.
type ReferenceError struct {
	Table    string // Table holding (or missing) the reference.
	Column   string // Column name (if applicable)
	Relation string // Synthesized field name of the relation (if applicable)
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("tablegen: reference error")
	if e.Relation != "" {
		b.WriteString(" on relation ")
		b.WriteString(e.Relation)
	}
	if e.Table != "" {
		b.WriteString(" table ")
		b.WriteString(e.Table)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ReferenceError.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// NewReferenceError creates a new ReferenceError.
func NewReferenceError(table, column, relation, message string, cause error) *ReferenceError {
	return &ReferenceError{
		Table:    table,
		Column:   column,
		Relation: relation,
		Message:  message,
		Cause:    cause,
	}
}

// TableError is the failure of one table.
type TableError struct {
	Table string
	Err   error
}

// Error implements the error interface.
func (e *TableError) Error() string {
	return fmt.Sprintf("table %s: %v", e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *TableError) Unwrap() error {
	return e.Err
}

// ResolveErrors lists the failed tables of a run that kept going past the
// first failure. Errors are in catalog order.
type ResolveErrors struct {
	Errors []*TableError
}

// Error implements the error interface.
func (e *ResolveErrors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tablegen: %d table(s) failed to resolve", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n\t")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the table errors.
func (e *ResolveErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Is reports whether the target matches the sentinel error for ResolveErrors.
func (e *ResolveErrors) Is(target error) bool {
	return target == ErrResolveFailed
}

// Tables returns the names of the failed tables.
func (e *ResolveErrors) Tables() []string {
	names := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		names[i] = err.Table
	}
	return names
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsConfigurationError reports whether the error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var confErr *ConfigurationError
	return errors.As(err, &confErr)
}

// IsReferenceError reports whether the error is a ReferenceError.
func IsReferenceError(err error) bool {
	var refErr *ReferenceError
	return errors.As(err, &refErr)
}

// IsResolveErrors reports whether the error is a ResolveErrors.
func IsResolveErrors(err error) bool {
	var resErr *ResolveErrors
	return errors.As(err, &resErr)
}
