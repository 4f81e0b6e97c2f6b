// Package gen resolves a generation context against introspected table
// metadata into the model consumed by code emitters.
//
// # Pipeline
//
// Resolution runs in this order:
//
//	Context (tables, column overrides, relation declarations)
//	        ↓
//	   ResolveExtends (inherit from the extended context)
//	        ↓
//	   Context.Validate (every problem at once)
//	        ↓
//	   MergeTablePatterns (wildcard defaults into exact entries)
//	        ↓
//	   per table: physical fields, ResolveColumnOverride, relations, hooks
//	        ↓
//	   Graph (one Type per generated table)
//
// # Key Types
//
//   - Context: Configuration of one generation run
//   - RelationStore: Relation declarations keyed by left table
//   - Graph: Resolved types in catalog order
//   - Type: A record type with its fields and relations
//   - Field: A physical (column backed) or derived (relation bound) field
//   - Relation: A resolved one-to-many, many-to-one or many-to-many relation
//
// # Wildcard Precedence
//
// When several wildcard entries match a table, the first one in declaration
// order wins, not the most specific one.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: Invalid engine option
//   - ConfigurationError: All problems of an invalid context
//   - ReferenceError: Unresolved table or column of a relation
//   - ResolveErrors: Every failed table of a keep-going build
//
// Example error handling:
//
//	g, err := gen.NewGraph(ctx, c, catalog, gen.WithKeepGoing(true))
//	var resErr *gen.ResolveErrors
//	if errors.As(err, &resErr) {
//	    for _, e := range resErr.Errors {
//	        log.Printf("skip %s: %v", e.Table, e.Err)
//	    }
//	}
//
// # Hooks
//
// Hooks run on every resolved table and may modify it or veto it:
//
//	skipAudit := gen.HookFunc(func(ctx context.Context, t *gen.Type) error {
//	    if strings.HasPrefix(t.Table.Name, "audit_") {
//	        return gen.Stopf("audit table %s", t.Table.Name)
//	    }
//	    return nil
//	})
package gen
