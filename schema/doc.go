// Package schema holds the declarative configuration model consumed by the
// generator: table entries (exact names or wildcard patterns), column
// overrides, and cross-table relation declarations.
//
// Types in this package are plain data. Matching, merging and resolution
// against introspected metadata live in the compiler/gen package:
//
//	users := schema.NewTablePattern("usr_%")
//	users.VersionColumn = "rev"
//
//	orders := &schema.RelationDeclaration{
//		LeftTable: "usr_account",
//		Pairs: []schema.RelationPair{
//			{
//				LeftColumn: "id",
//				Target: schema.RelationTarget{
//					RightTable: "orders",
//					FieldName:  "orders",
//					JoinColumn: "account_id",
//					Type:       schema.OneToMany,
//				},
//			},
//		},
//	}
package schema
