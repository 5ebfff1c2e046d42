// Package gqlschema builds fixture schemas from GraphQL operations.
//
// An operation yields a root with two required composites, generated in
// order:
//
//	variables  the operation's variables, input objects expanded
//	data       the selection set, fragments and aliases resolved
//
// Paths therefore start with "variables." or "data.", and a relation such
// as "variables.id" -> "data.user.id" echoes an argument in the response.
// Operations without variables have no variables node.
//
// Built-in scalars map to field types (ID generates an object-id shaped
// string). Enums become string leaves constrained to their values. Any
// other scalar is a custom scalar named after its GraphQL type, generated
// according to engine.WithScalarDefinition or dropped by
// engine.WithIgnoreCustomScalars.
package gqlschema
