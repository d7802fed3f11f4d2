package gen

import "errors"

// Generation-time failures. Any of these aborts the whole run; no partial
// output is ever produced.
var (
	// ErrSchemaMissingTypeOrRef marks a schema node with neither a type
	// nor a $ref, which cannot be resolved to any declaration.
	ErrSchemaMissingTypeOrRef = errors.New("schema has neither type nor $ref")

	// ErrArrayMissingItems marks an array schema without an items schema.
	ErrArrayMissingItems = errors.New("array schema has no items")

	// ErrUnknownTopLevelSchemaType marks a named top-level schema whose
	// shape cannot form a declaration (a bare scalar, for example).
	ErrUnknownTopLevelSchemaType = errors.New("top-level schema has no declarable shape")
)
