// Package dsl provides the builder surface for recordkit schemas: field
// adapters with chainable constraints, the Record() builder, untagged unions,
// and typed struct binding with computed fields.
package dsl
