package recordkit

// Package recordkit provides:
//
// - Declarative record schemas with field constraints (Parse/ValidateValue)
// - A stable error model via Issues (JSON Pointer, code, message)
// - Decoding from untyped maps, map slices, and JSON bytes
// - JSON Schema export for documenting a record's shape
//
// Design policy:
// - Keep only public APIs in the root package; the builder lives under dsl/,
//   bidirectional JSON under codec/, and the onboarding CLI under cmd/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildSchema()
//	v, err := recordkit.Decode(ctx, s, input)
//	v, err := recordkit.DecodeJSON(ctx, s, data)
