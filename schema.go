package recordkit

import (
	"context"

	js "github.com/hackcamp-dev/recordkit/jsonschema"
)

// Schema validates and constructs values of type T from untyped input.
type Schema[T any] interface {
	// Parse transforms an unknown input into T, applying defaults and running
	// every declared constraint. It returns Issues when validation fails.
	Parse(ctx context.Context, v any) (T, error)

	// Validate checks untyped input against the schema without constructing T.
	Validate(ctx context.Context, v any) error

	// ValidateValue verifies a value already typed as T without conversion.
	ValidateValue(ctx context.Context, v T) error

	// Export projects the schema into a JSON Schema representation.
	Export() (*js.Schema, error)
}

// Refiner provides an optional hook at the end of parsing to perform
// cross-field validation. If it is not implemented, the phase is skipped.
type Refiner[T any] interface {
	Refine(ctx context.Context, v T) error
}

// ApplyRefine runs the Refine hook when s implements Refiner[T].
func ApplyRefine[T any](ctx context.Context, v T, s any) error {
	if r, ok := s.(Refiner[T]); ok {
		return r.Refine(ctx, v)
	}
	return nil
}

// SafeDecode parses v into T, returning (zero, false) on validation error.
func SafeDecode[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Conforms reports whether v parses cleanly against the schema s.
func Conforms[T any](ctx context.Context, s Schema[T], v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}
