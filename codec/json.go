// Package codec provides bidirectional transformation between wire bytes and
// bound record types.
package codec

import (
	"context"

	recordkit "github.com/hackcamp-dev/recordkit"
	"github.com/hackcamp-dev/recordkit/dsl"
)

// JSONCodec decodes JSON bytes into T and encodes T back to JSON, revalidating
// in both directions through the bound schema.
type JSONCodec[T any] struct {
	schema dsl.RecordSchema[T]
}

// JSON wraps a bound record schema into a JSONCodec.
func JSON[T any](s dsl.RecordSchema[T]) JSONCodec[T] {
	return JSONCodec[T]{schema: s}
}

// Decode parses and validates raw JSON into a record.
func (c JSONCodec[T]) Decode(ctx context.Context, data []byte) (T, error) {
	return recordkit.DecodeJSON(ctx, c.schema, data)
}

// Encode validates the record and serializes it to JSON. Computed fields are
// recomputed during encoding.
func (c JSONCodec[T]) Encode(ctx context.Context, v T) ([]byte, error) {
	return c.schema.EncodeJSON(ctx, v)
}
