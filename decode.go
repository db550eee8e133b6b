package recordkit

import (
	"bytes"
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// Decode is the primary entry point for untyped input: it delegates to
// Schema.Parse and exists to mirror DecodeJSON/DecodeSlice at call sites.
func Decode[T any](ctx context.Context, s Schema[T], v any) (T, error) {
	var zero T
	if s == nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	return s.Parse(ctx, v)
}

// DecodeJSON parses raw JSON bytes into T. Numbers are decoded as json.Number
// so integer precision survives until a field adapter picks a Go type.
func DecodeJSON[T any](ctx context.Context, s Schema[T], data []byte) (T, error) {
	var zero T
	if s == nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return s.Parse(ctx, v)
}

// DecodeSlice parses a collection of untyped mappings into a sequence of
// records. Issues from element i are rebased under "/i". All elements are
// attempted; the combined Issues cover every failing element.
func DecodeSlice[T any](ctx context.Context, s Schema[T], items []map[string]any) ([]T, error) {
	if s == nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	out := make([]T, 0, len(items))
	var iss Issues
	for i, it := range items {
		v, err := s.Parse(ctx, it)
		if err != nil {
			iss = AppendIssues(iss, RebaseIssues(fmt.Sprintf("/%d", i), err)...)
			continue
		}
		out = append(out, v)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
