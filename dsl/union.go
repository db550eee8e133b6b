package dsl

import (
	"context"

	recordkit "github.com/hackcamp-dev/recordkit"
	"github.com/hackcamp-dev/recordkit/i18n"
	js "github.com/hackcamp-dev/recordkit/jsonschema"
)

// OneOf builds an untagged union adapter: member adapters are tried in
// declaration order and the first one to accept the value wins. The accepted
// value is returned unchanged by the winning member.
func OneOf(members ...FieldAdapter) FieldAdapter {
	return FieldAdapter{
		parse: func(ctx context.Context, v any) (any, error) {
			for _, m := range members {
				if m.parse == nil {
					continue
				}
				out, err := m.parse(ctx, v)
				if err == nil {
					return out, nil
				}
			}
			return nil, noMatchIssue(v)
		},
		validateValue: func(ctx context.Context, v any) error {
			for _, m := range members {
				if m.validateValue == nil {
					continue
				}
				if m.validateValue(ctx, v) == nil {
					return nil
				}
			}
			return noMatchIssue(v)
		},
		export: func() (*js.Schema, error) {
			out := &js.Schema{OneOf: make([]*js.Schema, 0, len(members))}
			for _, m := range members {
				if m.export == nil {
					out.OneOf = append(out.OneOf, &js.Schema{})
					continue
				}
				ms, err := m.export()
				if err != nil {
					return nil, err
				}
				out.OneOf = append(out.OneOf, ms)
			}
			return out, nil
		},
	}
}

func noMatchIssue(v any) recordkit.Issues {
	return recordkit.Issues{{
		Path:    "/",
		Code:    recordkit.CodeNoUnionMatch,
		Message: i18n.T(recordkit.CodeNoUnionMatch, nil),
		Params:  map[string]any{"got": typeName(v)},
	}}
}
