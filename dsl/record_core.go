package dsl

import (
	"context"
	"sort"

	recordkit "github.com/hackcamp-dev/recordkit"
	"github.com/hackcamp-dev/recordkit/i18n"
	js "github.com/hackcamp-dev/recordkit/jsonschema"
)

type namedRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

// recordSchema validates untyped mappings against the declared fields.
type recordSchema struct {
	fields     map[string]FieldAdapter
	required   map[string]struct{}
	lax        bool
	refines    []namedRefine
	sortedKeys []string
}

var _ recordkit.Schema[map[string]any] = (*recordSchema)(nil)

func (r *recordSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, recordkit.Issues{{
			Path:    "/",
			Code:    recordkit.CodeInvalidType,
			Message: i18n.T(recordkit.CodeInvalidType, nil),
			Hint:    "expected object",
		}}
	}
	out := make(map[string]any, len(src))
	var iss recordkit.Issues
	for _, k := range r.sortedKeys {
		ad := r.fields[k]
		if val, exists := src[k]; exists {
			parsed, err := ad.parseField(ctx, val)
			if err != nil {
				iss = recordkit.AppendIssues(iss, recordkit.RebaseIssues("/"+k, err)...)
				continue
			}
			out[k] = parsed
			continue
		}
		// missing: apply a default when declared, otherwise enforce required
		if ad.applyDefault != nil {
			dv, err := ad.applyDefault(ctx)
			if err != nil {
				iss = recordkit.AppendIssues(iss, recordkit.RebaseIssues("/"+k, err)...)
				continue
			}
			out[k] = dv
			continue
		}
		if _, req := r.required[k]; req {
			iss = recordkit.AppendIssues(iss, recordkit.Issue{
				Path:    "/" + k,
				Code:    recordkit.CodeRequired,
				Message: i18n.T(recordkit.CodeRequired, nil),
				Hint:    "required field missing",
			})
		}
	}
	iss = recordkit.AppendIssues(iss, r.collectUnknown(src, out)...)
	if len(iss) > 0 {
		return nil, iss
	}
	if err := recordkit.ApplyRefine[map[string]any](ctx, out, r); err != nil {
		return nil, err
	}
	return out, nil
}

// collectUnknown handles undeclared keys: strict rejects, lax retains in place.
func (r *recordSchema) collectUnknown(src, out map[string]any) recordkit.Issues {
	unknown := make([]string, 0, len(src))
	for k := range src {
		if _, known := r.fields[k]; !known {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	var iss recordkit.Issues
	for _, k := range unknown {
		if r.lax {
			out[k] = src[k]
			continue
		}
		iss = recordkit.AppendIssues(iss, recordkit.Issue{
			Path:    "/" + k,
			Code:    recordkit.CodeUnknownKey,
			Message: i18n.T(recordkit.CodeUnknownKey, nil),
		})
	}
	return iss
}

// Validate checks untyped input without building the output mapping.
func (r *recordSchema) Validate(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return recordkit.Issues{{
			Path:    "/",
			Code:    recordkit.CodeInvalidType,
			Message: i18n.T(recordkit.CodeInvalidType, nil),
			Hint:    "expected object",
		}}
	}
	if err := r.ValidateValue(ctx, m); err != nil {
		return err
	}
	if r.lax {
		return nil
	}
	var iss recordkit.Issues
	unknown := make([]string, 0, len(m))
	for k := range m {
		if _, known := r.fields[k]; !known {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		iss = recordkit.AppendIssues(iss, recordkit.Issue{
			Path:    "/" + k,
			Code:    recordkit.CodeUnknownKey,
			Message: i18n.T(recordkit.CodeUnknownKey, nil),
		})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (r *recordSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	for _, k := range r.sortedKeys {
		ad := r.fields[k]
		if val, ok := v[k]; ok {
			if ad.validateValue == nil {
				continue
			}
			if err := ad.validateValue(ctx, val); err != nil {
				return recordkit.RebaseIssues("/"+k, err)
			}
			continue
		}
		if _, req := r.required[k]; req {
			return recordkit.Issues{{
				Path:    "/" + k,
				Code:    recordkit.CodeRequired,
				Message: i18n.T(recordkit.CodeRequired, nil),
				Hint:    "required field missing",
			}}
		}
	}
	return nil
}

func (r *recordSchema) Export() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(r.fields))
	for k, ad := range r.fields {
		if ad.export != nil {
			ps, err := ad.export()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				props[k] = ps
				continue
			}
		}
		props[k] = &js.Schema{}
	}
	req := make([]string, 0, len(r.required))
	for k := range r.required {
		req = append(req, k)
	}
	sort.Strings(req)
	return &js.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             req,
		AdditionalProperties: r.lax,
	}, nil
}

// Refine implements recordkit.Refiner using builder-registered hooks.
func (r *recordSchema) Refine(ctx context.Context, v map[string]any) error {
	var iss recordkit.Issues
	for _, rf := range r.refines {
		if rf.fn == nil {
			continue
		}
		if err := rf.fn(ctx, v); err != nil {
			if child, ok := recordkit.AsIssues(err); ok {
				for i := range child {
					if child[i].Check == "" {
						child[i].Check = rf.name
					}
				}
				iss = recordkit.AppendIssues(iss, child...)
				continue
			}
			iss = recordkit.AppendIssues(iss, recordkit.Issue{
				Path:    "/",
				Code:    recordkit.CodeCustom,
				Message: err.Error(),
				Cause:   err,
				Check:   rf.name,
			})
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// parseField runs the adapter parse hook, treating a nil hook as identity.
func (ad FieldAdapter) parseField(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}
