package dsl

import (
	"context"
	"sort"

	recordkit "github.com/hackcamp-dev/recordkit"
	js "github.com/hackcamp-dev/recordkit/jsonschema"
)

type recordBuilder struct {
	fields   map[string]FieldAdapter
	required map[string]struct{}
	lax      bool
	refines  []namedRefine
}

type fieldStep struct {
	b    *recordBuilder
	name string
}

// Record creates a new record builder with safe defaults (unknown keys are
// rejected until UnknownLax is called).
func Record() *recordBuilder {
	return &recordBuilder{
		fields:   map[string]FieldAdapter{},
		required: map[string]struct{}{},
	}
}

// Field registers a field with its adapter.
func (b *recordBuilder) Field(name string, ad FieldAdapter) *fieldStep {
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *recordBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (the default) and returns the builder.
func (f *fieldStep) Optional() *recordBuilder {
	delete(f.b.required, f.name)
	return f.b
}

// Default sets a default applied when the field is absent from the input.
// The default value runs through the field's own parse, so an invalid default
// surfaces at construction of the record, not silently later.
func (f *fieldStep) Default(v any) *recordBuilder {
	ad := f.b.fields[f.name]
	ad.applyDefault = func(ctx context.Context) (any, error) {
		if ad.parse == nil {
			return v, nil
		}
		return ad.parse(ctx, v)
	}
	prev := ad.export
	ad.export = func() (*js.Schema, error) {
		if prev == nil {
			return &js.Schema{Default: v}, nil
		}
		s, err := prev()
		if err != nil {
			return nil, err
		}
		if s == nil {
			s = &js.Schema{}
		}
		s.Default = v
		return s, nil
	}
	f.b.fields[f.name] = ad
	return f.b
}

// Chaining conveniences so a fieldStep can continue the builder fluently.
func (f *fieldStep) Field(name string, ad FieldAdapter) *fieldStep { return f.b.Field(name, ad) }
func (f *fieldStep) Require(names ...string) *recordBuilder        { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *recordBuilder                 { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownLax() *recordBuilder                    { return f.b.UnknownLax() }
func (f *fieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *recordBuilder {
	return f.b.Refine(name, fn)
}
func (f *fieldStep) Build() recordkit.Schema[map[string]any]     { return f.b.Build() }
func (f *fieldStep) MustBuild() recordkit.Schema[map[string]any] { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *recordBuilder) Require(names ...string) *recordBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict rejects keys not declared on the record.
func (b *recordBuilder) UnknownStrict() *recordBuilder {
	b.lax = false
	return b
}

// UnknownLax retains undeclared keys as-is instead of rejecting them
// (relaxed field population).
func (b *recordBuilder) UnknownLax() *recordBuilder {
	b.lax = true
	return b
}

// Refine adds a record-level refine hook executed after all field checks pass.
func (b *recordBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *recordBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, namedRefine{name: name, fn: fn})
	return b
}

// Build returns the record schema. Field keys are sorted once so parse order
// and error selection stay deterministic.
func (b *recordBuilder) Build() recordkit.Schema[map[string]any] {
	keys := make([]string, 0, len(b.fields))
	for k := range b.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &recordSchema{
		fields:     b.fields,
		required:   b.required,
		lax:        b.lax,
		refines:    b.refines,
		sortedKeys: keys,
	}
}

// MustBuild mirrors Build; it exists for call-site symmetry with MustBind.
func (b *recordBuilder) MustBuild() recordkit.Schema[map[string]any] { return b.Build() }
