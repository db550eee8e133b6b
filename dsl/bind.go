package dsl

import (
	"context"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	recordkit "github.com/hackcamp-dev/recordkit"
	js "github.com/hackcamp-dev/recordkit/jsonschema"
)

// RecordSchema extends Schema[T] with serialization back to untyped mappings
// and to JSON, completing the round trip a bound record supports.
type RecordSchema[T any] interface {
	recordkit.Schema[T]
	// EncodeMap serializes the record into an untyped mapping. Computed fields
	// are derived on demand from the record's stored fields.
	EncodeMap(ctx context.Context, v T) (map[string]any, error)
	// EncodeJSON serializes the record into its textual JSON representation.
	EncodeJSON(ctx context.Context, v T) ([]byte, error)
}

// BindOption configures the typed schema produced by Bind.
type BindOption[T any] func(*typedRecordSchema[T]) error

// Computed registers a derived attribute: name must resolve to a struct field
// of T that is NOT declared on the builder. The value is computed from the
// already-populated record, never taken from input (a supplied key is
// discarded), and is included in EncodeMap/EncodeJSON output.
func Computed[T any](name string, fn func(T) any) BindOption[T] {
	return func(s *typedRecordSchema[T]) error {
		if fn == nil {
			return fmt.Errorf("dsl: computed field %q has nil function", name)
		}
		if _, declared := s.inner.fields[name]; declared {
			return fmt.Errorf("dsl: computed field %q collides with a declared field", name)
		}
		idx, ok := s.indexByKey[name]
		if !ok {
			return fmt.Errorf("dsl: computed field %q has no matching field on %s", name, s.rt)
		}
		s.computed = append(s.computed, computedField[T]{name: name, fn: fn, idx: idx})
		return nil
	}
}

type computedField[T any] struct {
	name string
	fn   func(T) any
	idx  int
}

// Bind builds the record schema and binds it to struct type T. Keys resolve
// through record/json struct tags, falling back to the field name.
func Bind[T any](b *recordBuilder, opts ...BindOption[T]) (RecordSchema[T], error) {
	inner, ok := b.Build().(*recordSchema)
	if !ok {
		return nil, fmt.Errorf("dsl: unexpected schema type for Bind")
	}
	var probe T
	rt := reflect.TypeOf(probe)
	if rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dsl: Bind[T] requires struct T, got %v", rt)
	}
	idxByKey := structKeyIndex(rt)
	fieldByKey := make(map[string]int, len(inner.fields))
	for k := range inner.fields {
		if i, ok := idxByKey[k]; ok {
			fieldByKey[k] = i
		}
	}
	s := &typedRecordSchema[T]{
		inner:      inner,
		rt:         rt,
		fieldByKey: fieldByKey,
		indexByKey: idxByKey,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](b *recordBuilder, opts ...BindOption[T]) RecordSchema[T] {
	s, err := Bind[T](b, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// typedRecordSchema adapts a recordSchema to a typed struct T.
type typedRecordSchema[T any] struct {
	inner      *recordSchema
	rt         reflect.Type
	fieldByKey map[string]int // declared DSL key -> struct field index
	indexByKey map[string]int // every struct key -> field index
	computed   []computedField[T]
}

// stripComputed drops computed keys from a mapping input. Computed keys can
// never be set directly; removing them before validation keeps strict
// unknown-key handling from rejecting a round-tripped mapping.
func (s *typedRecordSchema[T]) stripComputed(v any) any {
	m, ok := v.(map[string]any)
	if !ok || len(s.computed) == 0 {
		return v
	}
	cp := make(map[string]any, len(m))
	for k, mv := range m {
		cp[k] = mv
	}
	for _, c := range s.computed {
		delete(cp, c.name)
	}
	return cp
}

func (s *typedRecordSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	v = s.stripComputed(v)
	m, err := s.inner.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	rv := reflect.New(s.rt).Elem()
	for key, idx := range s.fieldByKey {
		val, ok := m[key]
		if !ok {
			continue
		}
		if !assignValue(rv.Field(idx), val) {
			return zero, recordkit.Issues{{
				Path:    "/" + key,
				Code:    recordkit.CodeInvalidType,
				Message: "field type mismatch",
				Hint:    "wire value does not fit " + s.rt.Field(idx).Type.String(),
			}}
		}
	}
	out := rv.Interface().(T)
	for _, c := range s.computed {
		if !assignValue(rv.Field(c.idx), c.fn(out)) {
			return zero, recordkit.Issues{{
				Path:    "/" + c.name,
				Code:    recordkit.CodeInvalidType,
				Message: "computed value does not fit field type",
			}}
		}
	}
	return rv.Interface().(T), nil
}

// Validate checks untyped input: an already-typed T goes through
// ValidateValue, a mapping through the inner record schema.
func (s *typedRecordSchema[T]) Validate(ctx context.Context, v any) error {
	if tv, ok := v.(T); ok {
		return s.ValidateValue(ctx, tv)
	}
	return s.inner.Validate(ctx, s.stripComputed(v))
}

func (s *typedRecordSchema[T]) ValidateValue(ctx context.Context, v T) error {
	return s.inner.ValidateValue(ctx, s.dehydrate(v))
}

// Export projects the declared fields; computed fields are an output-only
// concern and do not appear in the schema.
func (s *typedRecordSchema[T]) Export() (*js.Schema, error) { return s.inner.Export() }

func (s *typedRecordSchema[T]) EncodeMap(ctx context.Context, v T) (map[string]any, error) {
	m := s.dehydrate(v)
	if err := s.inner.ValidateValue(ctx, m); err != nil {
		return nil, err
	}
	for _, c := range s.computed {
		m[c.name] = c.fn(v)
	}
	return m, nil
}

func (s *typedRecordSchema[T]) EncodeJSON(ctx context.Context, v T) ([]byte, error) {
	m, err := s.EncodeMap(ctx, v)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, recordkit.Issues{{Path: "/", Code: recordkit.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return data, nil
}

func (s *typedRecordSchema[T]) dehydrate(v T) map[string]any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	m := make(map[string]any, len(s.fieldByKey))
	for key, idx := range s.fieldByKey {
		m[key] = encodeValue(rv.Field(idx))
	}
	return m
}
