package dsl

import (
	"context"

	recordkit "github.com/hackcamp-dev/recordkit"
	"github.com/hackcamp-dev/recordkit/i18n"
	js "github.com/hackcamp-dev/recordkit/jsonschema"
)

// FieldAdapter is the any-typed wrapper every field of a record is declared
// with. Constraints chain by wrapping the parse and validate hooks; the zero
// hooks are treated as pass-through.
type FieldAdapter struct {
	parse         func(context.Context, any) (any, error)
	validateValue func(context.Context, any) error
	applyDefault  func(context.Context) (any, error)
	export        func() (*js.Schema, error)
}

// SchemaOf embeds an arbitrary Schema[T] as a field adapter. Child issues keep
// their own relative paths; the owning record rebases them under the field.
func SchemaOf[T any](s recordkit.Schema[T]) FieldAdapter {
	return FieldAdapter{
		parse: func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		validateValue: func(ctx context.Context, v any) error {
			tv, ok := v.(T)
			if !ok {
				return recordkit.Issues{{Path: "/", Code: recordkit.CodeInvalidType, Message: "invalid field type"}}
			}
			return s.ValidateValue(ctx, tv)
		},
		export: s.Export,
	}
}

// Check attaches a named custom check to the adapter. The function receives
// the parsed candidate value and may reject it with a descriptive error; the
// rejection is surfaced as a "custom" issue carrying the check name.
func (ad FieldAdapter) Check(name string, fn func(v any) error) FieldAdapter {
	if fn == nil {
		return ad
	}
	prevParse := ad.parse
	prevValidate := ad.validateValue
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		val := v
		if prevParse != nil {
			pv, err := prevParse(ctx, v)
			if err != nil {
				return nil, err
			}
			val = pv
		}
		if err := fn(val); err != nil {
			return nil, checkIssue(name, err)
		}
		return val, nil
	}
	out.validateValue = func(ctx context.Context, v any) error {
		if prevValidate != nil {
			if err := prevValidate(ctx, v); err != nil {
				return err
			}
		}
		if err := fn(v); err != nil {
			return checkIssue(name, err)
		}
		return nil
	}
	return out
}

func checkIssue(name string, err error) recordkit.Issues {
	if iss, ok := recordkit.AsIssues(err); ok {
		for i := range iss {
			if iss[i].Check == "" {
				iss[i].Check = name
			}
		}
		return iss
	}
	return recordkit.Issues{{
		Path:    "/",
		Code:    recordkit.CodeCustom,
		Message: err.Error(),
		Cause:   err,
		Check:   name,
		Params:  map[string]any{"check": name},
	}}
}

// MinLen constrains string length from below. Lengths are byte lengths as
// reported by len, not rune counts.
func (ad FieldAdapter) MinLen(n int) FieldAdapter {
	return ad.lengthRule(func(s string) recordkit.Issues {
		if len(s) < n {
			return recordkit.Issues{{
				Path:    "/",
				Code:    recordkit.CodeTooShort,
				Message: i18n.T(recordkit.CodeTooShort, map[string]any{"min": n}),
				Params:  map[string]any{"min": n, "got": len(s)},
			}}
		}
		return nil
	}, func(s *js.Schema) { s.MinLength = ptrInt(n) })
}

// MaxLen constrains string length from above.
func (ad FieldAdapter) MaxLen(n int) FieldAdapter {
	return ad.lengthRule(func(s string) recordkit.Issues {
		if len(s) > n {
			return recordkit.Issues{{
				Path:    "/",
				Code:    recordkit.CodeTooLong,
				Message: i18n.T(recordkit.CodeTooLong, map[string]any{"max": n}),
				Params:  map[string]any{"max": n, "got": len(s)},
			}}
		}
		return nil
	}, func(s *js.Schema) { s.MaxLength = ptrInt(n) })
}

// Min sets an inclusive numeric lower bound.
func (ad FieldAdapter) Min(bound float64) FieldAdapter {
	return ad.numericRule(func(f float64) recordkit.Issues {
		if f < bound {
			return recordkit.Issues{{
				Path:    "/",
				Code:    recordkit.CodeTooSmall,
				Message: i18n.T(recordkit.CodeTooSmall, map[string]any{"min": bound}),
				Params:  map[string]any{"min": bound, "got": f},
			}}
		}
		return nil
	}, func(s *js.Schema) { s.Minimum = ptrFloat(bound) })
}

// Gt sets an exclusive numeric lower bound (value must be strictly greater).
func (ad FieldAdapter) Gt(bound float64) FieldAdapter {
	return ad.numericRule(func(f float64) recordkit.Issues {
		if f <= bound {
			return recordkit.Issues{{
				Path:    "/",
				Code:    recordkit.CodeTooSmall,
				Message: i18n.T(recordkit.CodeTooSmall, map[string]any{"min": bound}),
				Params:  map[string]any{"gt": bound, "got": f},
			}}
		}
		return nil
	}, func(s *js.Schema) { s.ExclusiveMinimum = ptrFloat(bound) })
}

// Max sets an inclusive numeric upper bound.
func (ad FieldAdapter) Max(bound float64) FieldAdapter {
	return ad.numericRule(func(f float64) recordkit.Issues {
		if f > bound {
			return recordkit.Issues{{
				Path:    "/",
				Code:    recordkit.CodeTooBig,
				Message: i18n.T(recordkit.CodeTooBig, map[string]any{"max": bound}),
				Params:  map[string]any{"max": bound, "got": f},
			}}
		}
		return nil
	}, func(s *js.Schema) { s.Maximum = ptrFloat(bound) })
}

// lengthRule wires a string rule into parse/validate/export. Non-string values
// are left to the underlying type check.
func (ad FieldAdapter) lengthRule(rule func(string) recordkit.Issues, note func(*js.Schema)) FieldAdapter {
	check := func(v any) error {
		if s, ok := v.(string); ok {
			if iss := rule(s); len(iss) > 0 {
				return iss
			}
		}
		return nil
	}
	return ad.wrapRule(check, note)
}

// numericRule wires a numeric rule into parse/validate/export. Non-numeric
// values are left to the underlying type check.
func (ad FieldAdapter) numericRule(rule func(float64) recordkit.Issues, note func(*js.Schema)) FieldAdapter {
	check := func(v any) error {
		if f, ok := asFloat(v); ok {
			if iss := rule(f); len(iss) > 0 {
				return iss
			}
		}
		return nil
	}
	return ad.wrapRule(check, note)
}

func (ad FieldAdapter) wrapRule(check func(any) error, note func(*js.Schema)) FieldAdapter {
	prevParse := ad.parse
	prevValidate := ad.validateValue
	prevExport := ad.export
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		val := v
		if prevParse != nil {
			pv, err := prevParse(ctx, v)
			if err != nil {
				return nil, err
			}
			val = pv
		}
		if err := check(val); err != nil {
			return nil, err
		}
		return val, nil
	}
	out.validateValue = func(ctx context.Context, v any) error {
		if prevValidate != nil {
			if err := prevValidate(ctx, v); err != nil {
				return err
			}
		}
		return check(v)
	}
	out.export = func() (*js.Schema, error) {
		s := &js.Schema{}
		if prevExport != nil {
			ps, err := prevExport()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				s = ps
			}
		}
		note(s)
		return s, nil
	}
	return out
}

// ---- helpers ----

func ptrInt(v int) *int           { return &v }
func ptrFloat(v float64) *float64 { return &v }
