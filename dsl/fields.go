package dsl

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	recordkit "github.com/hackcamp-dev/recordkit"
	"github.com/hackcamp-dev/recordkit/i18n"
	js "github.com/hackcamp-dev/recordkit/jsonschema"
)

// String returns a field adapter accepting string values.
func String() FieldAdapter {
	return FieldAdapter{
		parse: func(ctx context.Context, v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, typeIssue("string", v)
			}
			return s, nil
		},
		validateValue: func(ctx context.Context, v any) error {
			if _, ok := v.(string); !ok {
				return typeIssue("string", v)
			}
			return nil
		},
		export: func() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil },
	}
}

// Bool returns a field adapter accepting boolean values.
func Bool() FieldAdapter {
	return FieldAdapter{
		parse: func(ctx context.Context, v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, typeIssue("boolean", v)
			}
			return b, nil
		},
		validateValue: func(ctx context.Context, v any) error {
			if _, ok := v.(bool); !ok {
				return typeIssue("boolean", v)
			}
			return nil
		},
		export: func() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil },
	}
}

// Int returns a field adapter accepting integral values. JSON input arrives
// as json.Number (DecodeJSON) or as Go ints when constructed in-process;
// fractional numbers are rejected.
func Int() FieldAdapter {
	return FieldAdapter{
		parse: func(ctx context.Context, v any) (any, error) {
			i, ok := asInt(v)
			if !ok {
				return nil, typeIssue("integer", v)
			}
			return i, nil
		},
		validateValue: func(ctx context.Context, v any) error {
			if _, ok := asInt(v); !ok {
				return typeIssue("integer", v)
			}
			return nil
		},
		export: func() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil },
	}
}

// Float returns a field adapter accepting numeric values, decoded to float64.
func Float() FieldAdapter {
	return FieldAdapter{
		parse: func(ctx context.Context, v any) (any, error) {
			f, ok := asFloat(v)
			if !ok {
				return nil, typeIssue("number", v)
			}
			return f, nil
		},
		validateValue: func(ctx context.Context, v any) error {
			if _, ok := asFloat(v); !ok {
				return typeIssue("number", v)
			}
			return nil
		},
		export: func() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil },
	}
}

func typeIssue(want string, got any) recordkit.Issues {
	return recordkit.Issues{{
		Path:    "/",
		Code:    recordkit.CodeInvalidType,
		Message: i18n.T(recordkit.CodeInvalidType, nil),
		Hint:    "expected " + want,
		Params:  map[string]any{"expected": want, "got": typeName(got)},
	}}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, int, int8, int16, int32, int64, float32, float64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}

// asInt normalizes the numeric representations a record can be constructed
// from into a Go int. Fractional values do not qualify.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		if math.Trunc(t) != t {
			return 0, false
		}
		return int(t), true
	case json.Number:
		i64, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(i64), true
	default:
		return 0, false
	}
}

// asFloat normalizes numeric representations into float64.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
