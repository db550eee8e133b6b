package dsl_test

import (
	"context"
	"testing"

	recordkit "github.com/hackcamp-dev/recordkit"
	g "github.com/hackcamp-dev/recordkit/dsl"
)

func TestRecord_RequiredOptionalDefault(t *testing.T) {
	ctx := context.Background()
	item := g.Record().
		Field("name", g.String()).Required().
		Field("description", g.String()).Default("").
		Field("nickname", g.String()). // optional, no default
		UnknownStrict().
		Build()

	// success: description defaults, nickname absent
	v, err := item.Parse(ctx, map[string]any{"name": "Sticker"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v["description"] != "" {
		t.Fatalf("expected empty default description, got %#v", v)
	}
	if _, ok := v["nickname"]; ok {
		t.Fatalf("optional field without default should stay absent, got %#v", v)
	}

	// failure: missing required field
	_, err = item.Parse(ctx, map[string]any{"description": "x"})
	iss, _ := recordkit.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/name" || iss[0].Code != recordkit.CodeRequired {
		t.Fatalf("expected required at /name, got %v", err)
	}
}

func TestRecord_NonObjectInput(t *testing.T) {
	ctx := context.Background()
	s := g.Record().Field("a", g.String()).Build()
	_, err := s.Parse(ctx, []any{"not", "an", "object"})
	iss, _ := recordkit.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != recordkit.CodeInvalidType {
		t.Fatalf("expected invalid_type for non-object, got %v", err)
	}
}

func TestRecord_UnknownStrictVsLax(t *testing.T) {
	ctx := context.Background()
	strict := g.Record().Field("name", g.String()).Required().UnknownStrict().Build()
	if _, err := strict.Parse(ctx, map[string]any{"name": "a", "x": 1}); err == nil {
		t.Fatalf("expected unknown_key under strict")
	} else {
		iss, _ := recordkit.AsIssues(err)
		if iss[0].Path != "/x" || iss[0].Code != recordkit.CodeUnknownKey {
			t.Fatalf("expected unknown_key at /x, got %v", iss)
		}
	}

	lax := g.Record().Field("name", g.String()).Required().UnknownLax().Build()
	v, err := lax.Parse(ctx, map[string]any{"name": "a", "x": 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v["x"] != 1 {
		t.Fatalf("expected lax record to retain extras, got %#v", v)
	}
}

func TestRecord_CollectsAllIssues(t *testing.T) {
	ctx := context.Background()
	s := g.Record().
		Field("a", g.String()).Required().
		Field("b", g.Int()).Required().
		UnknownStrict().
		Build()
	_, err := s.Parse(ctx, map[string]any{"b": "wrong", "z": true})
	iss, _ := recordkit.AsIssues(err)
	if len(iss) != 3 {
		t.Fatalf("expected 3 issues (required, invalid_type, unknown_key), got %v", iss)
	}
}

func TestRecord_NestedIssuePathsRebase(t *testing.T) {
	ctx := context.Background()
	address := g.Record().
		Field("street", g.String()).Required().
		Field("zip", g.String().MinLen(5)).Required().
		Build()
	customer := g.Record().
		Field("name", g.String()).Required().
		Field("address", g.SchemaOf(address)).Required().
		Build()

	_, err := customer.Parse(ctx, map[string]any{
		"name":    "Grace",
		"address": map[string]any{"street": "1 Loop Rd", "zip": "123"},
	})
	iss, _ := recordkit.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/address/zip" || iss[0].Code != recordkit.CodeTooShort {
		t.Fatalf("expected too_short at /address/zip, got %v", err)
	}
}

func TestRecord_NestedSuccessKeepsSubmap(t *testing.T) {
	ctx := context.Background()
	address := g.Record().
		Field("city", g.String()).Required().
		Build()
	customer := g.Record().
		Field("address", g.SchemaOf(address)).Required().
		Build()
	v, err := customer.Parse(ctx, map[string]any{"address": map[string]any{"city": "Armonk"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	sub, ok := v["address"].(map[string]any)
	if !ok || sub["city"] != "Armonk" {
		t.Fatalf("expected nested map accessible, got %#v", v)
	}
}

func TestRecord_RefineRunsAfterFieldChecks(t *testing.T) {
	ctx := context.Background()
	s := g.Record().
		Field("password", g.String()).Required().
		Field("confirm", g.String()).Required().
		Refine("password_match", func(ctx context.Context, v map[string]any) error {
			if v["password"] != v["confirm"] {
				return recordkit.Issues{{Path: "/confirm", Code: recordkit.CodeCustom, Message: "password mismatch"}}
			}
			return nil
		}).
		Build()

	if _, err := s.Parse(ctx, map[string]any{"password": "x", "confirm": "y"}); err == nil {
		t.Fatalf("expected refine rejection for mismatch")
	} else {
		iss, _ := recordkit.AsIssues(err)
		if iss[0].Check != "password_match" {
			t.Fatalf("expected refine name recorded, got %+v", iss[0])
		}
	}
	if _, err := s.Parse(ctx, map[string]any{"password": "x", "confirm": "x"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestRecord_ValidateValue(t *testing.T) {
	ctx := context.Background()
	s := g.Record().
		Field("name", g.String().MinLen(2)).Required().
		Build()
	if err := s.ValidateValue(ctx, map[string]any{"name": "ok"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.ValidateValue(ctx, map[string]any{"name": "x"}); err == nil {
		t.Fatalf("expected too_short from ValidateValue")
	}
	if err := s.ValidateValue(ctx, map[string]any{}); err == nil {
		t.Fatalf("expected required from ValidateValue")
	}
}

func TestRecord_Validate(t *testing.T) {
	ctx := context.Background()
	s := g.Record().
		Field("name", g.String().MinLen(2)).Required().
		UnknownStrict().
		Build()
	if err := s.Validate(ctx, map[string]any{"name": "ok"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.Validate(ctx, map[string]any{"name": "x"}); err == nil {
		t.Fatalf("expected too_short from Validate")
	}
	if err := s.Validate(ctx, map[string]any{"name": "ok", "extra": 1}); err == nil {
		t.Fatalf("expected unknown_key from Validate under strict")
	} else {
		iss, _ := recordkit.AsIssues(err)
		if iss[0].Path != "/extra" || iss[0].Code != recordkit.CodeUnknownKey {
			t.Fatalf("expected unknown_key at /extra, got %v", iss)
		}
	}
	if err := s.Validate(ctx, 42); err == nil {
		t.Fatalf("expected invalid_type for non-object input")
	}

	lax := g.Record().Field("name", g.String()).Required().UnknownLax().Build()
	if err := lax.Validate(ctx, map[string]any{"name": "a", "extra": 1}); err != nil {
		t.Fatalf("lax Validate should tolerate extras, got %v", err)
	}
}

func TestRecord_ExportExclusiveBound(t *testing.T) {
	s := g.Record().
		Field("price", g.Float().Gt(0)).Required().
		Build()
	out, err := s.Export()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	price := out.Properties["price"]
	if price == nil || price.ExclusiveMinimum == nil || *price.ExclusiveMinimum != 0 {
		t.Fatalf("expected exclusiveMinimum exported, got %+v", price)
	}
	if price.Minimum != nil {
		t.Fatalf("exclusive bound must not emit minimum, got %+v", price)
	}
}

func TestRecord_Export(t *testing.T) {
	s := g.Record().
		Field("name", g.String().MinLen(2).MaxLen(50)).Required().
		Field("price", g.Float().Min(0.01)).Required().
		Field("active", g.Bool()).Default(true).
		UnknownStrict().
		Build()
	out, err := s.Export()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Type != "object" || len(out.Required) != 2 {
		t.Fatalf("unexpected export shape: %+v", out)
	}
	name := out.Properties["name"]
	if name == nil || name.Type != "string" || name.MinLength == nil || *name.MinLength != 2 {
		t.Fatalf("expected string bounds exported, got %+v", name)
	}
	price := out.Properties["price"]
	if price == nil || price.Minimum == nil || *price.Minimum != 0.01 {
		t.Fatalf("expected minimum exported, got %+v", price)
	}
	if out.Properties["active"].Default != true {
		t.Fatalf("expected default exported, got %+v", out.Properties["active"])
	}
	if out.AdditionalProperties != false {
		t.Fatalf("strict record should export additionalProperties=false")
	}
}
