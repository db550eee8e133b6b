package codec_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	recordkit "github.com/hackcamp-dev/recordkit"
	"github.com/hackcamp-dev/recordkit/codec"
	g "github.com/hackcamp-dev/recordkit/dsl"
)

type product struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	InStock bool    `json:"in_stock"`
}

func productCodec() codec.JSONCodec[product] {
	s := g.MustBind[product](g.Record().
		Field("name", g.String().MinLen(1)).Required().
		Field("price", g.Float().Gt(0)).Required().
		Field("in_stock", g.Bool()).Default(true).
		UnknownStrict())
	return codec.JSON(s)
}

func TestJSONCodec_Decode(t *testing.T) {
	ctx := context.Background()
	p, err := productCodec().Decode(ctx, []byte(`{"name":"Sticker","price":0.5}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := product{Name: "Sticker", Price: 0.5, InStock: true}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONCodec_DecodeRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	_, err := productCodec().Decode(ctx, []byte(`{"name":"Sticker","price":0}`))
	iss, ok := recordkit.AsIssues(err)
	if !ok || iss[0].Path != "/price" || iss[0].Code != recordkit.CodeTooSmall {
		t.Fatalf("expected too_small at /price, got %v", err)
	}
}

func TestJSONCodec_AcceptsSubCentPrice(t *testing.T) {
	ctx := context.Background()
	p, err := productCodec().Decode(ctx, []byte(`{"name":"Grain","price":0.005}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Price != 0.005 {
		t.Fatalf("expected price kept, got %v", p.Price)
	}
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := productCodec()
	in := product{Name: "Badge", Price: 2.5, InStock: false}
	data, err := c.Encode(ctx, in)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	out, err := c.Decode(ctx, data)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestJSONCodec_EncodeRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	if _, err := productCodec().Encode(ctx, product{Name: "", Price: 1}); err == nil {
		t.Fatalf("expected encode to revalidate the record")
	}
}
