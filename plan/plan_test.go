package plan_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
	"github.com/justin-guan/jsonschema2kotlin/plan"
)

func TestBuild(t *testing.T) {
	s, err := js.Decode([]byte(`{
		"type": "object",
		"title": "ignored for naming",
		"required": ["order_id"],
		"properties": {
			"order_id": {"type": "integer"},
			"status": {"type": "string", "enum": ["in progress", "done", null]},
			"ratio": {"type": "number", "enum": [0.5, 1]},
			"shipping_address": {"type": "object", "properties": {"zip": {"type": "string"}}},
			"lines": {"type": "array", "items": {"type": "object", "properties": {"sku": {"type": "string"}}}},
			"flags": {"type": "array", "items": [{"type": "boolean", "enum": [true]}, {"type": "null"}]}
		}
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := plan.Build(map[string]*js.Schema{"purchase.order.json": s})

	str := plan.TypeRef{Kind: js.TypeString}
	want := []plan.Decl{
		{File: "purchase.order.json", Path: "/", Name: "Purchase", Kind: plan.KindObject, Fields: []plan.Field{
			{Key: "flags", Name: "flags", Type: plan.TypeRef{Kind: js.TypeArray, Items: []plan.TypeRef{
				{Kind: js.TypeBoolean, Name: "Purchase.FlagsItem1"},
				{Kind: js.TypeNull},
			}}},
			{Key: "lines", Name: "lines", Type: plan.TypeRef{Kind: js.TypeArray, Items: []plan.TypeRef{
				{Kind: js.TypeObject, Name: "Purchase.LinesItem"},
			}}},
			{Key: "order_id", Name: "orderId", Type: plan.TypeRef{Kind: js.TypeInteger}, Required: true},
			{Key: "ratio", Name: "ratio", Type: plan.TypeRef{Kind: js.TypeNumber, Name: "Purchase.Ratio"}},
			{Key: "shipping_address", Name: "shippingAddress", Type: plan.TypeRef{Kind: js.TypeObject, Name: "Purchase.ShippingAddress"}},
			{Key: "status", Name: "status", Type: plan.TypeRef{Kind: js.TypeString, Name: "Purchase.Status"}},
		}},
		{File: "purchase.order.json", Path: "/properties/flags/items/0", Name: "FlagsItem1", Parent: "Purchase", Kind: plan.KindEnum,
			ValueType: js.TypeBoolean, Constants: []plan.Constant{{Name: "TRUE", Value: true}}},
		{File: "purchase.order.json", Path: "/properties/lines/items/0", Name: "LinesItem", Parent: "Purchase", Kind: plan.KindObject,
			Fields: []plan.Field{{Key: "sku", Name: "sku", Type: str}}},
		{File: "purchase.order.json", Path: "/properties/ratio", Name: "Ratio", Parent: "Purchase", Kind: plan.KindEnum,
			ValueType: js.TypeNumber, Constants: []plan.Constant{{Name: "RATIO_0_5", Value: 0.5}, {Name: "RATIO_1", Value: 1.0}}},
		{File: "purchase.order.json", Path: "/properties/shipping_address", Name: "ShippingAddress", Parent: "Purchase", Kind: plan.KindObject,
			Fields: []plan.Field{{Key: "zip", Name: "zip", Type: str}}},
		{File: "purchase.order.json", Path: "/properties/status", Name: "Status", Parent: "Purchase", Kind: plan.KindEnum,
			ValueType: js.TypeString, Nullable: true, Constants: []plan.Constant{
				{Name: "IN_PROGRESS", Value: "in progress"},
				{Name: "DONE", Value: "done"},
			}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestRootName(t *testing.T) {
	cases := map[string]string{
		"person.json":         "Person",
		"dir/line_item.json":  "LineItem",
		"order.schema.yaml":   "Order",
		"kebab-case-name.yml": "KebabCaseName",
	}
	for in, want := range cases {
		if got := plan.RootName(in); got != want {
			t.Fatalf("%s: got %q, want %q", in, got, want)
		}
	}
}

func TestTypeRef_String(t *testing.T) {
	ref := plan.TypeRef{Kind: js.TypeArray, Items: []plan.TypeRef{{Kind: js.TypeString}, {Kind: js.TypeObject, Name: "A.B"}}}
	if got := ref.String(); got != "array<string|A.B>" {
		t.Fatalf("got %q", got)
	}
}
