package jsonschema_test

import (
	"testing"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

func TestEqualProperty(t *testing.T) {
	ref := js.ParseReference("#/definitions/d")
	obj := func(max int) js.ObjectProperty {
		return js.ObjectProperty{
			Annotations: js.Annotations{Ref: &ref},
			Required:    []string{"a"},
			Properties: js.Properties{
				"a": js.StringProperty{Enum: js.EnumOf("x", "y"), MaxLength: js.Ptr(max)},
				"l": js.ArrayProperty{Items: []js.Property{js.IntegerProperty{Minimum: js.Ptr[int64](1)}}},
			},
		}
	}
	cases := []struct {
		name string
		a, b js.Property
		want bool
	}{
		{"same tree", obj(3), obj(3), true},
		{"nested attribute differs", obj(3), obj(4), false},
		{"enum order ignored", js.StringProperty{Enum: js.EnumOf("x", "y")}, js.StringProperty{Enum: js.EnumOf("y", "x")}, true},
		{"empty enum is not absent", js.BooleanProperty{Enum: js.Enum[bool]{}}, js.BooleanProperty{}, false},
		{"kinds differ", js.NullProperty{}, js.BooleanProperty{}, false},
		{"reference differs", js.NullProperty{Annotations: js.Annotations{Ref: &ref}}, js.NullProperty{}, false},
		{"both nil", nil, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := js.EqualProperty(tc.a, tc.b); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEqualItems(t *testing.T) {
	a := []js.Property{js.StringProperty{}, js.NumberProperty{Maximum: js.Ptr(1.5)}}
	if !js.EqualItems(a, []js.Property{js.StringProperty{}, js.NumberProperty{Maximum: js.Ptr(1.5)}}) {
		t.Fatalf("equal lists reported different")
	}
	if js.EqualItems(a, a[:1]) || js.EqualItems(nil, []js.Property{}) {
		t.Fatalf("different lists reported equal")
	}
	if (js.Properties{}).Equal(nil) {
		t.Fatalf("empty and absent members must differ")
	}
}
