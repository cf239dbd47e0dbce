package jsonschema_test

import (
	"github.com/goccy/go-json"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

func typePtr(t js.Type) *js.Type { return &t }

func jsonNumber(s string) json.Number { return json.Number(s) }
