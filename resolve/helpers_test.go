package resolve_test

import "github.com/goccy/go-json"

func jsonNumber(s string) json.Number { return json.Number(s) }
