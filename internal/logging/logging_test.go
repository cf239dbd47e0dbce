package logging_test

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/justin-guan/jsonschema2kotlin/internal/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"bogus": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Fatalf("%q: got %v, want %v", in, got, want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	if logging.FromContext(context.Background()) == nil {
		t.Fatalf("expected the global logger as fallback")
	}
	log := zap.NewNop()
	ctx := logging.ToContext(context.Background(), log)
	if logging.FromContext(ctx) != log {
		t.Fatalf("expected the stored logger")
	}
}
