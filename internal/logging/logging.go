package logging

import (
	"context"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel overrides the level passed to Init.
const EnvLogLevel = "JSONSCHEMA2KOTLIN_LOG_LEVEL"

const appName = "jsonschema2kotlin"

type ctxLog struct{}

var ctxLogKey = &ctxLog{}

// Init builds the process-wide logger and installs it as zap's global.
func Init(level string) *zap.Logger {
	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" {
		level = envLevel
	}

	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		encoder = zapcore.NewJSONEncoder(encoderConf)
	} else {
		encoderConf.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConf)
	}

	// Generated documents go to stdout, so all log output stays on stderr.
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(ParseLevel(level)))
	logger := zap.New(core).Named(appName)
	zap.ReplaceGlobals(logger)
	return logger
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// FromContext returns the logger stored in ctx, or the global logger.
func FromContext(ctx context.Context) *zap.Logger {
	log, ok := ctx.Value(ctxLogKey).(*zap.Logger)
	if !ok || log == nil {
		return zap.L()
	}
	return log
}

// ToContext returns a context carrying log.
func ToContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLogKey, log)
}
