package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	L = build("prod")
}

// Init rebuilds the global logger for the given environment.  "dev" gets
// the human-readable console encoder; anything else logs JSON.
func Init(env string) {
	L = build(env)
}

// Sync flushes buffered log entries.  Call it on shutdown.
func Sync() {
	_ = L.Sync()
}

func build(env string) *zap.Logger {
	config := zap.NewProductionConfig()
	if env == "dev" {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := config.Build()
	if err != nil {
		panic(err)
	}
	return l
}

// WithComponent returns a logger tagged with a component field so log lines
// from handlers, repositories and the queue consumer can be told apart.
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}
