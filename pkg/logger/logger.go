// Package logger constructs the structured logger used throughout the
// content store. The TOC, the data file set, and the
// ingestion/retrieval engine are each handed a *zap.SugaredLogger so
// lifecycle events and recoverable failures are logged with consistent
// structured fields instead of ad-hoc fmt.Printf calls.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-configured sugared logger tagged with the
// given service name. It falls back to a no-op logger if the zap
// production config cannot be built, so a logging misconfiguration
// never prevents the store itself from opening.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}

	return log.Sugar().With("service", service)
}
