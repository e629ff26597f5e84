package configs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(env ENV) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env.IsDevelopment() {
		cfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(env.LogLevel)
	if err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	return cfg.Build()
}
