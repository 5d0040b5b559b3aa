package logger_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"meetup/internal/config"
)

var Module = fx.Provide(ProvideLogger)

func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return NewLogger(cfg.Log.Level, cfg.Log.Format)
}

// NewLogger builds a production (json) or development (console) logger at the
// given level. Unknown levels fall back to info.
func NewLogger(levelStr, format string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var zcfg zap.Config
	if format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
