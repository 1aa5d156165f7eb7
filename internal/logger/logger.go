package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the prodex zap logger for the given environment.
// prod emits JSON for log shipping; local, dev, and docker emit colored
// console output. A non-empty level argument overrides the environment's
// default level (debug, info, warn, error).
func NewLogger(env string, level ...string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev", "docker":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if len(level) > 0 && level[0] != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level[0])); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level[0], err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
