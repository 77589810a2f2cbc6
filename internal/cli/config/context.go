package config

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/rowql/pkg/core"
)

// configKey is used to store config in context.
type configKey struct{}

// WithContext returns ctx carrying cfg and logger.
func WithContext(ctx context.Context, cfg *Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the config from ctx, or the defaults if none
// was stored.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok && c != nil {
		return c
	}
	return Default()
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		TableName:     core.DefaultTableName,
		Mode:          core.ModeStrict,
		Precedence:    core.PrecedenceLegacy,
		Output:        DefaultOutput,
		WatchDebounce: DefaultWatchDebounce,
	}
}
