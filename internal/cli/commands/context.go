// Package commands holds the pgpeek subcommands.
package commands

import (
	"context"

	"github.com/nhath/pgpeek/internal/config"
)

// SealerFunc opens the sealer for profile passwords.
type SealerFunc func() (*config.Sealer, error)

type configKey struct{}

// WithConfig stores the loaded config in ctx.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom returns the config stored by WithConfig, or defaults.
func ConfigFrom(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.DefaultConfig()
}
