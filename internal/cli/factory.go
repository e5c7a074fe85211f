package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/internal/config"
	"github.com/aretw0/mindbuffer/pkg/generator"
	"github.com/aretw0/mindbuffer/pkg/observability"
)

// NewCoach opens the configured storage and builds a Coach over it.
// Closing the Coach closes the storage.
func NewCoach(ctx context.Context, cfg *config.Config, logger *slog.Logger, extra ...mindbuffer.Option) (*mindbuffer.Coach, error) {
	storage, err := OpenStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	opts := []mindbuffer.Option{
		mindbuffer.WithStore(storage.Store),
		mindbuffer.WithLogger(logger),
		mindbuffer.WithSettingsDefaults(cfg.Settings),
		mindbuffer.WithLifecycleHooks(observability.LoggingHooks(logger)),
		mindbuffer.WithGeneratorOptions(
			generator.WithMockDelay(cfg.MockDelay),
			generator.WithRequestTimeout(cfg.RequestTimeout),
		),
	}
	if storage.Locker != nil {
		opts = append(opts, mindbuffer.WithLocker(storage.Locker))
	}
	for _, c := range storage.Closers {
		opts = append(opts, mindbuffer.WithCloser(c))
	}

	coach, err := mindbuffer.New(append(opts, extra...)...)
	if err != nil {
		storage.Close()
		return nil, err
	}
	return coach, nil
}
