package mindbuffer

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/mindbuffer/internal/logging"
	"github.com/aretw0/mindbuffer/pkg/adapters/memory"
	"github.com/aretw0/mindbuffer/pkg/archive"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/flow"
	"github.com/aretw0/mindbuffer/pkg/generator"
	"github.com/aretw0/mindbuffer/pkg/observability"
	"github.com/aretw0/mindbuffer/pkg/parent"
	"github.com/aretw0/mindbuffer/pkg/ports"
	"github.com/aretw0/mindbuffer/pkg/session"
	"github.com/aretw0/mindbuffer/pkg/settings"
)

// Coach wires the rescue flow, the archive and the parent zone over one store.
type Coach struct {
	Generator *generator.Generator
	Sessions  *session.Manager
	Archive   *archive.Archive
	Settings  *settings.Store
	Stats     *parent.StatsStore
	Journal   *parent.Journal

	store   ports.KVStore
	closers []io.Closer
	logger  *slog.Logger
}

type coachConfig struct {
	store       ports.KVStore
	closers     []io.Closer
	locker      ports.DistributedLocker
	defaults    *domain.UserSettings
	hooks       []domain.LifecycleHooks
	genOpts     []generator.Option
	flowOpts    []flow.Option
	sessionOpts []session.Option
	logger      *slog.Logger
}

// Option configures a Coach.
type Option func(*coachConfig)

// WithStore sets the key-value store. The default is an in-memory store.
func WithStore(store ports.KVStore) Option {
	return func(c *coachConfig) {
		c.store = store
	}
}

// WithCloser registers a resource released by Close, such as a database handle.
func WithCloser(closer io.Closer) Option {
	return func(c *coachConfig) {
		c.closers = append(c.closers, closer)
	}
}

// WithLocker coordinates the single active flow across processes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(c *coachConfig) {
		c.locker = locker
	}
}

// WithSettingsDefaults sets the settings used where nothing was saved.
func WithSettingsDefaults(s domain.UserSettings) Option {
	return func(c *coachConfig) {
		c.defaults = &s
	}
}

// WithLifecycleHooks adds observability hooks. Repeated calls accumulate.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *coachConfig) {
		c.hooks = append(c.hooks, hooks)
	}
}

// WithGeneratorOptions passes options to the content generator.
func WithGeneratorOptions(opts ...generator.Option) Option {
	return func(c *coachConfig) {
		c.genOpts = append(c.genOpts, opts...)
	}
}

// WithFlowOptions passes options to every flow.
func WithFlowOptions(opts ...flow.Option) Option {
	return func(c *coachConfig) {
		c.flowOpts = append(c.flowOpts, opts...)
	}
}

// WithSessionOptions passes options to the session manager.
func WithSessionOptions(opts ...session.Option) Option {
	return func(c *coachConfig) {
		c.sessionOpts = append(c.sessionOpts, opts...)
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(c *coachConfig) {
		c.logger = logger
	}
}

// New builds a Coach.
func New(opts ...Option) (*Coach, error) {
	cfg := &coachConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.store == nil {
		cfg.store = memory.NewStore()
	}
	hooks := observability.Combine(cfg.hooks...)

	gen, err := generator.New(append([]generator.Option{
		generator.WithLogger(cfg.logger),
		generator.WithLifecycleHooks(hooks),
	}, cfg.genOpts...)...)
	if err != nil {
		return nil, err
	}

	var settingsOpts []settings.Option
	if cfg.defaults != nil {
		settingsOpts = append(settingsOpts, settings.WithDefaults(*cfg.defaults))
	}
	settingsStore := settings.New(cfg.store, settingsOpts...)
	arch := archive.New(cfg.store, archive.WithLogger(cfg.logger))

	flowOpts := append([]flow.Option{
		flow.WithLogger(cfg.logger),
		flow.WithLifecycleHooks(hooks),
	}, cfg.flowOpts...)
	sessionOpts := []session.Option{
		session.WithLogger(cfg.logger),
		session.WithLifecycleHooks(hooks),
		session.WithFlowOptions(flowOpts...),
	}
	if cfg.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(cfg.locker))
	}
	sessionOpts = append(sessionOpts, cfg.sessionOpts...)

	return &Coach{
		Generator: gen,
		Sessions:  session.NewManager(gen, arch, settingsStore, sessionOpts...),
		Archive:   arch,
		Settings:  settingsStore,
		Stats:     parent.NewStatsStore(cfg.store),
		Journal:   parent.NewJournal(cfg.store, gen),
		store:     cfg.store,
		closers:   cfg.closers,
		logger:    cfg.logger,
	}, nil
}

// Store returns the underlying key-value store.
func (c *Coach) Store() ports.KVStore {
	return c.store
}

// Export serializes the settings and every archived session.
func (c *Coach) Export(ctx context.Context, opts ...archive.ExportOption) ([]byte, error) {
	s, err := c.Settings.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return c.Archive.Export(ctx, s, opts...)
}

// WriteJournal classifies and stores one daily sentence with the current settings.
func (c *Coach) WriteJournal(ctx context.Context, text string) (domain.DailySentence, error) {
	s, err := c.Settings.Settings(ctx)
	if err != nil {
		return domain.DailySentence{}, err
	}
	return c.Journal.Write(ctx, text, s)
}

// FinishCalmPod credits one calm pod exercise to the parent statistics.
func (c *Coach) FinishCalmPod(ctx context.Context) (domain.ParentStats, error) {
	return c.Stats.Update(ctx, func(s domain.ParentStats) domain.ParentStats {
		return parent.RecordCalm(s, parent.CalmPodMinutes)
	})
}

// AvoidConflict counts one avoided conflict.
func (c *Coach) AvoidConflict(ctx context.Context) (domain.ParentStats, error) {
	return c.Stats.Update(ctx, parent.RecordConflictAvoided)
}

// Reset deletes the archive, settings, statistics and journal.
func (c *Coach) Reset(ctx context.Context) error {
	var errs []error
	if err := c.Archive.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, key := range []string{settings.Key, parent.StatsKey, parent.JournalKey} {
		if err := c.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close aborts the active flow and releases the registered resources.
func (c *Coach) Close(ctx context.Context) error {
	c.Sessions.Close(ctx)
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
