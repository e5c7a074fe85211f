package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/mindbuffer/internal/logging"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/flow"
	"github.com/aretw0/mindbuffer/pkg/ports"
	"github.com/google/uuid"
)

const (
	// LockKey is the distributed lock guarding the active flow.
	LockKey = "active-flow"
	// DefaultLockTTL outlives the flow countdown so an abandoned lock expires.
	DefaultLockTTL = 2 * flow.CountdownSeconds * time.Second
	// DefaultLockWait bounds how long Open waits for the distributed lock.
	DefaultLockWait = 200 * time.Millisecond
)

type activeFlow struct {
	id     string
	flow   *flow.Flow
	unlock ports.UnlockFunc
}

// Manager owns the single active flow.
type Manager struct {
	gen      ports.ContentGenerator
	archive  ports.SessionArchive
	settings ports.SettingsProvider

	mu     sync.Mutex
	active *activeFlow

	locker   ports.DistributedLocker
	lockTTL  time.Duration
	lockWait time.Duration
	flowOpts []flow.Option
	newID    func() string
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTiming sets the distributed lock TTL and how long Open waits for it.
func WithLockTiming(ttl, wait time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
		m.lockWait = wait
	}
}

// WithFlowOptions passes options to every flow the Manager opens.
func WithFlowOptions(opts ...flow.Option) Option {
	return func(m *Manager) {
		m.flowOpts = append(m.flowOpts, opts...)
	}
}

// WithIDFunc sets how flow and session IDs are generated.
func WithIDFunc(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

// WithLifecycleHooks registers the OnSessionComplete hook.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager.
func NewManager(gen ports.ContentGenerator, archive ports.SessionArchive, settings ports.SettingsProvider, opts ...Option) *Manager {
	m := &Manager{
		gen:      gen,
		archive:  archive,
		settings: settings,
		lockTTL:  DefaultLockTTL,
		lockWait: DefaultLockWait,
		newID:    uuid.NewString,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open starts a flow. It returns domain.ErrFlowActive while another flow is open.
func (m *Manager) Open(ctx context.Context, initialStress int) (string, *flow.Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil && !m.active.flow.Closed() {
		return "", nil, domain.ErrFlowActive
	}
	if m.active != nil {
		// Closed directly on the flow; only the lock is left to drop.
		m.release(ctx, m.active)
	}

	settings, err := m.settings.Settings(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var unlock ports.UnlockFunc
	if m.locker != nil {
		lockCtx, cancel := context.WithTimeout(ctx, m.lockWait)
		unlock, err = m.locker.Lock(lockCtx, LockKey, m.lockTTL)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return "", nil, ctx.Err()
			}
			m.logger.DebugContext(ctx, "distributed flow lock is held elsewhere", "err", err)
			return "", nil, domain.ErrFlowActive
		}
	}

	id := m.newID()
	opts := append([]flow.Option{flow.WithIDFunc(func() string { return id })}, m.flowOpts...)
	f := flow.New(m.gen, settings, initialStress, opts...)
	m.active = &activeFlow{id: id, flow: f, unlock: unlock}

	m.logger.InfoContext(ctx, "flow opened", "flow_id", id, "initial_stress", initialStress)
	return id, f, nil
}

// Get returns the active flow with the given ID.
func (m *Manager) Get(id string) (*flow.Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.id != id {
		return nil, fmt.Errorf("%w: %s", domain.ErrFlowNotFound, id)
	}
	return m.active.flow, nil
}

// Active returns the ID of the open flow, if any.
func (m *Manager) Active() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.flow.Closed() {
		return "", false
	}
	return m.active.id, true
}

// Complete finishes the flow and archives its record.
// When archiving fails the record is still returned with the error, so the
// caller can retry persisting it.
func (m *Manager) Complete(ctx context.Context, id string) (*domain.SessionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	record, err := entry.flow.Finish(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrFlowClosed) {
			m.release(ctx, entry)
		}
		return nil, err
	}
	m.release(ctx, entry)

	if err := m.archive.Append(ctx, *record); err != nil {
		m.logger.ErrorContext(ctx, "failed to archive session", "session_id", record.ID, "err", err)
		return record, fmt.Errorf("failed to archive session: %w", err)
	}

	m.logger.InfoContext(ctx, "session completed", "session_id", record.ID, "growth", record.GrowthValue)
	if m.hooks.OnSessionComplete != nil {
		m.hooks.OnSessionComplete(ctx, &domain.SessionEvent{
			EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventSessionComplete},
			SessionID:   record.ID,
			GrowthValue: record.GrowthValue,
			Duration:    record.DurationSeconds,
		})
	}
	return record, nil
}

// Abort closes the flow. Nothing is archived.
func (m *Manager) Abort(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, err := m.lookup(id)
	if err != nil {
		return err
	}
	entry.flow.Close()
	m.release(ctx, entry)
	m.logger.InfoContext(ctx, "flow aborted", "flow_id", id)
	return nil
}

// Close aborts the active flow, if any.
func (m *Manager) Close(ctx context.Context) {
	if id, ok := m.Active(); ok {
		_ = m.Abort(ctx, id)
	}
}

// lookup finds the active entry. Caller holds mu.
func (m *Manager) lookup(id string) (*activeFlow, error) {
	if m.active == nil || m.active.id != id {
		return nil, fmt.Errorf("%w: %s", domain.ErrFlowNotFound, id)
	}
	return m.active, nil
}

// release forgets the entry and drops its distributed lock. Caller holds mu.
func (m *Manager) release(ctx context.Context, entry *activeFlow) {
	if m.active == entry {
		m.active = nil
	}
	if entry.unlock == nil {
		return
	}
	if err := entry.unlock(context.WithoutCancel(ctx)); err != nil {
		m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
			"flow_id", entry.id,
			"err", err,
		)
	}
	entry.unlock = nil
}
