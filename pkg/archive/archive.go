// Package archive stores finished sessions in a key-value store.
//
// All sessions live as one JSON array under SessionsKey, the same layout the
// browser build keeps in local storage, so exported data stays compatible.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/mindbuffer/internal/logging"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/persistence/middleware"
	"github.com/aretw0/mindbuffer/pkg/ports"
)

// SessionsKey is the store key holding the archived sessions.
const SessionsKey = "mindbuffer_sessions"

// Archive implements ports.SessionArchive.
type Archive struct {
	store  ports.KVStore
	mu     sync.Mutex
	logger *slog.Logger
}

var _ ports.SessionArchive = (*Archive)(nil)

// Option configures the Archive.
type Option func(*Archive)

// WithLogger sets the archive logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// New creates an archive over store.
func New(store ports.KVStore, opts ...Option) *Archive {
	a := &Archive{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Append adds a session. Sessions are immutable once archived, so an ID that
// was archived before is rejected with domain.ErrDuplicateSession.
func (a *Archive) Append(ctx context.Context, session domain.SessionData) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	sessions, err := a.load(ctx)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if s.ID == session.ID {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSession, session.ID)
		}
	}

	sessions = append(sessions, session)
	if err := a.save(ctx, sessions); err != nil {
		return err
	}
	a.logger.DebugContext(ctx, "session archived", "session_id", session.ID, "total", len(sessions))
	return nil
}

// List returns all sessions in insertion order.
func (a *Archive) List(ctx context.Context) ([]domain.SessionData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load(ctx)
}

// Get returns the session with the given ID or domain.ErrNotFound.
func (a *Archive) Get(ctx context.Context, id string) (domain.SessionData, error) {
	sessions, err := a.List(ctx)
	if err != nil {
		return domain.SessionData{}, err
	}
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.SessionData{}, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
}

// Clear removes every archived session.
func (a *Archive) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.Delete(ctx, SessionsKey); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}

func (a *Archive) load(ctx context.Context) ([]domain.SessionData, error) {
	data, err := a.store.Get(ctx, SessionsKey)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.SessionData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	var sessions []domain.SessionData
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	if sessions == nil {
		sessions = []domain.SessionData{}
	}
	return sessions, nil
}

func (a *Archive) save(ctx context.Context, sessions []domain.SessionData) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := a.store.Set(ctx, SessionsKey, data); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}
	return nil
}

// ExportOption configures Export.
type ExportOption func(*exportConfig)

type exportConfig struct {
	secrets bool
}

// WithSecrets keeps credentials in the exported settings.
func WithSecrets(include bool) ExportOption {
	return func(c *exportConfig) {
		c.secrets = include
	}
}

// Export serializes {settings, sessions} as indented JSON.
// Credentials in settings are masked unless WithSecrets(true) is given.
func (a *Archive) Export(ctx context.Context, settings domain.UserSettings, opts ...ExportOption) ([]byte, error) {
	var cfg exportConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sessions, err := a.List(ctx)
	if err != nil {
		return nil, err
	}

	var exported any = settings
	if !cfg.secrets {
		exported, err = middleware.Redact(settings, middleware.SecretPatterns)
		if err != nil {
			return nil, fmt.Errorf("failed to redact settings: %w", err)
		}
	}

	out, err := json.MarshalIndent(struct {
		Settings any                  `json:"settings"`
		Sessions []domain.SessionData `json:"sessions"`
	}{exported, sessions}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return out, nil
}
