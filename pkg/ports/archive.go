package ports

import (
	"context"

	"github.com/aretw0/mindbuffer/pkg/domain"
)

// SessionArchive is the append-only store of finished sessions.
type SessionArchive interface {
	// Append stores a finished session.
	// Returns domain.ErrDuplicateSession if the ID was archived before.
	Append(ctx context.Context, session domain.SessionData) error

	// List returns every archived session in insertion order.
	List(ctx context.Context) ([]domain.SessionData, error)
}

// SettingsProvider supplies the read-only user settings.
type SettingsProvider interface {
	Settings(ctx context.Context) (domain.UserSettings, error)
}

// StaticSettings is a SettingsProvider returning a fixed value.
type StaticSettings domain.UserSettings

// Settings implements SettingsProvider.
func (s StaticSettings) Settings(context.Context) (domain.UserSettings, error) {
	return domain.UserSettings(s), nil
}
