// Package settings persists the user settings in a key-value store.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/persistence/middleware"
	"github.com/aretw0/mindbuffer/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// Key is the store key holding the settings.
const Key = "mindbuffer_settings"

// ErrInvalid is returned when a settings patch does not decode.
var ErrInvalid = errors.New("invalid settings")

// Store implements ports.SettingsProvider over a KVStore.
type Store struct {
	kv       ports.KVStore
	defaults domain.UserSettings
}

// Option configures a Store.
type Option func(*Store)

// WithDefaults replaces domain.DefaultSettings as the base of every read.
func WithDefaults(d domain.UserSettings) Option {
	return func(s *Store) {
		s.defaults = d
	}
}

var _ ports.SettingsProvider = (*Store)(nil)

// New creates a settings store.
func New(kv ports.KVStore, opts ...Option) *Store {
	s := &Store{kv: kv, defaults: domain.DefaultSettings()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the stored settings merged over the defaults.
// A missing record yields the defaults.
func (s *Store) Settings(ctx context.Context) (domain.UserSettings, error) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, domain.ErrNotFound) {
		return s.defaults, nil
	}
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.UserSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	// A key masked at rest falls back to the configured one.
	if raw["apiKey"] == middleware.Mask {
		delete(raw, "apiKey")
	}
	return Merge(s.defaults, raw)
}

// Save persists settings.
func (s *Store) Save(ctx context.Context, settings domain.UserSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Update applies a partial update, keyed by the JSON field names, and saves it.
func (s *Store) Update(ctx context.Context, patch map[string]any) (domain.UserSettings, error) {
	current, err := s.Settings(ctx)
	if err != nil {
		return domain.UserSettings{}, err
	}
	updated, err := Merge(current, patch)
	if err != nil {
		return domain.UserSettings{}, err
	}
	if err := s.Save(ctx, updated); err != nil {
		return domain.UserSettings{}, err
	}
	return updated, nil
}

// Merge decodes patch, keyed by the JSON field names, over base.
// Fields absent from patch keep their base value; an empty provider becomes mock.
func Merge(base domain.UserSettings, patch map[string]any) (domain.UserSettings, error) {
	out := base
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := decoder.Decode(patch); err != nil {
		return domain.UserSettings{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if out.AIProvider == "" {
		out.AIProvider = domain.ProviderMock
	}
	return out, nil
}
