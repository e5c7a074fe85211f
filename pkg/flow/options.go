package flow

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/google/uuid"
)

// DropFunc returns the simulated stress reduction applied when an action is chosen.
type DropFunc func() int

// DefaultDrop draws a uniform integer in [10, 30).
func DefaultDrop() int {
	return rand.IntN(20) + 10
}

// Option configures a Flow.
type Option func(*Flow)

// WithClock sets the time source used for seeds, timestamps and the countdown.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		f.now = now
	}
}

// WithDropFunc injects the stress reduction policy.
func WithDropFunc(drop DropFunc) Option {
	return func(f *Flow) {
		f.drop = drop
	}
}

// WithIDFunc sets how session IDs are generated. The default is a random UUID.
func WithIDFunc(newID func() string) Option {
	return func(f *Flow) {
		f.newID = newID
	}
}

// WithScript sets the static dialogue lines.
func WithScript(script domain.Script) Option {
	return func(f *Flow) {
		f.script = script
	}
}

// WithScenario tags the resulting session with a scenario type.
func WithScenario(t domain.ScenarioType) Option {
	return func(f *Flow) {
		f.scenario = t
	}
}

// WithLifecycleHooks registers stage transition callbacks.
// Hooks run while the flow is locked and must not call back into it.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Flow) {
		f.hooks = hooks
	}
}

// WithLogger sets the flow logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithTickInterval sets how often the countdown publishes on Ticks.
func WithTickInterval(d time.Duration) Option {
	return func(f *Flow) {
		f.tick = d
	}
}

func defaultID() string {
	return uuid.NewString()
}
