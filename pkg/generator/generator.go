package generator

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/mindbuffer/internal/logging"
	"github.com/aretw0/mindbuffer/pkg/adapters/completion"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultMockDelay simulates generation latency on the mock path.
	DefaultMockDelay = 500 * time.Millisecond
	// DefaultRequestTimeout bounds every remote completion call.
	DefaultRequestTimeout = 20 * time.Second
)

// CompleterFactory builds the completer for the given settings.
type CompleterFactory func(ctx context.Context, settings domain.UserSettings) (ports.Completer, error)

// Generator implements ports.ContentGenerator.
type Generator struct {
	mock       *MockStrategy
	factory    CompleterFactory
	completers *lru.Cache[string, ports.Completer]
	cache      *resultCache
	cacheSize  int
	timeout    time.Duration
	http       *http.Client
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

var _ ports.ContentGenerator = (*Generator)(nil)

// Option configures the Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithLifecycleHooks registers the OnGenerate observability hook.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithMockDelay sets the simulated latency of the mock strategy.
func WithMockDelay(d time.Duration) Option {
	return func(g *Generator) {
		g.mock.Delay = d
	}
}

// WithRequestTimeout bounds each remote completion call.
func WithRequestTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.timeout = d
	}
}

// WithCompleterFactory overrides how remote completers are built.
func WithCompleterFactory(f CompleterFactory) Option {
	return func(g *Generator) {
		g.factory = f
	}
}

// WithHTTPClient sets the HTTP client of the default OpenAI-compatible completer.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) {
		g.http = c
	}
}

// WithCacheSize bounds the AI result cache. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(g *Generator) {
		g.cacheSize = n
	}
}

// New creates a Generator.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		mock:       &MockStrategy{Delay: DefaultMockDelay},
		completers: newCompleterCache(),
		cacheSize:  DefaultCacheSize,
		timeout:    DefaultRequestTimeout,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.factory == nil {
		g.factory = func(ctx context.Context, s domain.UserSettings) (ports.Completer, error) {
			return completion.ForSettings(ctx, s, g.http)
		}
	}

	cache, err := newResultCache(g.cacheSize)
	if err != nil {
		return nil, err
	}
	g.cache = cache
	return g, nil
}

// strategyFor selects the strategy for one call from the settings.
func (g *Generator) strategyFor(ctx context.Context, settings domain.UserSettings) Strategy {
	if !settings.AIEnabled() {
		return g.mock
	}
	c, err := g.completer(ctx, settings)
	if err != nil {
		g.logger.Warn("ai provider unavailable, using mock content", "provider", settings.AIProvider, "err", err)
		return g.mock
	}
	return &AIStrategy{completer: c, cache: g.cache}
}

// completer returns the remote client for settings, building it once per
// provider, endpoint, model and key.
func (g *Generator) completer(ctx context.Context, settings domain.UserSettings) (ports.Completer, error) {
	key := completerKey(settings)
	if c, ok := g.completers.Get(key); ok {
		return c, nil
	}
	c, err := g.factory(ctx, settings)
	if err != nil {
		return nil, err
	}
	g.completers.Add(key, c)
	return c, nil
}

// withTimeout bounds a remote call. The mock path keeps the caller context.
func (g *Generator) withTimeout(ctx context.Context, s Strategy) (context.Context, context.CancelFunc) {
	if s == Strategy(g.mock) || g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// Lenses implements ports.ContentGenerator.
func (g *Generator) Lenses(ctx context.Context, abc domain.ABCRecord, seed int64, settings domain.UserSettings) []domain.LensCard {
	start := time.Now()
	s := g.strategyFor(ctx, settings)

	callCtx, cancel := g.withTimeout(ctx, s)
	cards, err := s.Lenses(callCtx, abc, seed, settings)
	cancel()
	if err == nil {
		g.emit(ctx, domain.KindLenses, s.Name(), false, start, nil)
		return cards
	}

	g.fallback(ctx, domain.KindLenses, s, err)
	cards, _ = g.mock.Lenses(ctx, abc, seed, settings)
	g.emit(ctx, domain.KindLenses, g.mock.Name(), true, start, err)
	return cards
}

// Actions implements ports.ContentGenerator.
func (g *Generator) Actions(ctx context.Context, lensID string, seed int64, settings domain.UserSettings) []domain.MicroAction {
	start := time.Now()
	s := g.strategyFor(ctx, settings)

	callCtx, cancel := g.withTimeout(ctx, s)
	actions, err := s.Actions(callCtx, lensID, seed, settings)
	cancel()
	if err == nil {
		g.emit(ctx, domain.KindActions, s.Name(), false, start, nil)
		return actions
	}

	g.fallback(ctx, domain.KindActions, s, err)
	actions, _ = g.mock.Actions(ctx, lensID, seed, settings)
	g.emit(ctx, domain.KindActions, g.mock.Name(), true, start, err)
	return actions
}

// ClassifyEmotion implements ports.ContentGenerator.
func (g *Generator) ClassifyEmotion(ctx context.Context, text string, settings domain.UserSettings) domain.Emotion {
	start := time.Now()
	s := g.strategyFor(ctx, settings)

	callCtx, cancel := g.withTimeout(ctx, s)
	emotion, err := s.Emotion(callCtx, text, settings)
	cancel()
	if err == nil {
		g.emit(ctx, domain.KindEmotion, s.Name(), false, start, nil)
		return emotion
	}

	g.fallback(ctx, domain.KindEmotion, s, err)
	emotion, _ = g.mock.Emotion(ctx, text, settings)
	g.emit(ctx, domain.KindEmotion, g.mock.Name(), true, start, err)
	return emotion
}

// ChatTurn implements ports.ContentGenerator.
// It returns false whenever no generated line is available.
func (g *Generator) ChatTurn(ctx context.Context, transcript []domain.ChatMessage, stage domain.ChatStage, settings domain.UserSettings) (string, bool) {
	start := time.Now()
	s := g.strategyFor(ctx, settings)

	callCtx, cancel := g.withTimeout(ctx, s)
	text, err := s.ChatTurn(callCtx, transcript, stage, settings)
	cancel()
	if err == nil {
		g.emit(ctx, domain.KindChatTurn, s.Name(), false, start, nil)
		return text, true
	}

	if s != Strategy(g.mock) {
		g.fallback(ctx, domain.KindChatTurn, s, err)
	}
	g.emit(ctx, domain.KindChatTurn, g.mock.Name(), true, start, err)
	return "", false
}

func (g *Generator) fallback(ctx context.Context, kind domain.GenerationKind, s Strategy, err error) {
	g.logger.WarnContext(ctx, "generation failed, falling back to mock content",
		"kind", kind,
		"strategy", s.Name(),
		"err", err,
	)
}

func (g *Generator) emit(ctx context.Context, kind domain.GenerationKind, source string, fallback bool, start time.Time, err error) {
	if g.hooks.OnGenerate == nil {
		return
	}
	ev := &domain.GenerationEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventGenerate},
		Kind:      kind,
		Source:    source,
		Fallback:  fallback,
		Duration:  time.Since(start),
	}
	if err != nil {
		ev.Err = err.Error()
	}
	g.hooks.OnGenerate(ctx, ev)
}
