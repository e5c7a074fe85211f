package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/mindbuffer/internal/logging"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
	"github.com/aretw0/mindbuffer/pkg/scoring"
)

const (
	// MaxLensRefreshes is how many times a lens batch may be regenerated.
	MaxLensRefreshes = 2
	// MinFinalStress is the floor of the simulated stress value after an action.
	MinFinalStress = 40
)

// Flow is one rescue session in progress. It is safe for concurrent use, but
// only one generation may be outstanding at a time.
type Flow struct {
	mu sync.Mutex

	gen      ports.ContentGenerator
	settings domain.UserSettings
	script   domain.Script
	scenario domain.ScenarioType

	stage         Stage
	abc           domain.ABCRecord
	transcript    []domain.ChatMessage
	initialStress int
	finalStress   int
	lensRefreshes int
	shuffles      int

	pending bool
	closed  bool
	timer   *countdown

	now    func() time.Time
	drop   DropFunc
	newID  func() string
	tick   time.Duration
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// New starts a flow in CHAT/A with the intro line and a running countdown.
// settings are copied and never modified.
func New(gen ports.ContentGenerator, settings domain.UserSettings, initialStress int, opts ...Option) *Flow {
	f := &Flow{
		gen:           gen,
		settings:      settings,
		script:        domain.DefaultScript(),
		scenario:      domain.ScenarioNormal,
		initialStress: initialStress,
		now:           time.Now,
		drop:          DefaultDrop,
		newID:         defaultID,
		tick:          time.Second,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.stage = Chat{Sub: domain.ChatAskEvent}
	f.transcript = []domain.ChatMessage{{Sender: domain.SenderBot, Text: f.script.Intro(settings.Tone)}}
	f.timer = startCountdown(f.now, f.tick)
	f.emitStage(context.Background(), domain.EventStageEnter, f.stage)
	return f
}

// Stage returns the current stage.
func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyStage(f.stage)
}

// ABC returns the record collected so far.
func (f *Flow) ABC() domain.ABCRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.abc
}

// Transcript returns a copy of the chat transcript.
func (f *Flow) Transcript() []domain.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ChatMessage(nil), f.transcript...)
}

// Pending reports whether a generation call is outstanding.
func (f *Flow) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Closed reports whether the flow was finished or closed.
func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// RejectedLensCount returns how many lens batches were refreshed away.
func (f *Flow) RejectedLensCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lensRefreshes
}

// RejectedActionCount returns how many action batches were shuffled away.
func (f *Flow) RejectedActionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shuffles
}

// Stress returns the initial and final stress values. final is zero before RESULT.
func (f *Flow) Stress() (initial, final int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialStress, f.finalStress
}

// Settings returns the settings the flow was started with.
func (f *Flow) Settings() domain.UserSettings {
	return f.settings
}

// LimitNotice is the line shown when the lens refresh cap is reached.
func (f *Flow) LimitNotice() string {
	return f.script.LensesLimit
}

// Remaining returns the whole seconds left on the countdown.
func (f *Flow) Remaining() int {
	return f.timer.remaining()
}

// Urgent reports whether less than a minute is left on the countdown.
func (f *Flow) Urgent() bool {
	return f.timer.remaining() < UrgentSeconds
}

// Ticks publishes the remaining seconds once per tick interval. It is closed
// when the flow ends or the countdown reaches zero.
func (f *Flow) Ticks() <-chan int {
	return f.timer.ticks
}

// Submit binds text to the current chat field and appends the next bot line.
func (f *Flow) Submit(ctx context.Context, text string) error {
	text, err := domain.CleanInput(text)
	if err != nil {
		return err
	}

	f.mu.Lock()
	if err := f.ready(); err != nil {
		f.mu.Unlock()
		return err
	}
	chat, ok := f.stage.(Chat)
	if !ok || chat.Sub == domain.ChatDone {
		f.mu.Unlock()
		return f.invalid("submit")
	}

	switch chat.Sub {
	case domain.ChatAskEvent:
		f.abc.A = text
	case domain.ChatAskBelief:
		f.abc.B = text
	case domain.ChatAskConsequence:
		f.abc.C = text
	}
	f.transcript = append(f.transcript, domain.ChatMessage{Sender: domain.SenderUser, Text: text})
	next := Chat{Sub: chat.Sub.Next()}
	f.transition(ctx, next)

	transcript := append([]domain.ChatMessage(nil), f.transcript...)
	f.pending = true
	f.mu.Unlock()

	line, ok := f.gen.ChatTurn(ctx, transcript, next.Sub, f.settings)
	if !ok {
		line = f.script.LineFor(next.Sub, f.settings.Tone)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.settle(); err != nil {
		return err
	}
	if line != "" {
		f.transcript = append(f.transcript, domain.ChatMessage{Sender: domain.SenderBot, Text: line})
	}
	return nil
}

// GenerateLenses moves a finished chat to LENS with a fresh batch of lenses.
func (f *Flow) GenerateLenses(ctx context.Context) error {
	f.mu.Lock()
	if err := f.ready(); err != nil {
		f.mu.Unlock()
		return err
	}
	if chat, ok := f.stage.(Chat); !ok || chat.Sub != domain.ChatDone {
		f.mu.Unlock()
		return f.invalid("generate lenses")
	}
	abc, seed := f.abc, f.now().UnixMilli()
	f.pending = true
	f.mu.Unlock()

	cards := f.gen.Lenses(ctx, abc, seed, f.settings)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.settle(); err != nil {
		return err
	}
	f.transition(ctx, Lens{Cards: cards})
	return nil
}

// RefreshLenses replaces the lens batch. After MaxLensRefreshes it returns an
// error wrapping domain.ErrRefreshLimit and leaves the flow unchanged.
func (f *Flow) RefreshLenses(ctx context.Context) error {
	f.mu.Lock()
	if err := f.ready(); err != nil {
		f.mu.Unlock()
		return err
	}
	if _, ok := f.stage.(Lens); !ok {
		f.mu.Unlock()
		return f.invalid("refresh lenses")
	}
	if f.lensRefreshes >= MaxLensRefreshes {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrRefreshLimit, f.script.LensesLimit)
	}
	abc, seed := f.abc, f.now().UnixMilli()+int64(f.lensRefreshes)+1
	f.pending = true
	f.mu.Unlock()

	cards := f.gen.Lenses(ctx, abc, seed, f.settings)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.settle(); err != nil {
		return err
	}
	f.lensRefreshes++
	f.stage = Lens{Cards: cards}
	return nil
}

// SelectLens picks a lens from the current batch and moves to ACTION.
func (f *Flow) SelectLens(ctx context.Context, id string) error {
	f.mu.Lock()
	if err := f.ready(); err != nil {
		f.mu.Unlock()
		return err
	}
	lens, ok := f.stage.(Lens)
	if !ok {
		f.mu.Unlock()
		return f.invalid("select lens")
	}
	chosen, found := findCard(lens.Cards, func(c domain.LensCard) bool { return c.ID == id })
	if !found {
		f.mu.Unlock()
		return fmt.Errorf("%w: lens %q", domain.ErrUnknownCard, id)
	}
	seed := f.now().UnixMilli()
	f.pending = true
	f.mu.Unlock()

	actions := f.gen.Actions(ctx, chosen.ID, seed, f.settings)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.settle(); err != nil {
		return err
	}
	f.transition(ctx, Action{Lens: chosen, Cards: actions})
	return nil
}

// ShuffleActions replaces the action batch. It is not capped.
func (f *Flow) ShuffleActions(ctx context.Context) error {
	f.mu.Lock()
	if err := f.ready(); err != nil {
		f.mu.Unlock()
		return err
	}
	action, ok := f.stage.(Action)
	if !ok {
		f.mu.Unlock()
		return f.invalid("shuffle actions")
	}
	seed := f.now().UnixMilli() + int64(f.shuffles) + 1
	f.pending = true
	f.mu.Unlock()

	actions := f.gen.Actions(ctx, action.Lens.ID, seed, f.settings)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.settle(); err != nil {
		return err
	}
	f.shuffles++
	f.stage = Action{Lens: action.Lens, Cards: actions}
	return nil
}

// SelectAction picks an action and moves to RESULT. The final stress value
// is computed here, once.
func (f *Flow) SelectAction(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(); err != nil {
		return err
	}
	action, ok := f.stage.(Action)
	if !ok {
		return f.invalid("select action")
	}
	chosen, found := findCard(action.Cards, func(a domain.MicroAction) bool { return a.ID == id })
	if !found {
		return fmt.Errorf("%w: action %q", domain.ErrUnknownCard, id)
	}

	f.finalStress = max(MinFinalStress, f.initialStress-f.drop())
	f.transition(ctx, Result{Lens: action.Lens, Action: chosen})
	return nil
}

// Finish assembles the session record and ends the flow. It does not archive.
func (f *Flow) Finish(ctx context.Context) (*domain.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ready(); err != nil {
		return nil, err
	}
	result, ok := f.stage.(Result)
	if !ok {
		return nil, f.invalid("finish")
	}

	lens, action := result.Lens, result.Action
	session := &domain.SessionData{
		ID:                    f.newID(),
		Timestamp:             f.now().UnixMilli(),
		DurationSeconds:       CountdownSeconds - f.timer.remaining(),
		ABC:                   f.abc,
		SelectedLensID:        lens.ID,
		SelectedActionID:      action.ID,
		SelectedLensContent:   &lens,
		SelectedActionContent: &action,
		ChatTranscript:        append([]domain.ChatMessage(nil), f.transcript...),
		HRVStart:              f.initialStress,
		HRVEnd:                f.finalStress,
		ThemeName:             domain.ThemeName(f.abc, f.settings.Language),
		RejectedLensCount:     f.lensRefreshes,
		RejectedActionCount:   f.shuffles,
		Completed:             true,
		Type:                  f.scenario,
	}
	session.GrowthValue = scoring.GrowthValue(session)

	f.emitStage(ctx, domain.EventStageLeave, f.stage)
	f.shutdown()
	f.logger.DebugContext(ctx, "flow finished", "session_id", session.ID, "growth", session.GrowthValue)
	return session, nil
}

// Close abandons the flow. State is discarded and any generation still in
// flight has its result dropped. Close is idempotent.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.logger.Debug("flow closed", "stage", f.stage.Name())
	f.shutdown()
	f.abc = domain.ABCRecord{}
	f.transcript = nil
}

// shutdown marks the flow closed and stops the countdown. Caller holds mu.
func (f *Flow) shutdown() {
	f.closed = true
	f.timer.halt()
}

// ready checks that a mutating call may proceed. Caller holds mu.
func (f *Flow) ready() error {
	if f.closed {
		return domain.ErrFlowClosed
	}
	if f.pending {
		return domain.ErrPending
	}
	return nil
}

// settle clears the pending flag after a generation call. Caller holds mu.
func (f *Flow) settle() error {
	f.pending = false
	if f.closed {
		return domain.ErrFlowClosed
	}
	return nil
}

func (f *Flow) invalid(op string) error {
	return fmt.Errorf("%w: cannot %s in stage %s", domain.ErrInvalidTransition, op, f.stage.Name())
}

// transition moves to next, firing leave and enter hooks. Caller holds mu.
func (f *Flow) transition(ctx context.Context, next Stage) {
	f.emitStage(ctx, domain.EventStageLeave, f.stage)
	f.stage = next
	f.emitStage(ctx, domain.EventStageEnter, next)
}

func (f *Flow) emitStage(ctx context.Context, typ domain.EventType, s Stage) {
	hook := f.hooks.OnStageEnter
	if typ == domain.EventStageLeave {
		hook = f.hooks.OnStageLeave
	}
	if hook == nil {
		return
	}
	ev := &domain.StageEvent{
		EventBase: domain.EventBase{Timestamp: f.now(), Type: typ},
		Stage:     s.Name(),
	}
	if chat, ok := s.(Chat); ok {
		ev.ChatStep = chat.Sub
	}
	hook(ctx, ev)
}

func findCard[T any](cards []T, match func(T) bool) (T, bool) {
	for _, c := range cards {
		if match(c) {
			return c, true
		}
	}
	var zero T
	return zero, false
}
