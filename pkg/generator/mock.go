package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/mindbuffer/pkg/domain"
)

// MockStrategy selects content from the static template banks.
// It never fails for lenses, actions or emotions.
type MockStrategy struct {
	// Delay simulates generation latency. Zero disables it.
	Delay time.Duration
}

// Name implements Strategy.
func (m *MockStrategy) Name() string { return "mock" }

// Lenses implements Strategy.
func (m *MockStrategy) Lenses(ctx context.Context, abc domain.ABCRecord, seed int64, settings domain.UserSettings) ([]domain.LensCard, error) {
	m.wait(ctx)
	return MockLenses(seed, settings.Language), nil
}

// Actions implements Strategy.
func (m *MockStrategy) Actions(ctx context.Context, lensID string, seed int64, settings domain.UserSettings) ([]domain.MicroAction, error) {
	m.wait(ctx)
	return MockActions(seed, settings.Language), nil
}

// Emotion implements Strategy.
func (m *MockStrategy) Emotion(ctx context.Context, text string, settings domain.UserSettings) (domain.Emotion, error) {
	return ClassifyByKeywords(text, settings.Language), nil
}

// ChatTurn implements Strategy. The mock has no lines of its own; hosts use
// their scripted dialogue instead.
func (m *MockStrategy) ChatTurn(ctx context.Context, transcript []domain.ChatMessage, stage domain.ChatStage, settings domain.UserSettings) (string, error) {
	return "", domain.ErrNoContent
}

// wait sleeps for Delay or until ctx is done. Content is produced either way;
// a closed flow simply discards it.
func (m *MockStrategy) wait(ctx context.Context) {
	if m.Delay <= 0 {
		return
	}
	t := time.NewTimer(m.Delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// MockLenses returns the deterministic lens batch for seed.
// Slot k draws its template with SeededRandom(seed + k).
func MockLenses(seed int64, lang domain.Language) []domain.LensCard {
	bank := lensBank[bankLanguage(lang)]
	cards := make([]domain.LensCard, 0, domain.CardBatchSize)

	for i, slot := range domain.LensSlots {
		templates := bank[slot.Type]
		t := lensTemplate{Title: "Perspective", Description: "Look at it differently."}
		if len(templates) > 0 {
			t = templates[pick(seed+int64(i), len(templates))]
		}
		cards = append(cards, domain.LensCard{
			ID:          fmt.Sprintf("lens-%d-%d", i, seed),
			Title:       t.Title,
			Description: t.Description,
			Type:        slot.Type,
			Color:       slot.Color,
		})
	}
	return cards
}

// MockActions returns the deterministic micro-action batch for seed.
// The bank is shuffled with Fisher-Yates, swap j drawing SeededRandom(seed + j),
// and the first three entries are kept.
func MockActions(seed int64, lang domain.Language) []domain.MicroAction {
	bank := append([]actionTemplate(nil), actionBank[bankLanguage(lang)]...)

	for j, i := 0, len(bank)-1; i > 0; j, i = j+1, i-1 {
		k := pick(seed+int64(j), i+1)
		bank[i], bank[k] = bank[k], bank[i]
	}

	n := min(domain.CardBatchSize, len(bank))
	actions := make([]domain.MicroAction, 0, n)
	for i, t := range bank[:n] {
		actions = append(actions, domain.MicroAction{
			ID:          fmt.Sprintf("action-%d-%d", i, seed),
			Title:       t.Title,
			Description: t.Description,
			Duration:    t.Duration,
		})
	}
	return actions
}
