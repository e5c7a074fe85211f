package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
)

// ErrInvalidResponse is returned when a completion does not satisfy the
// output contract of the request.
var ErrInvalidResponse = errors.New("invalid completion response")

// AIStrategy generates content through a remote completion endpoint.
type AIStrategy struct {
	completer ports.Completer
	cache     *resultCache
}

// NewAIStrategy creates an uncached strategy over the given completer.
func NewAIStrategy(c ports.Completer) *AIStrategy {
	return &AIStrategy{completer: c}
}

// Name implements Strategy.
func (a *AIStrategy) Name() string { return "ai" }

type lensPayload struct {
	Lenses []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"lenses"`
}

// Lenses implements Strategy.
func (a *AIStrategy) Lenses(ctx context.Context, abc domain.ABCRecord, seed int64, settings domain.UserSettings) ([]domain.LensCard, error) {
	key := cacheKey(domain.KindLenses, settings, seed, abc.A, abc.B, abc.C)
	if cards, ok := a.cache.lenses(key); ok {
		return cards, nil
	}

	system, user := lensPrompts(abc, settings.Language)
	var payload lensPayload
	if err := a.completeJSON(ctx, system, user, &payload); err != nil {
		return nil, err
	}
	if len(payload.Lenses) != domain.CardBatchSize {
		return nil, fmt.Errorf("%w: expected %d lenses, got %d", ErrInvalidResponse, domain.CardBatchSize, len(payload.Lenses))
	}

	cards := make([]domain.LensCard, 0, domain.CardBatchSize)
	for i, l := range payload.Lenses {
		t := domain.LensType(strings.ToLower(strings.TrimSpace(l.Type)))
		if l.Title == "" || l.Description == "" || !t.Valid() {
			return nil, fmt.Errorf("%w: lens %d is incomplete", ErrInvalidResponse, i)
		}
		cards = append(cards, domain.LensCard{
			ID:          fmt.Sprintf("lens-ai-%d-%d", i, seed),
			Title:       l.Title,
			Description: l.Description,
			Type:        t,
			Color:       domain.LensSlots[i].Color,
		})
	}

	a.cache.add(key, cards)
	return cards, nil
}

type actionPayload struct {
	Actions []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Duration    string `json:"duration"`
	} `json:"actions"`
}

// Actions implements Strategy.
func (a *AIStrategy) Actions(ctx context.Context, lensID string, seed int64, settings domain.UserSettings) ([]domain.MicroAction, error) {
	key := cacheKey(domain.KindActions, settings, seed, lensID)
	if actions, ok := a.cache.actions(key); ok {
		return actions, nil
	}

	system, user := actionPrompts(lensID, settings.Language)
	var payload actionPayload
	if err := a.completeJSON(ctx, system, user, &payload); err != nil {
		return nil, err
	}
	if len(payload.Actions) != domain.CardBatchSize {
		return nil, fmt.Errorf("%w: expected %d actions, got %d", ErrInvalidResponse, domain.CardBatchSize, len(payload.Actions))
	}

	actions := make([]domain.MicroAction, 0, domain.CardBatchSize)
	for i, act := range payload.Actions {
		if act.Title == "" || act.Description == "" || act.Duration == "" {
			return nil, fmt.Errorf("%w: action %d is incomplete", ErrInvalidResponse, i)
		}
		actions = append(actions, domain.MicroAction{
			ID:          fmt.Sprintf("action-ai-%d-%d", i, seed),
			Title:       act.Title,
			Description: act.Description,
			Duration:    act.Duration,
		})
	}

	a.cache.add(key, actions)
	return actions, nil
}

// Emotion implements Strategy.
func (a *AIStrategy) Emotion(ctx context.Context, text string, settings domain.UserSettings) (domain.Emotion, error) {
	system, user := emotionPrompts(text, settings.Language)
	var payload struct {
		Emotion string `json:"emotion"`
	}
	if err := a.completeJSON(ctx, system, user, &payload); err != nil {
		return "", err
	}

	e := domain.Emotion(strings.ToLower(strings.TrimSpace(payload.Emotion)))
	if !e.Valid() {
		return "", fmt.Errorf("%w: unknown emotion %q", ErrInvalidResponse, payload.Emotion)
	}
	return e, nil
}

// ChatTurn implements Strategy.
func (a *AIStrategy) ChatTurn(ctx context.Context, transcript []domain.ChatMessage, stage domain.ChatStage, settings domain.UserSettings) (string, error) {
	system, user := chatPrompts(transcript, stage, settings)
	text, err := a.completer.Complete(ctx, ports.CompletionRequest{System: system, User: user})
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty chat turn", ErrInvalidResponse)
	}
	if n := wordCount(text); n > maxChatWords {
		return "", fmt.Errorf("%w: chat turn has %d words", ErrInvalidResponse, n)
	}
	return text, nil
}

func (a *AIStrategy) completeJSON(ctx context.Context, system, user string, out any) error {
	content, err := a.completer.Complete(ctx, ports.CompletionRequest{System: system, User: user, JSON: true})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// extractJSON strips a markdown code fence some models wrap around JSON.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
