package generator

import (
	"context"

	"github.com/aretw0/mindbuffer/pkg/domain"
)

// Strategy is one way of generating flow content.
// Unlike ports.ContentGenerator, a Strategy reports failures so the
// Generator can decide to fall back.
type Strategy interface {
	// Name identifies the strategy in events and logs.
	Name() string
	Lenses(ctx context.Context, abc domain.ABCRecord, seed int64, settings domain.UserSettings) ([]domain.LensCard, error)
	Actions(ctx context.Context, lensID string, seed int64, settings domain.UserSettings) ([]domain.MicroAction, error)
	Emotion(ctx context.Context, text string, settings domain.UserSettings) (domain.Emotion, error)
	ChatTurn(ctx context.Context, transcript []domain.ChatMessage, stage domain.ChatStage, settings domain.UserSettings) (string, error)
}
