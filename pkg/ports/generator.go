package ports

import (
	"context"

	"github.com/aretw0/mindbuffer/pkg/domain"
)

// ContentGenerator produces the generated content of a rescue flow.
// Implementations never surface transport failures: they degrade to
// deterministic offline content instead.
type ContentGenerator interface {
	// Lenses returns exactly three reframing cards for the record.
	Lenses(ctx context.Context, abc domain.ABCRecord, seed int64, settings domain.UserSettings) []domain.LensCard

	// Actions returns exactly three micro-actions for the chosen lens.
	Actions(ctx context.Context, lensID string, seed int64, settings domain.UserSettings) []domain.MicroAction

	// ClassifyEmotion labels free text with one of domain.Emotions.
	ClassifyEmotion(ctx context.Context, text string, settings domain.UserSettings) domain.Emotion

	// ChatTurn produces the next bot line asking for stage.
	// The boolean is false when the caller must use its scripted line.
	ChatTurn(ctx context.Context, transcript []domain.ChatMessage, stage domain.ChatStage, settings domain.UserSettings) (string, bool)
}

// EmotionClassifier is the subset of ContentGenerator used by the journal.
type EmotionClassifier interface {
	ClassifyEmotion(ctx context.Context, text string, settings domain.UserSettings) domain.Emotion
}
