package domain

// Emotion is the closed set of labels a journal sentence can be classified as.
type Emotion string

const (
	EmotionAnger          Emotion = "anger"
	EmotionAnxiety        Emotion = "anxiety"
	EmotionDisappointment Emotion = "disappointment"
	EmotionCalm           Emotion = "calm"
	EmotionEncouragement  Emotion = "encouragement"
	EmotionPhilosophy     Emotion = "philosophy"
	EmotionNarrative      Emotion = "narrative"
)

// Emotions lists every label in a stable order.
var Emotions = []Emotion{
	EmotionAnger,
	EmotionAnxiety,
	EmotionDisappointment,
	EmotionCalm,
	EmotionEncouragement,
	EmotionPhilosophy,
	EmotionNarrative,
}

// Valid reports whether e is part of the closed set.
func (e Emotion) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

// DailySentence is a one-line parent journal entry.
type DailySentence struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Text      string  `json:"text"`
	Emotion   Emotion `json:"emotion"`
}
