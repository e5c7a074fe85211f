package generator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/mindbuffer/pkg/domain"
)

// maxChatWords bounds a generated chat line.
const maxChatWords = 60

// cjkRunesPerWord is how many Han, Hiragana or Katakana runes count as one
// word when measuring a chat line.
const cjkRunesPerWord = 2

func lensPrompts(abc domain.ABCRecord, lang domain.Language) (string, string) {
	system := fmt.Sprintf(`You are an expert CBT therapist. You speak %s.
Output strictly in JSON format containing an object with a key "lenses" which is an array of 3 objects.
Each object must have: "title", "description", "type" (one of: "growth", "system", "relationship").
Keep descriptions short and punchy.`, lang.Name())
	user := fmt.Sprintf("Event: %s. Belief: %s. Emotion: %s. Provide 3 reframing perspectives.", abc.A, abc.B, abc.C)
	return system, user
}

func actionPrompts(lensID string, lang domain.Language) (string, string) {
	system := fmt.Sprintf(`You are a behavioral coach. Speak %s.
Output strictly in JSON format containing an object with a key "actions" which is an array of 3 objects.
Each object must have: "title", "description", "duration" (e.g. "2 min").
Actions must be physical or mental micro-steps doable immediately.`, lang.Name())
	user := fmt.Sprintf("Generate 3 micro-actions for a user trying to adopt this perspective (Lens ID: %s).", lensID)
	return system, user
}

func emotionPrompts(text string, lang domain.Language) (string, string) {
	labels := make([]string, len(domain.Emotions))
	for i, e := range domain.Emotions {
		labels[i] = string(e)
	}
	system := fmt.Sprintf(`You classify one-sentence journal entries written by a parent. The entries are usually in %s.
Output strictly in JSON format containing an object with a single key "emotion".
Its value must be exactly one of: %s.
Use "narrative" when the sentence only describes what happened.`, lang.Name(), strings.Join(labels, ", "))
	return system, "Sentence: " + text
}

func chatPrompts(transcript []domain.ChatMessage, stage domain.ChatStage, settings domain.UserSettings) (string, string) {
	var task string
	switch stage {
	case domain.ChatAskBelief:
		task = "Ask what thought or belief went through their mind about the event."
	case domain.ChatAskConsequence:
		task = "Ask how that belief makes them feel emotionally right now."
	default:
		task = "Acknowledge what they shared and tell them you will now look at it from a few different perspectives. Do not offer the perspectives yourself."
	}

	system := fmt.Sprintf(`You are MindBuffer, a warm companion guiding someone through an acute stress moment with the ABC model.
Speak %s. Your tone is %s.
Reply in plain text, under %s, with a single short turn.
Never give advice, a diagnosis or a final answer.
%s`, settings.Language.Name(), settings.Tone, lengthLimit(settings.Language), task)

	var b strings.Builder
	for _, m := range transcript {
		if m.Sender == domain.SenderUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("You: ")
		}
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	return system, b.String()
}

// lengthLimit phrases the chat line cap for the prompt language.
func lengthLimit(lang domain.Language) string {
	switch lang {
	case domain.LangChinese, domain.LangJapanese:
		return fmt.Sprintf("%d characters", maxChatWords*cjkRunesPerWord)
	default:
		return fmt.Sprintf("%d words", maxChatWords)
	}
}

// wordCount measures text in words. Scripts written without spaces count
// cjkRunesPerWord runes as one word, rounded up.
func wordCount(text string) int {
	words, cjk := 0, 0
	for _, field := range strings.Fields(text) {
		spaced := false
		for _, r := range field {
			switch {
			case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana):
				cjk++
			case unicode.IsLetter(r), unicode.IsDigit(r):
				spaced = true
			}
		}
		if spaced {
			words++
		}
	}
	return words + (cjk+cjkRunesPerWord-1)/cjkRunesPerWord
}
