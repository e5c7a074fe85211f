package generator

import (
	"strings"

	"github.com/aretw0/mindbuffer/pkg/domain"
)

// emotionKeywords is checked in domain.Emotions order; narrative has no keywords.
var emotionKeywords = map[domain.Language]map[domain.Emotion][]string{
	domain.LangEnglish: {
		domain.EmotionAnger:          {"angry", "furious", "enraged", "i hate", "annoyed", "yelled", "shouted", "pissed"},
		domain.EmotionAnxiety:        {"anxious", "worried", "worry", "nervous", "scared", "afraid", "panic", "stress"},
		domain.EmotionDisappointment: {"disappointed", "let down", "failed", "sad", "regret", "hopeless"},
		domain.EmotionCalm:           {"calm", "peaceful", "relaxed", "quiet", "breathe"},
		domain.EmotionEncouragement:  {"proud", "well done", "great job", "keep going", "believe in", "brave"},
		domain.EmotionPhilosophy:     {"life is", "meaning", "growth", "lesson", "wisdom", "patience"},
	},
	domain.LangChinese: {
		domain.EmotionAnger:          {"生气", "愤怒", "气死", "发火", "吼", "烦死"},
		domain.EmotionAnxiety:        {"焦虑", "担心", "紧张", "害怕", "不安", "压力"},
		domain.EmotionDisappointment: {"失望", "难过", "伤心", "失败", "沮丧"},
		domain.EmotionCalm:           {"平静", "冷静", "放松", "安静", "淡定"},
		domain.EmotionEncouragement:  {"加油", "骄傲", "真棒", "相信你", "勇敢"},
		domain.EmotionPhilosophy:     {"人生", "意义", "成长", "道理", "智慧", "耐心"},
	},
	domain.LangJapanese: {
		domain.EmotionAnger:          {"怒", "腹が立つ", "ムカつく", "イライラ", "キレ"},
		domain.EmotionAnxiety:        {"不安", "心配", "緊張", "怖い", "焦"},
		domain.EmotionDisappointment: {"がっかり", "残念", "悲しい", "失望", "落ち込"},
		domain.EmotionCalm:           {"穏やか", "落ち着", "リラックス", "静か"},
		domain.EmotionEncouragement:  {"頑張", "誇り", "すごい", "信じ", "えらい"},
		domain.EmotionPhilosophy:     {"人生", "意味", "成長", "教訓", "知恵", "忍耐"},
	},
}

var keywordLanguages = []domain.Language{domain.LangEnglish, domain.LangChinese, domain.LangJapanese}

// ClassifyByKeywords labels text by substring match, checking the active
// language first. It returns domain.EmotionNarrative when nothing matches.
func ClassifyByKeywords(text string, lang domain.Language) domain.Emotion {
	lower := strings.ToLower(text)

	order := []domain.Language{bankLanguage(lang)}
	for _, l := range keywordLanguages {
		if l != order[0] {
			order = append(order, l)
		}
	}

	for _, l := range order {
		table := emotionKeywords[l]
		for _, emotion := range domain.Emotions {
			for _, kw := range table[emotion] {
				if strings.Contains(lower, kw) {
					return emotion
				}
			}
		}
	}
	return domain.EmotionNarrative
}
