package domain

// Language is one of the supported interface languages.
type Language string

const (
	LangEnglish  Language = "en"
	LangChinese  Language = "zh"
	LangJapanese Language = "ja"
)

// Name returns the English name of the language, as used in prompts.
func (l Language) Name() string {
	switch l {
	case LangChinese:
		return "Chinese"
	case LangJapanese:
		return "Japanese"
	default:
		return "English"
	}
}

// Tone selects the voice of scripted lines.
type Tone string

const (
	ToneFunny        Tone = "funny"
	ToneGentle       Tone = "gentle"
	ToneProfessional Tone = "professional"
)

// AIProvider selects the content generation backend.
type AIProvider string

const (
	ProviderMock     AIProvider = "mock"
	ProviderDeepSeek AIProvider = "deepseek"
	ProviderGemini   AIProvider = "gemini"
)

// UserSettings is supplied by the host and read-only to the engine.
type UserSettings struct {
	Nickname       string     `json:"nickname"`
	VoiceEnabled   bool       `json:"voiceEnabled"`
	MorningRoutine bool       `json:"morningRoutine"`
	Tone           Tone       `json:"tone"`
	HasOnboarded   bool       `json:"hasOnboarded"`
	DailyLimit     int        `json:"dailyLimit"`
	Language       Language   `json:"language"`
	AIProvider     AIProvider `json:"aiProvider"`
	APIKey         string     `json:"apiKey"`
	APIURL         string     `json:"apiUrl"`
	APIModel       string     `json:"apiModel"`
}

// DefaultSettings returns the settings used for a fresh install.
func DefaultSettings() UserSettings {
	return UserSettings{
		Nickname:   "Friend",
		Tone:       ToneFunny,
		DailyLimit: 3,
		Language:   LangChinese,
		AIProvider: ProviderMock,
		APIURL:     "https://api.deepseek.com",
		APIModel:   "deepseek-chat",
	}
}

// AIEnabled reports whether a remote provider is configured with credentials.
func (s UserSettings) AIEnabled() bool {
	return s.AIProvider != "" && s.AIProvider != ProviderMock && s.APIKey != ""
}
