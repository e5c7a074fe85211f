package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestChatStageNext(t *testing.T) {
	tests := []struct {
		in, want ChatStage
	}{
		{ChatAskEvent, ChatAskBelief},
		{ChatAskBelief, ChatAskConsequence},
		{ChatAskConsequence, ChatDone},
		{ChatDone, ChatDone},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestEmotionValid(t *testing.T) {
	for _, e := range Emotions {
		if !e.Valid() {
			t.Errorf("%s should be valid", e)
		}
	}
	for _, e := range []Emotion{"", "joy", "Anger"} {
		if e.Valid() {
			t.Errorf("%q should be invalid", e)
		}
	}
}

func TestThemeName(t *testing.T) {
	tests := []struct {
		name string
		a    string
		lang Language
		want string
	}{
		{"english truncates to ten runes", "My boss yelled at me", LangEnglish, `The "My boss ye..." Incident`},
		{"short event kept whole", "Late", LangEnglish, `The "Late..." Incident`},
		{"chinese truncates to five runes", "老板当众批评了我", LangChinese, "关于“老板当众批...”的小风波"},
		{"japanese", "電車が遅れた", LangJapanese, "「電車が遅れ...」の一件"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThemeName(ABCRecord{A: tt.a}, tt.lang); got != tt.want {
				t.Errorf("ThemeName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScriptLineFor(t *testing.T) {
	s := DefaultScript()
	tests := []struct {
		stage ChatStage
		tone  Tone
		want  string
	}{
		{ChatAskEvent, ToneFunny, ""},
		{ChatAskBelief, ToneFunny, s.AskBeliefFunny},
		{ChatAskBelief, ToneGentle, s.AskBelief},
		{ChatAskConsequence, ToneProfessional, s.AskConsequence},
		{ChatDone, ToneFunny, s.Transition},
	}
	for _, tt := range tests {
		if got := s.LineFor(tt.stage, tt.tone); got != tt.want {
			t.Errorf("LineFor(%s, %s) = %q, want %q", tt.stage, tt.tone, got, tt.want)
		}
	}
	if s.Intro(ToneFunny) != s.IntroFunny || s.Intro(ToneGentle) != s.IntroNormal {
		t.Error("Intro did not follow the tone")
	}
}

func TestAIEnabled(t *testing.T) {
	tests := []struct {
		name string
		s    UserSettings
		want bool
	}{
		{"defaults", DefaultSettings(), false},
		{"mock with key", UserSettings{AIProvider: ProviderMock, APIKey: "k"}, false},
		{"deepseek without key", UserSettings{AIProvider: ProviderDeepSeek}, false},
		{"deepseek with key", UserSettings{AIProvider: ProviderDeepSeek, APIKey: "k"}, true},
		{"gemini with key", UserSettings{AIProvider: ProviderGemini, APIKey: "k"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.AIEnabled(); got != tt.want {
				t.Errorf("AIEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanInput(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"trims", "  hello \n", "hello", nil},
		{"keeps newlines and tabs", "a\n\tb", "a\n\tb", nil},
		{"strips escape codes", "\x1b[31mred\x00", "[31mred", nil},
		{"blank", " \t\n", "", ErrEmptyInput},
		{"only control chars", "\x07\x00", "", ErrEmptyInput},
		{"invalid utf8", "bad\xff", "", ErrInvalidUTF8},
		{"too large", strings.Repeat("x", MaxInputSize+1), "", ErrInputTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanInput(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CleanInput() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CleanInput() = %q, want %q", got, tt.want)
			}
		})
	}
}
