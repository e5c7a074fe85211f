package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionServer answers every chat completion with content.
func completionServer(t *testing.T, status int, content string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if status != http.StatusOK {
			http.Error(w, `{"error":"invalid api key"}`, status)
			return
		}
		resp := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func aiSettings(url string) domain.UserSettings {
	s := domain.DefaultSettings()
	s.Language = domain.LangEnglish
	s.AIProvider = domain.ProviderDeepSeek
	s.APIKey = "sk-test"
	s.APIURL = url + "/v1"
	return s
}

type recordedEvents struct {
	mu     sync.Mutex
	events []*domain.GenerationEvent
}

func (r *recordedEvents) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGenerate: func(_ context.Context, ev *domain.GenerationEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, ev)
		},
	}
}

func (r *recordedEvents) last() *domain.GenerationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(append([]Option{WithMockDelay(0)}, opts...)...)
	require.NoError(t, err)
	return g
}

func TestGenerator_MockPath(t *testing.T) {
	rec := &recordedEvents{}
	g := newTestGenerator(t, WithLifecycleHooks(rec.hooks()))
	settings := domain.DefaultSettings()
	settings.Language = domain.LangEnglish

	cards := g.Lenses(context.Background(), domain.ABCRecord{A: "a", B: "b", C: "c"}, 42, settings)
	assert.Equal(t, MockLenses(42, domain.LangEnglish), cards)

	ev := rec.last()
	require.NotNil(t, ev)
	assert.Equal(t, domain.KindLenses, ev.Kind)
	assert.Equal(t, "mock", ev.Source)
	assert.False(t, ev.Fallback)
}

func TestGenerator_AILenses(t *testing.T) {
	content := `{"lenses":[
		{"title":"Root Cause","description":"What boundary was crossed?","type":"growth"},
		{"title":"Bigger Picture","description":"Will this matter next year?","type":"system"},
		{"title":"Their Shoes","description":"What pressure are they under?","type":"relationship"}]}`
	srv, calls := completionServer(t, http.StatusOK, content)

	rec := &recordedEvents{}
	g := newTestGenerator(t, WithLifecycleHooks(rec.hooks()))
	settings := aiSettings(srv.URL)

	cards := g.Lenses(context.Background(), domain.ABCRecord{A: "boss yelled", B: "I'm useless", C: "froze"}, 9, settings)
	require.Len(t, cards, 3)
	assert.Equal(t, "lens-ai-0-9", cards[0].ID)
	assert.Equal(t, "Root Cause", cards[0].Title)
	assert.Equal(t, "purple", cards[1].Color)
	assert.Equal(t, domain.LensRelationship, cards[2].Type)
	assert.Equal(t, "ai", rec.last().Source)

	// Same seed is served from the cache.
	again := g.Lenses(context.Background(), domain.ABCRecord{A: "boss yelled", B: "I'm useless", C: "froze"}, 9, settings)
	assert.Equal(t, cards, again)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, g.cache.Len())
}

func TestGenerator_AIActionsWithFence(t *testing.T) {
	content := "```json\n" + `{"actions":[
		{"title":"Box Breath","description":"4-4-4-4","duration":"1 min"},
		{"title":"Walk","description":"Walk around the block","duration":"5 min"},
		{"title":"Write","description":"Write one sentence","duration":"2 min"}]}` + "\n```"
	srv, _ := completionServer(t, http.StatusOK, content)

	g := newTestGenerator(t)
	actions := g.Actions(context.Background(), "lens-ai-0-9", 11, aiSettings(srv.URL))
	require.Len(t, actions, 3)
	assert.Equal(t, "action-ai-2-11", actions[2].ID)
	assert.Equal(t, "Write", actions[2].Title)
}

func TestGenerator_FallsBackToMock(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"invalid key", http.StatusUnauthorized, ""},
		{"malformed json", http.StatusOK, "not json at all"},
		{"wrong count", http.StatusOK, `{"lenses":[{"title":"x","description":"y","type":"growth"}]}`},
		{"unknown type", http.StatusOK, `{"lenses":[
			{"title":"a","description":"a","type":"growth"},
			{"title":"b","description":"b","type":"cosmic"},
			{"title":"c","description":"c","type":"relationship"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := completionServer(t, tt.status, tt.content)
			rec := &recordedEvents{}
			g := newTestGenerator(t, WithLifecycleHooks(rec.hooks()))

			cards := g.Lenses(context.Background(), domain.ABCRecord{}, 42, aiSettings(srv.URL))
			assert.Equal(t, MockLenses(42, domain.LangEnglish), cards)

			ev := rec.last()
			require.NotNil(t, ev)
			assert.True(t, ev.Fallback)
			assert.NotEmpty(t, ev.Err)
		})
	}
}

func TestGenerator_FactoryErrorUsesMock(t *testing.T) {
	g := newTestGenerator(t, WithCompleterFactory(func(context.Context, domain.UserSettings) (ports.Completer, error) {
		return nil, errors.New("no network")
	}))
	actions := g.Actions(context.Background(), "lens-0-1", 1, aiSettings("http://unused"))
	assert.Equal(t, MockActions(1, domain.LangEnglish), actions)
}

func TestGenerator_ClassifyEmotion(t *testing.T) {
	t.Run("ai label", func(t *testing.T) {
		srv, _ := completionServer(t, http.StatusOK, `{"emotion":"Calm"}`)
		g := newTestGenerator(t)
		assert.Equal(t, domain.EmotionCalm, g.ClassifyEmotion(context.Background(), "so angry", aiSettings(srv.URL)))
	})

	t.Run("unknown label falls back to keywords", func(t *testing.T) {
		srv, _ := completionServer(t, http.StatusOK, `{"emotion":"rage"}`)
		g := newTestGenerator(t)
		assert.Equal(t, domain.EmotionAnger, g.ClassifyEmotion(context.Background(), "so angry", aiSettings(srv.URL)))
	})

	t.Run("provider error falls back to keywords", func(t *testing.T) {
		srv, _ := completionServer(t, http.StatusInternalServerError, "")
		g := newTestGenerator(t)
		assert.Equal(t, domain.EmotionAnger, g.ClassifyEmotion(context.Background(), "so angry", aiSettings(srv.URL)))
	})
}

func TestGenerator_ChatTurn(t *testing.T) {
	transcript := []domain.ChatMessage{{Sender: domain.SenderUser, Text: "My boss yelled at me"}}

	t.Run("ai line", func(t *testing.T) {
		srv, _ := completionServer(t, http.StatusOK, "  What did you tell yourself right then?  ")
		g := newTestGenerator(t)
		text, ok := g.ChatTurn(context.Background(), transcript, domain.ChatAskBelief, aiSettings(srv.URL))
		assert.True(t, ok)
		assert.Equal(t, "What did you tell yourself right then?", text)
	})

	t.Run("failure", func(t *testing.T) {
		srv, _ := completionServer(t, http.StatusBadGateway, "")
		g := newTestGenerator(t)
		text, ok := g.ChatTurn(context.Background(), transcript, domain.ChatAskBelief, aiSettings(srv.URL))
		assert.False(t, ok)
		assert.Empty(t, text)
	})

	t.Run("mock has no line", func(t *testing.T) {
		g := newTestGenerator(t)
		_, ok := g.ChatTurn(context.Background(), transcript, domain.ChatAskBelief, domain.DefaultSettings())
		assert.False(t, ok)
	})
}

func TestGenerator_CacheDisabled(t *testing.T) {
	g := newTestGenerator(t, WithCacheSize(0))
	assert.Nil(t, g.cache)
	assert.Equal(t, 0, g.cache.Len())
}

type staticCompleter struct {
	out string
}

func (c staticCompleter) Complete(context.Context, ports.CompletionRequest) (string, error) {
	return c.out, nil
}

func TestAIStrategy_ChatTurnLength(t *testing.T) {
	zh := domain.DefaultSettings()
	en := zh
	en.Language = domain.LangEnglish

	tests := []struct {
		name     string
		out      string
		settings domain.UserSettings
		wantErr  bool
	}{
		{"short english", "What went through your mind?", en, false},
		{"long english", strings.Repeat("word ", maxChatWords+1), en, true},
		{"short chinese", "听起来很难受。那一刻你脑子里闪过了什么想法？", zh, false},
		{"long chinese", strings.Repeat("我觉得你应该冷静下来…", 20), zh, true},
		{"long japanese", strings.Repeat("それはとてもつらかったですね", 10), zh, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewAIStrategy(staticCompleter{out: tt.out}).
				ChatTurn(context.Background(), nil, domain.ChatAskBelief, tt.settings)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				assert.Empty(t, text)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.out), text)
		})
	}
}

func TestGenerator_LongChineseChatTurnFallsBack(t *testing.T) {
	g := newTestGenerator(t, WithCompleterFactory(func(context.Context, domain.UserSettings) (ports.Completer, error) {
		return staticCompleter{out: strings.Repeat("我觉得你应该冷静下来…", 20)}, nil
	}))
	s := domain.DefaultSettings()
	s.AIProvider = domain.ProviderDeepSeek
	s.APIKey = "sk-test"

	text, ok := g.ChatTurn(context.Background(), nil, domain.ChatAskBelief, s)
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, wordCount("  "))
	assert.Equal(t, 3, wordCount("one two three"))
	assert.Equal(t, 2, wordCount("你好吗"))
	assert.Equal(t, 3, wordCount("OK 好的 ね"))
}

func TestGenerator_ReusesCompleter(t *testing.T) {
	var built atomic.Int32
	g := newTestGenerator(t, WithCacheSize(0), WithCompleterFactory(func(context.Context, domain.UserSettings) (ports.Completer, error) {
		built.Add(1)
		return staticCompleter{out: "What went through your mind?"}, nil
	}))
	s := aiSettings("http://unused")

	for range 3 {
		_, ok := g.ChatTurn(context.Background(), nil, domain.ChatAskBelief, s)
		require.True(t, ok)
	}
	assert.Equal(t, int32(1), built.Load())

	s.APIKey = "sk-other"
	_, ok := g.ChatTurn(context.Background(), nil, domain.ChatAskBelief, s)
	require.True(t, ok)
	assert.Equal(t, int32(2), built.Load(), "a new key builds a new client")

	s.APIModel = "deepseek-reasoner"
	_, ok = g.ChatTurn(context.Background(), nil, domain.ChatAskBelief, s)
	require.True(t, ok)
	assert.Equal(t, int32(3), built.Load(), "a new model builds a new client")
}

func TestGenerator_FactoryErrorNotCached(t *testing.T) {
	var built atomic.Int32
	g := newTestGenerator(t, WithCompleterFactory(func(context.Context, domain.UserSettings) (ports.Completer, error) {
		if built.Add(1) == 1 {
			return nil, errors.New("no network")
		}
		return staticCompleter{out: "What went through your mind?"}, nil
	}))
	s := aiSettings("http://unused")

	_, ok := g.ChatTurn(context.Background(), nil, domain.ChatAskBelief, s)
	assert.False(t, ok)
	_, ok = g.ChatTurn(context.Background(), nil, domain.ChatAskBelief, s)
	assert.True(t, ok)
	assert.Equal(t, int32(2), built.Load())
}
