package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/internal/logging"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/flow"
	"github.com/aretw0/mindbuffer/pkg/generator"
	"github.com/aretw0/mindbuffer/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	coach, err := mindbuffer.New(
		mindbuffer.WithGeneratorOptions(generator.WithMockDelay(0)),
		mindbuffer.WithFlowOptions(flow.WithDropFunc(func() int { return 20 })),
	)
	require.NoError(t, err)
	srv := httptest.NewServer(NewHandler(coach, opts...))
	t.Cleanup(func() {
		_ = coach.Close(context.Background())
		srv.Close()
	})
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestFlowLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var view FlowView
	require.Equal(t, http.StatusCreated, call(t, srv, "POST", "/flows", OpenFlowRequest{InitialStress: 70}, &view))
	id := view.ID
	assert.Equal(t, flow.StageChat, view.Stage)
	assert.Equal(t, domain.ChatAskEvent, view.ChatStep)

	for _, text := range []string{"lost my keys", "I am careless", "late for class"} {
		require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/messages", MessageRequest{Text: text}, &view))
	}
	assert.Equal(t, domain.ChatDone, view.ChatStep)

	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/lenses", nil, &view))
	require.Equal(t, flow.StageLens, view.Stage)
	require.Len(t, view.Lenses, 3)

	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/lenses/"+view.Lenses[2].ID, nil, &view))
	require.Equal(t, flow.StageAction, view.Stage)
	require.Len(t, view.Actions, 3)

	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/actions/shuffle", nil, &view))
	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/actions/"+view.Actions[0].ID, nil, &view))
	assert.Equal(t, flow.StageResult, view.Stage)
	assert.Equal(t, 50, view.Final)

	var record domain.SessionData
	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/finish", nil, &record))
	assert.Equal(t, id, record.ID)
	assert.Equal(t, 1, record.RejectedActionCount)

	var sessions []domain.SessionData
	require.Equal(t, http.StatusOK, call(t, srv, "GET", "/sessions", nil, &sessions))
	assert.Len(t, sessions, 1)

	var got domain.SessionData
	require.Equal(t, http.StatusOK, call(t, srv, "GET", "/sessions/"+id, nil, &got))
	assert.Equal(t, record.GrowthValue, got.GrowthValue)

	assert.Equal(t, http.StatusNotFound, call(t, srv, "GET", "/flows/"+id, nil, nil))
}

func TestFlowErrors(t *testing.T) {
	srv := newTestServer(t)

	var view FlowView
	require.Equal(t, http.StatusCreated, call(t, srv, "POST", "/flows", OpenFlowRequest{InitialStress: 50}, &view))
	id := view.ID

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"second flow", "POST", "/flows", OpenFlowRequest{InitialStress: 50}, http.StatusConflict},
		{"stress out of range", "POST", "/flows", OpenFlowRequest{InitialStress: 101}, http.StatusBadRequest},
		{"empty message", "POST", "/flows/" + id + "/messages", MessageRequest{Text: "  "}, http.StatusBadRequest},
		{"lenses before chat ends", "POST", "/flows/" + id + "/lenses", nil, http.StatusConflict},
		{"finish too early", "POST", "/flows/" + id + "/finish", nil, http.StatusConflict},
		{"unknown flow", "GET", "/flows/nope", nil, http.StatusNotFound},
		{"unknown session", "GET", "/sessions/nope", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(t, srv, tt.method, tt.path, tt.body, nil))
		})
	}

	assert.Equal(t, http.StatusNoContent, call(t, srv, "DELETE", "/flows/"+id, nil, nil))
	assert.Equal(t, http.StatusCreated, call(t, srv, "POST", "/flows", OpenFlowRequest{InitialStress: 50}, &view))
}

func TestRefreshLimitNotice(t *testing.T) {
	srv := newTestServer(t)

	var view FlowView
	require.Equal(t, http.StatusCreated, call(t, srv, "POST", "/flows", OpenFlowRequest{InitialStress: 50}, &view))
	id := view.ID
	for _, text := range []string{"a", "b", "c"} {
		require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/messages", MessageRequest{Text: text}, &view))
	}
	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/lenses", nil, &view))

	for range flow.MaxLensRefreshes {
		require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/lenses/refresh", nil, &view))
		assert.Empty(t, view.Notice)
	}
	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/lenses/refresh", nil, &view))
	assert.Equal(t, domain.DefaultScript().LensesLimit, view.Notice)
	assert.Len(t, view.Lenses, 3)
}

func TestSettingsAndExport(t *testing.T) {
	srv := newTestServer(t)

	var settings domain.UserSettings
	require.Equal(t, http.StatusOK, call(t, srv, "PATCH", "/settings", map[string]any{"language": "en", "apiKey": "sk-1"}, &settings))
	assert.Equal(t, domain.LangEnglish, settings.Language)
	assert.Equal(t, "***", settings.APIKey)

	resp, err := srv.Client().Get(srv.URL + "/export?secrets=true")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"apiKey": "sk-1"`)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "mindbuffer-export.json")

	assert.Equal(t, http.StatusBadRequest, call(t, srv, "PATCH", "/settings", map[string]any{"dailyLimit": []int{1}}, nil))
}

func TestParentZone(t *testing.T) {
	srv := newTestServer(t)

	var entry domain.DailySentence
	require.Equal(t, http.StatusCreated, call(t, srv, "POST", "/journal", MessageRequest{Text: "I am proud of you"}, &entry))
	assert.Equal(t, domain.EmotionEncouragement, entry.Emotion)

	var entries []domain.DailySentence
	today := time.Now().Format(time.DateOnly)
	require.Equal(t, http.StatusOK, call(t, srv, "GET", "/journal?day="+today, nil, &entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, http.StatusBadRequest, call(t, srv, "GET", "/journal?day=yesterday", nil, nil))

	var stats domain.ParentStats
	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/parent/calm", nil, &stats))
	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/parent/conflicts", nil, &stats))
	require.Equal(t, http.StatusOK, call(t, srv, "GET", "/parent/stats", nil, &stats))
	assert.Equal(t, domain.ParentStats{CalmCount: 1, AvoidedMinutes: 10, ConflictsAvoided: 1}, stats)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	srv := newTestServer(t, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	require.Equal(t, http.StatusOK, call(t, srv, "GET", "/health", nil, nil))
	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// streamEvents subscribes to the events of flow id and returns a func that
// blocks until a line with prefix arrives.
func streamEvents(t *testing.T, srv *httptest.Server, id string) func(prefix string) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + "/flows/" + id + "/events")
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	return func(prefix string) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream ended before %q", prefix)
				if strings.HasPrefix(line, prefix) {
					return
				}
			case <-deadline:
				t.Fatalf("no %q line", prefix)
			}
		}
	}
}

func TestSubscribeEvents(t *testing.T) {
	srv := newTestServer(t)

	var view FlowView
	require.Equal(t, http.StatusCreated, call(t, srv, "POST", "/flows", OpenFlowRequest{InitialStress: 50}, &view))
	id := view.ID

	waitFor := streamEvents(t, srv, id)
	waitFor("event: ping")
	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/messages", MessageRequest{Text: "hello"}, nil))
	waitFor("event: stage")

	require.Equal(t, http.StatusNoContent, call(t, srv, "DELETE", "/flows/"+id, nil, nil))
	waitFor("event: end")
}

func TestSubscribeEvents_OutlivesCountdown(t *testing.T) {
	var skew atomic.Int64
	clock := func() time.Time { return time.Now().Add(time.Duration(skew.Load())) }
	coach, err := mindbuffer.New(
		mindbuffer.WithGeneratorOptions(generator.WithMockDelay(0)),
		mindbuffer.WithFlowOptions(
			flow.WithDropFunc(func() int { return 20 }),
			flow.WithClock(clock),
			flow.WithTickInterval(time.Millisecond),
		),
	)
	require.NoError(t, err)
	srv := httptest.NewServer(NewHandler(coach))
	t.Cleanup(func() {
		_ = coach.Close(context.Background())
		srv.Close()
	})

	var view FlowView
	require.Equal(t, http.StatusCreated, call(t, srv, "POST", "/flows", OpenFlowRequest{InitialStress: 50}, &view))
	id := view.ID
	waitFor := streamEvents(t, srv, id)
	waitFor("event: ping")

	// Run the countdown out. The flow stays active, so the stream must too.
	skew.Store(int64(time.Hour))
	waitFor("event: stage")

	var after FlowView
	require.Equal(t, http.StatusOK, call(t, srv, "GET", "/flows/"+id, nil, &after))
	assert.Equal(t, 0, after.Remaining)

	require.Equal(t, http.StatusOK, call(t, srv, "POST", "/flows/"+id+"/messages", MessageRequest{Text: "still here"}, nil))
	waitFor("event: stage")

	require.Equal(t, http.StatusNoContent, call(t, srv, "DELETE", "/flows/"+id, nil, nil))
	waitFor("event: end")
}

func TestStreamManager_CancelAfterClose(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())
	_, cancel := sm.Subscribe("f1")
	sm.Close("f1")
	_, cancel2 := sm.Subscribe("f1")
	assert.NotPanics(t, cancel)
	assert.Equal(t, 1, sm.Subscribers("f1"))
	cancel2()
	assert.Equal(t, 0, sm.Subscribers("f1"))
}

func TestRequestValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing body", "POST", "/flows", nil, http.StatusBadRequest},
		{"missing field", "POST", "/flows", map[string]any{}, http.StatusBadRequest},
		{"wrong type", "POST", "/flows", map[string]any{"initialStress": "high"}, http.StatusBadRequest},
		{"below range", "POST", "/flows", OpenFlowRequest{InitialStress: -1}, http.StatusBadRequest},
		{"journal without text", "POST", "/journal", map[string]any{"note": "x"}, http.StatusBadRequest},
		{"settings not an object", "PATCH", "/settings", []string{"en"}, http.StatusBadRequest},
		{"secrets not a bool", "GET", "/export?secrets=maybe", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(t, srv, tt.method, tt.path, tt.body, nil))
		})
	}

	// None of the rejected requests opened a flow.
	assert.Equal(t, http.StatusCreated, call(t, srv, "POST", "/flows", OpenFlowRequest{InitialStress: 0}, nil))
}

func TestRejectedBodyIsJSONError(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/flows", "application/json", strings.NewReader(`{"initialStress":500}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body Error
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Error, "initialStress")
}

func TestOpenAPIDocument(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	for _, path := range []string{"/flows", "/flows/{flowID}/finish", "/sessions", "/export", "/settings", "/journal", "/parent/stats"} {
		assert.NotNil(t, doc.Paths.Value(path), path)
	}

	srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "3.0.3", raw["openapi"])

	var info map[string]string
	require.Equal(t, http.StatusOK, call(t, srv, "GET", "/info", nil, &info))
	assert.Equal(t, doc.Info.Version, info["api_version"])
}

func TestUnimplementedServer(t *testing.T) {
	srv := httptest.NewServer(Handler(Unimplemented{}))
	t.Cleanup(srv.Close)
	assert.Equal(t, http.StatusNotImplemented, call(t, srv, "GET", "/flows/abc", nil, nil))
}
