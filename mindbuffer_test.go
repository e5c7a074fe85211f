package mindbuffer_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/pkg/adapters/memory"
	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/flow"
	"github.com/aretw0/mindbuffer/pkg/generator"
	"github.com/aretw0/mindbuffer/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoach(t *testing.T, opts ...mindbuffer.Option) *mindbuffer.Coach {
	t.Helper()
	base := []mindbuffer.Option{
		mindbuffer.WithGeneratorOptions(generator.WithMockDelay(0)),
		mindbuffer.WithFlowOptions(flow.WithDropFunc(func() int { return 20 })),
	}
	coach, err := mindbuffer.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = coach.Close(context.Background()) })
	return coach
}

func runSession(t *testing.T, coach *mindbuffer.Coach) *domain.SessionData {
	t.Helper()
	ctx := context.Background()

	id, f, err := coach.Sessions.Open(ctx, 80)
	require.NoError(t, err)
	require.NoError(t, f.Submit(ctx, "I failed the mock exam"))
	require.NoError(t, f.Submit(ctx, "I will never get in"))
	require.NoError(t, f.Submit(ctx, "I skipped dinner"))
	require.NoError(t, f.GenerateLenses(ctx))

	lens := f.Stage().(flow.Lens)
	require.Len(t, lens.Cards, 3)
	require.NoError(t, f.SelectLens(ctx, lens.Cards[0].ID))

	action := f.Stage().(flow.Action)
	require.Len(t, action.Cards, 3)
	require.NoError(t, f.SelectAction(ctx, action.Cards[1].ID))

	record, err := coach.Sessions.Complete(ctx, id)
	require.NoError(t, err)
	return record
}

func TestCoach_SessionIsArchived(t *testing.T) {
	coach := newCoach(t)
	ctx := context.Background()

	record := runSession(t, coach)
	assert.Equal(t, 80, record.HRVStart)
	assert.Equal(t, 60, record.HRVEnd)
	assert.True(t, record.Completed)

	sessions, err := coach.Archive.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, record.ID, sessions[0].ID)

	_, active := coach.Sessions.Active()
	assert.False(t, active)
}

func TestCoach_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	coach := newCoach(t, mindbuffer.WithLifecycleHooks(metrics.Hooks()))

	runSession(t, coach)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SessionsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StageEnters.WithLabelValues(flow.StageResult)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Generations.WithLabelValues("lenses", "mock", "false")))
}

func TestCoach_ExportAndReset(t *testing.T) {
	store := memory.NewStore()
	defaults := domain.DefaultSettings()
	defaults.APIKey = "sk-secret"
	coach := newCoach(t, mindbuffer.WithStore(store), mindbuffer.WithSettingsDefaults(defaults))
	ctx := context.Background()

	runSession(t, coach)

	data, err := coach.Export(ctx)
	require.NoError(t, err)
	var exported struct {
		Settings domain.UserSettings  `json:"settings"`
		Sessions []domain.SessionData `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Len(t, exported.Sessions, 1)
	assert.Equal(t, "***", exported.Settings.APIKey)

	require.NoError(t, coach.Reset(ctx))
	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCoach_ParentZone(t *testing.T) {
	coach := newCoach(t)
	ctx := context.Background()

	stats, err := coach.FinishCalmPod(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ParentStats{CalmCount: 1, AvoidedMinutes: 10}, stats)

	stats, err = coach.AvoidConflict(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ParentStats{CalmCount: 1, AvoidedMinutes: 10, ConflictsAvoided: 1}, stats)

	entry, err := coach.WriteJournal(ctx, "so angry at my brother")
	require.NoError(t, err)
	assert.Equal(t, domain.EmotionAnger, entry.Emotion)

	entries, err := coach.Journal.OnDay(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
