package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnStageEnter(ctx, &domain.StageEvent{Stage: "LENS"})
	hooks.OnStageEnter(ctx, &domain.StageEvent{Stage: "LENS"})
	hooks.OnGenerate(ctx, &domain.GenerationEvent{Kind: domain.KindLenses, Source: "mock", Fallback: true, Duration: time.Second})
	hooks.OnSessionComplete(ctx, &domain.SessionEvent{SessionID: "s1", GrowthValue: 90})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StageEnters.WithLabelValues("LENS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("lenses", "mock", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCompleted))
	assert.Equal(t, 1, testutil.CollectAndCount(m.GenerationDuration))
}

func TestMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{OnStageEnter: func(context.Context, *domain.StageEvent) { order = append(order, "a") }}
	b := domain.LifecycleHooks{
		OnStageEnter:      func(context.Context, *domain.StageEvent) { order = append(order, "b") },
		OnSessionComplete: func(context.Context, *domain.SessionEvent) { order = append(order, "done") },
	}

	h := observability.Combine(a, domain.LifecycleHooks{}, b)
	h.OnStageEnter(context.Background(), &domain.StageEvent{})
	h.OnSessionComplete(context.Background(), &domain.SessionEvent{})

	assert.Equal(t, []string{"a", "b", "done"}, order)
	assert.Nil(t, h.OnGenerate)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := observability.LoggingHooks(logger)
	ctx := context.Background()

	h.OnGenerate(ctx, &domain.GenerationEvent{Kind: domain.KindActions, Source: "ai"})
	assert.Empty(t, buf.String())

	h.OnGenerate(ctx, &domain.GenerationEvent{Kind: domain.KindActions, Source: "mock", Fallback: true})
	assert.Contains(t, buf.String(), "fallback=true")

	h.OnSessionComplete(ctx, &domain.SessionEvent{SessionID: "s1", GrowthValue: 80})
	assert.Contains(t, buf.String(), "session_id=s1")
}
