package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/mindbuffer/pkg/domain"
)

// Combine fans every event out to all hook sets, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnStageEnter = chain(out.OnStageEnter, h.OnStageEnter)
		out.OnStageLeave = chain(out.OnStageLeave, h.OnStageLeave)
		out.OnGenerate = chain(out.OnGenerate, h.OnGenerate)
		out.OnSessionComplete = chain(out.OnSessionComplete, h.OnSessionComplete)
	}
	return out
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// LoggingHooks logs every lifecycle event at debug level, fallbacks at info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_enter", "stage", e.Stage, "chat_step", e.ChatStep)
		},
		OnStageLeave: func(ctx context.Context, e *domain.StageEvent) {
			logger.DebugContext(ctx, "stage_leave", "stage", e.Stage, "chat_step", e.ChatStep)
		},
		OnGenerate: func(ctx context.Context, e *domain.GenerationEvent) {
			level := slog.LevelDebug
			if e.Fallback {
				level = slog.LevelInfo
			}
			logger.Log(ctx, level, "generate",
				"kind", e.Kind,
				"source", e.Source,
				"fallback", e.Fallback,
				"duration", e.Duration,
			)
		},
		OnSessionComplete: func(ctx context.Context, e *domain.SessionEvent) {
			logger.InfoContext(ctx, "session_complete",
				"session_id", e.SessionID,
				"growth", e.GrowthValue,
				"duration_seconds", e.Duration,
			)
		},
	}
}
