package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageEnter      EventType = "stage_enter"
	EventStageLeave      EventType = "stage_leave"
	EventGenerate        EventType = "generate"
	EventSessionComplete EventType = "session_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StageEvent represents entry or exit from a flow stage.
type StageEvent struct {
	EventBase
	Stage    string    `json:"stage"`
	ChatStep ChatStage `json:"chat_step,omitempty"`
}

// GenerationKind names what a generation call produced.
type GenerationKind string

const (
	KindLenses   GenerationKind = "lenses"
	KindActions  GenerationKind = "actions"
	KindEmotion  GenerationKind = "emotion"
	KindChatTurn GenerationKind = "chat_turn"
)

// GenerationEvent describes a finished generation call.
type GenerationEvent struct {
	EventBase
	Kind     GenerationKind `json:"kind"`
	Source   string         `json:"source"` // "ai", "mock" or "cache"
	Fallback bool           `json:"fallback,omitempty"`
	Duration time.Duration  `json:"duration"`
	Err      string         `json:"err,omitempty"`
}

// SessionEvent is emitted once a session was archived.
type SessionEvent struct {
	EventBase
	SessionID   string `json:"session_id"`
	GrowthValue int    `json:"growth_value"`
	Duration    int    `json:"duration_seconds"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStageEnter      func(context.Context, *StageEvent)
	OnStageLeave      func(context.Context, *StageEvent)
	OnGenerate        func(context.Context, *GenerationEvent)
	OnSessionComplete func(context.Context, *SessionEvent)
}
