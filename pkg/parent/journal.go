package parent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
	"github.com/google/uuid"
)

// JournalKey is the store key holding the daily sentences.
const JournalKey = "mindbuffer_daily_sentences"

// Journal is the append-only list of daily sentences.
type Journal struct {
	kv         ports.KVStore
	classifier ports.EmotionClassifier
	now        func() time.Time
	newID      func() string
	mu         sync.Mutex
}

// JournalOption configures a Journal.
type JournalOption func(*Journal)

// WithJournalClock sets the time source of entry timestamps.
func WithJournalClock(now func() time.Time) JournalOption {
	return func(j *Journal) {
		j.now = now
	}
}

// WithJournalIDFunc sets how entry IDs are generated.
func WithJournalIDFunc(newID func() string) JournalOption {
	return func(j *Journal) {
		j.newID = newID
	}
}

// NewJournal creates a journal classifying entries with classifier.
func NewJournal(kv ports.KVStore, classifier ports.EmotionClassifier, opts ...JournalOption) *Journal {
	j := &Journal{
		kv:         kv,
		classifier: classifier,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Write classifies text and appends it as a new entry.
func (j *Journal) Write(ctx context.Context, text string, settings domain.UserSettings) (domain.DailySentence, error) {
	text, err := domain.CleanInput(text)
	if err != nil {
		return domain.DailySentence{}, err
	}

	// Classification may call a remote model; keep it outside the lock.
	emotion := j.classifier.ClassifyEmotion(ctx, text, settings)
	entry := domain.DailySentence{
		ID:        j.newID(),
		Timestamp: j.now().UnixMilli(),
		Text:      text,
		Emotion:   emotion,
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	entries, err := j.load(ctx)
	if err != nil {
		return domain.DailySentence{}, err
	}
	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return domain.DailySentence{}, fmt.Errorf("failed to encode journal: %w", err)
	}
	if err := j.kv.Set(ctx, JournalKey, data); err != nil {
		return domain.DailySentence{}, fmt.Errorf("failed to save journal: %w", err)
	}
	return entry, nil
}

// Entries returns every entry in insertion order.
func (j *Journal) Entries(ctx context.Context) ([]domain.DailySentence, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.load(ctx)
}

// OnDay returns the entries written on the calendar day of day, in day's location.
func (j *Journal) OnDay(ctx context.Context, day time.Time) ([]domain.DailySentence, error) {
	entries, err := j.Entries(ctx)
	if err != nil {
		return nil, err
	}

	y, m, d := day.Date()
	var out []domain.DailySentence
	for _, e := range entries {
		ey, em, ed := time.UnixMilli(e.Timestamp).In(day.Location()).Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out, nil
}

func (j *Journal) load(ctx context.Context) ([]domain.DailySentence, error) {
	data, err := j.kv.Get(ctx, JournalKey)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.DailySentence{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	var entries []domain.DailySentence
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}
	return entries, nil
}
