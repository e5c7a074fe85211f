package parent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
)

// StatsKey is the store key holding the parent statistics.
const StatsKey = "mindbuffer_parent_stats"

// CalmPodMinutes is credited for every finished calm pod exercise.
const CalmPodMinutes = 10

// RecordCalm counts one calm-down exercise lasting minutes.
func RecordCalm(stats domain.ParentStats, minutes int) domain.ParentStats {
	stats.CalmCount++
	stats.AvoidedMinutes += max(0, minutes)
	return stats
}

// RecordConflictAvoided counts one avoided conflict. It only touches
// ConflictsAvoided.
func RecordConflictAvoided(stats domain.ParentStats) domain.ParentStats {
	stats.ConflictsAvoided++
	return stats
}

// StatsStore persists ParentStats.
type StatsStore struct {
	kv ports.KVStore
	mu sync.Mutex
}

// NewStatsStore creates a stats store over kv.
func NewStatsStore(kv ports.KVStore) *StatsStore {
	return &StatsStore{kv: kv}
}

// Load returns the stored stats, or zero stats when none were saved.
func (s *StatsStore) Load(ctx context.Context) (domain.ParentStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save replaces the stored stats.
func (s *StatsStore) Save(ctx context.Context, stats domain.ParentStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, stats)
}

// Update loads, applies fn and saves, atomically with respect to this store.
func (s *StatsStore) Update(ctx context.Context, fn func(domain.ParentStats) domain.ParentStats) (domain.ParentStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.load(ctx)
	if err != nil {
		return domain.ParentStats{}, err
	}
	stats = fn(stats)
	if err := s.save(ctx, stats); err != nil {
		return domain.ParentStats{}, err
	}
	return stats, nil
}

func (s *StatsStore) load(ctx context.Context) (domain.ParentStats, error) {
	var stats domain.ParentStats
	data, err := s.kv.Get(ctx, StatsKey)
	if errors.Is(err, domain.ErrNotFound) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("failed to load parent stats: %w", err)
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return stats, fmt.Errorf("failed to decode parent stats: %w", err)
	}
	return stats, nil
}

func (s *StatsStore) save(ctx context.Context, stats domain.ParentStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode parent stats: %w", err)
	}
	if err := s.kv.Set(ctx, StatsKey, data); err != nil {
		return fmt.Errorf("failed to save parent stats: %w", err)
	}
	return nil
}
