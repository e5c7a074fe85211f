// Package scoring computes the growth value of a finished rescue session.
package scoring

import "github.com/aretw0/mindbuffer/pkg/domain"

const (
	completenessPoints = 20
	lensPoints         = 20
	actionPoints       = 20
	maxStressBonus     = 30
	maxGrowth          = 100
)

// GrowthValue returns the 0-100 score of a session record.
// It is pure: the result depends only on the fields of s.
func GrowthValue(s *domain.SessionData) int {
	if s == nil {
		return 0
	}

	score := 0
	if s.ABC.Complete() {
		score += completenessPoints
	}
	if s.SelectedLensID != "" {
		score += lensPoints
	}
	if s.SelectedActionID != "" {
		score += actionPoints
	}
	score += StressBonus(s.HRVStart, s.HRVEnd)

	return clamp(score, 0, maxGrowth)
}

// StressBonus rewards a stress drop with two points per unit, capped at 30.
func StressBonus(start, end int) int {
	drop := start - end
	if drop <= 0 {
		return 0
	}
	return min(maxStressBonus, drop*2)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
