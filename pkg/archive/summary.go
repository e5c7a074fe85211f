package archive

import "github.com/aretw0/mindbuffer/pkg/domain"

// Summary aggregates archived sessions for report views.
type Summary struct {
	Count             int     `json:"count"`
	TotalGrowth       int     `json:"totalGrowth"`
	AverageGrowth     float64 `json:"averageGrowth"`
	AverageStressDrop float64 `json:"averageStressDrop"`
}

// Summarize computes the report summary of sessions.
func Summarize(sessions []domain.SessionData) Summary {
	var sum Summary
	if len(sessions) == 0 {
		return sum
	}

	drop := 0
	for _, s := range sessions {
		sum.Count++
		sum.TotalGrowth += s.GrowthValue
		drop += s.HRVStart - s.HRVEnd
	}
	sum.AverageGrowth = float64(sum.TotalGrowth) / float64(sum.Count)
	sum.AverageStressDrop = float64(drop) / float64(sum.Count)
	return sum
}
