package domain

// ParentStats aggregates the outcomes of parent zone exercises.
type ParentStats struct {
	CalmCount        int `json:"calmCount"`
	AvoidedMinutes   int `json:"avoidedMinutes"`
	ConflictsAvoided int `json:"conflictsAvoided"`
}
