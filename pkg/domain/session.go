package domain

// ScenarioType tags the context a session was started in.
type ScenarioType string

const (
	ScenarioNormal  ScenarioType = "normal"
	ScenarioCommute ScenarioType = "commute"
	ScenarioSleep   ScenarioType = "sleep"
	ScenarioSocial  ScenarioType = "social"
)

// SessionData is the archived record of a finished rescue session.
// Generated cards are never persisted on their own, so the selected lens and
// action are stored both by ID and as full snapshots.
type SessionData struct {
	ID              string    `json:"id"`
	Timestamp       int64     `json:"timestamp"`
	DurationSeconds int       `json:"durationSeconds"`
	ABC             ABCRecord `json:"abc"`

	SelectedLensID        string        `json:"selectedLensId,omitempty"`
	SelectedActionID      string        `json:"selectedActionId,omitempty"`
	SelectedLensContent   *LensCard     `json:"selectedLensContent,omitempty"`
	SelectedActionContent *MicroAction  `json:"selectedActionContent,omitempty"`
	ChatTranscript        []ChatMessage `json:"chatTranscript,omitempty"`

	HRVStart            int          `json:"hrvStart"`
	HRVEnd              int          `json:"hrvEnd"`
	ThemeName           string       `json:"themeName"`
	GrowthValue         int          `json:"growthValue"`
	RejectedLensCount   int          `json:"rejectedLensCount"`
	RejectedActionCount int          `json:"rejectedActionCount"`
	Completed           bool         `json:"completed"`
	Type                ScenarioType `json:"type"`
}
