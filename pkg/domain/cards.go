package domain

// LensType classifies a reframing perspective.
type LensType string

const (
	LensGrowth       LensType = "growth"
	LensSystem       LensType = "system"
	LensRelationship LensType = "relationship"
)

// Valid reports whether t belongs to the closed set of lens types.
func (t LensType) Valid() bool {
	switch t {
	case LensGrowth, LensSystem, LensRelationship:
		return true
	}
	return false
}

// CardBatchSize is the number of cards produced by every generation call.
const CardBatchSize = 3

// LensSlots are the fixed positional type and colour of a lens batch.
var LensSlots = [CardBatchSize]struct {
	Type  LensType
	Color string
}{
	{LensGrowth, "blue"},
	{LensSystem, "purple"},
	{LensRelationship, "green"},
}

// LensCard is a reframing perspective offered to the user.
type LensCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        LensType `json:"type"`
	Color       string   `json:"color"`
}

// MicroAction is a short behavioral step tied to a chosen lens.
type MicroAction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}
