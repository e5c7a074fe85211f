package flow

import "github.com/aretw0/mindbuffer/pkg/domain"

// Stage names.
const (
	StageChat   = "CHAT"
	StageLens   = "LENS"
	StageAction = "ACTION"
	StageResult = "RESULT"
)

// Stage is the current position of a Flow. The concrete types are Chat, Lens,
// Action and Result.
type Stage interface {
	// Name returns one of StageChat, StageLens, StageAction or StageResult.
	Name() string
	stage()
}

// Chat collects the ABC record one field at a time.
type Chat struct {
	Sub domain.ChatStage
}

// Lens offers a batch of reframing perspectives.
type Lens struct {
	Cards []domain.LensCard
}

// Action offers micro-actions for the chosen lens.
type Action struct {
	Lens  domain.LensCard
	Cards []domain.MicroAction
}

// Result holds the final choices. Only Finish is valid here.
type Result struct {
	Lens   domain.LensCard
	Action domain.MicroAction
}

func (Chat) Name() string   { return StageChat }
func (Lens) Name() string   { return StageLens }
func (Action) Name() string { return StageAction }
func (Result) Name() string { return StageResult }

func (Chat) stage()   {}
func (Lens) stage()   {}
func (Action) stage() {}
func (Result) stage() {}

// copyStage returns s with its card slices detached from the flow's state.
func copyStage(s Stage) Stage {
	switch v := s.(type) {
	case Lens:
		v.Cards = append([]domain.LensCard(nil), v.Cards...)
		return v
	case Action:
		v.Cards = append([]domain.MicroAction(nil), v.Cards...)
		return v
	}
	return s
}
