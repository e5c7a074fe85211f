package flow

import "github.com/aretw0/mindbuffer/pkg/domain"

// View is a serializable snapshot of a flow, shared by the transport
// adapters.
type View struct {
	ID         string               `json:"id"`
	Stage      string               `json:"stage"`
	ChatStep   domain.ChatStage     `json:"chatStep,omitempty"`
	Transcript []domain.ChatMessage `json:"transcript"`
	Lenses     []domain.LensCard    `json:"lenses,omitempty"`
	Actions    []domain.MicroAction `json:"actions,omitempty"`
	Lens       *domain.LensCard     `json:"lens,omitempty"`
	Action     *domain.MicroAction  `json:"action,omitempty"`
	Stress     int                  `json:"stress"`
	Final      int                  `json:"finalStress,omitempty"`
	Remaining  int                  `json:"remaining"`
	Urgent     bool                 `json:"urgent"`
	Pending    bool                 `json:"pending"`
	Notice     string               `json:"notice,omitempty"`
}

// Snapshot captures f under the session id.
func Snapshot(id string, f *Flow) View {
	initial, final := f.Stress()
	v := View{
		ID:         id,
		Transcript: f.Transcript(),
		Stress:     initial,
		Final:      final,
		Remaining:  f.Remaining(),
		Urgent:     f.Urgent(),
		Pending:    f.Pending(),
	}

	stage := f.Stage()
	v.Stage = stage.Name()
	switch st := stage.(type) {
	case Chat:
		v.ChatStep = st.Sub
	case Lens:
		v.Lenses = st.Cards
	case Action:
		v.Lens = &st.Lens
		v.Actions = st.Cards
	case Result:
		v.Lens = &st.Lens
		v.Action = &st.Action
	}
	return v
}
