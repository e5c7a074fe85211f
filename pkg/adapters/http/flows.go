package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/flow"
)

// FlowView is the JSON rendering of a flow.
type FlowView = flow.View

func viewOf(id string, f *flow.Flow) FlowView {
	return flow.Snapshot(id, f)
}

// OpenFlow handles POST /flows.
func (s *Server) OpenFlow(w http.ResponseWriter, r *http.Request) {
	var body OpenFlowJSONRequestBody
	if err := decode(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.InitialStress < 0 || body.InitialStress > 100 {
		s.writeError(w, r, errors.Join(errBadRequest, errors.New("initialStress must be within 0..100")))
		return
	}

	id, f, err := s.Coach.Sessions.Open(r.Context(), body.InitialStress)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	go s.pump(id, f)
	s.writeJSON(w, http.StatusCreated, viewOf(id, f))
}

// GetFlow handles GET /flows/{flowID}.
func (s *Server) GetFlow(w http.ResponseWriter, r *http.Request, flowID string) {
	id, f, ok := s.lookup(w, r, flowID)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, viewOf(id, f))
}

// AbortFlow handles DELETE /flows/{flowID}. Nothing is archived.
func (s *Server) AbortFlow(w http.ResponseWriter, r *http.Request, flowID string) {
	if err := s.Coach.Sessions.Abort(r.Context(), flowID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Streams.Close(flowID)
	w.WriteHeader(http.StatusNoContent)
}

// SubmitMessage handles POST /flows/{flowID}/messages.
func (s *Server) SubmitMessage(w http.ResponseWriter, r *http.Request, flowID string) {
	var body SubmitMessageJSONRequestBody
	if err := decode(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, flowID, func(f *flow.Flow) error {
		return f.Submit(r.Context(), body.Text)
	})
}

// GenerateLenses handles POST /flows/{flowID}/lenses.
func (s *Server) GenerateLenses(w http.ResponseWriter, r *http.Request, flowID string) {
	s.mutate(w, r, flowID, func(f *flow.Flow) error {
		return f.GenerateLenses(r.Context())
	})
}

// RefreshLenses handles POST /flows/{flowID}/lenses/refresh. Past the cap the
// flow is returned unchanged with the limit notice.
func (s *Server) RefreshLenses(w http.ResponseWriter, r *http.Request, flowID string) {
	id, f, ok := s.lookup(w, r, flowID)
	if !ok {
		return
	}
	err := f.RefreshLenses(r.Context())
	if err != nil && !errors.Is(err, domain.ErrRefreshLimit) {
		s.writeError(w, r, err)
		return
	}
	v := viewOf(id, f)
	if err != nil {
		v.Notice = f.LimitNotice()
	}
	s.publish(id, f)
	s.writeJSON(w, http.StatusOK, v)
}

// SelectLens handles POST /flows/{flowID}/lenses/{cardID}.
func (s *Server) SelectLens(w http.ResponseWriter, r *http.Request, flowID, cardID string) {
	s.mutate(w, r, flowID, func(f *flow.Flow) error {
		return f.SelectLens(r.Context(), cardID)
	})
}

// ShuffleActions handles POST /flows/{flowID}/actions/shuffle.
func (s *Server) ShuffleActions(w http.ResponseWriter, r *http.Request, flowID string) {
	s.mutate(w, r, flowID, func(f *flow.Flow) error {
		return f.ShuffleActions(r.Context())
	})
}

// SelectAction handles POST /flows/{flowID}/actions/{cardID}.
func (s *Server) SelectAction(w http.ResponseWriter, r *http.Request, flowID, cardID string) {
	s.mutate(w, r, flowID, func(f *flow.Flow) error {
		return f.SelectAction(r.Context(), cardID)
	})
}

// FinishFlow handles POST /flows/{flowID}/finish and returns the archived record.
func (s *Server) FinishFlow(w http.ResponseWriter, r *http.Request, flowID string) {
	record, err := s.Coach.Sessions.Complete(r.Context(), flowID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Streams.Close(flowID)
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) (string, *flow.Flow, bool) {
	f, err := s.Coach.Sessions.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return "", nil, false
	}
	return id, f, true
}

func (s *Server) mutate(w http.ResponseWriter, r *http.Request, flowID string, op func(*flow.Flow) error) {
	id, f, ok := s.lookup(w, r, flowID)
	if !ok {
		return
	}
	if err := op(f); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.publish(id, f)
	s.writeJSON(w, http.StatusOK, viewOf(id, f))
}
