package http

import (
	"net/http"
	"time"

	"github.com/aretw0/mindbuffer/pkg/archive"
)

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.Coach.Archive.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.Coach.Archive.Get(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, session)
}

// ClearSessions handles DELETE /sessions.
func (s *Server) ClearSessions(w http.ResponseWriter, r *http.Request) {
	if err := s.Coach.Archive.Clear(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /sessions/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.Coach.Archive.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, archive.Summarize(sessions))
}

// Export handles GET /export. ?secrets=true keeps credentials.
func (s *Server) Export(w http.ResponseWriter, r *http.Request, params ExportParams) {
	secrets := params.Secrets != nil && *params.Secrets
	data, err := s.Coach.Export(r.Context(), archive.WithSecrets(secrets))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="mindbuffer-export.json"`)
	_, _ = w.Write(data)
}

// GetSettings handles GET /settings. The API key is never returned.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Coach.Settings.Settings(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if settings.APIKey != "" {
		settings.APIKey = "***"
	}
	s.writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PATCH /settings with a partial settings object.
func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch UpdateSettingsJSONRequestBody
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	settings, err := s.Coach.Settings.Update(r.Context(), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if settings.APIKey != "" {
		settings.APIKey = "***"
	}
	s.writeJSON(w, http.StatusOK, settings)
}

// ListJournal handles GET /journal. ?day=YYYY-MM-DD narrows to one local day.
func (s *Server) ListJournal(w http.ResponseWriter, r *http.Request, params ListJournalParams) {
	if params.Day != nil {
		y, m, d := params.Day.Date()
		entries, err := s.Coach.Journal.OnDay(r.Context(), time.Date(y, m, d, 0, 0, 0, 0, time.Local))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := s.Coach.Journal.Entries(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// WriteJournal handles POST /journal.
func (s *Server) WriteJournal(w http.ResponseWriter, r *http.Request) {
	var body WriteJournalJSONRequestBody
	if err := decode(w, r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	entry, err := s.Coach.WriteJournal(r.Context(), body.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, entry)
}

// GetStats handles GET /parent/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Coach.Stats.Load(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// FinishCalmPod handles POST /parent/calm.
func (s *Server) FinishCalmPod(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Coach.FinishCalmPod(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// AvoidConflict handles POST /parent/conflicts.
func (s *Server) AvoidConflict(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Coach.AvoidConflict(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
