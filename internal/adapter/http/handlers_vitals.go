package adapthttp

import (
	"net/http"

	"medtrack/internal/domain"
)

func (s *Server) handleListVitals(w http.ResponseWriter, r *http.Request) {
	items, err := s.vitals.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListVitalsByDateRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.vitals.ListByDateRange(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleLatestVital(w http.ResponseWriter, r *http.Request) {
	v, err := s.vitals.Latest(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleGetVital(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := s.vitals.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleCreateVital(w http.ResponseWriter, r *http.Request) {
	var v domain.VitalRecord
	if err := parseJSON(r, &v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.vitals.Create(r.Context(), v)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleUpdateVital(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var v domain.VitalRecord
	if err := parseJSON(r, &v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.vitals.Update(r.Context(), id, v); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleDeleteVital(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.vitals.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleVitalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.vitals.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
