package adapthttp

import (
	"net/http"
	"time"

	"medtrack/internal/domain"
)

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	items, err := s.appointments.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	items, err := s.appointments.ListUpcoming(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListPastAppointments(w http.ResponseWriter, r *http.Request) {
	items, err := s.appointments.ListPast(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListAppointmentsByType(w http.ResponseWriter, r *http.Request) {
	items, err := s.appointments.ListByType(r.Context(), r.PathValue("type"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListAppointmentsByDoctor(w http.ResponseWriter, r *http.Request) {
	items, err := s.appointments.ListByDoctor(r.Context(), r.PathValue("doctor"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	a, err := s.appointments.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var a domain.Appointment
	if err := parseJSON(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.appointments.Create(r.Context(), a)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var a domain.Appointment
	if err := parseJSON(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.appointments.Update(r.Context(), id, a); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.appointments.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleAppointmentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.appointments.Stats(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
