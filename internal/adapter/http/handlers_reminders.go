package adapthttp

import (
	"net/http"
	"time"

	"medtrack/internal/domain"
)

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	items, err := s.reminders.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListRemindersToday(w http.ResponseWriter, r *http.Request) {
	items, err := s.reminders.ListToday(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListRemindersUpcomingWeek(w http.ResponseWriter, r *http.Request) {
	items, err := s.reminders.ListUpcomingWeek(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetReminder(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rem, err := s.reminders.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var rem domain.Reminder
	if err := parseJSON(r, &rem); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.reminders.Create(r.Context(), rem)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var rem domain.Reminder
	if err := parseJSON(r, &rem); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.reminders.Update(r.Context(), id, rem); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleMarkReminderNotified(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.reminders.MarkNotified(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := idPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.reminders.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReminderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.reminders.Stats(r.Context(), time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
