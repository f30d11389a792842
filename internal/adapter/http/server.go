// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"medtrack/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	medications  *app.MedicationService
	reminders    *app.ReminderService
	vitals       *app.VitalService
	appointments *app.AppointmentService
	authSvc      *app.AuthService
	oidcConfig   OIDCConfig
	webDir       string
	disableAuth  bool
}

// New creates a Server wired to the given application services.
func New(ms *app.MedicationService, rs *app.ReminderService, vs *app.VitalService, as *app.AppointmentService, authSvc *app.AuthService, webDir string) *Server {
	return &Server{
		medications:  ms,
		reminders:    rs,
		vitals:       vs,
		appointments: as,
		authSvc:      authSvc,
		webDir:       webDir,
	}
}

// WithoutAuth disables the auth middleware (for tests and local dev).
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithOIDC enables SSO login via the given provider configuration.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.HandleFunc("POST /auth/logout", s.handleLogout)
	api.HandleFunc("POST /auth/setup", s.handleSetupUser)
	api.HandleFunc("GET /auth/config", s.handleConfig)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)

	records := http.NewServeMux()

	records.HandleFunc("GET /medications", s.handleListMedications)
	records.HandleFunc("POST /medications", s.handleCreateMedication)
	records.HandleFunc("GET /medications/stats/count", s.handleMedicationStats)
	records.HandleFunc("GET /medications/{id}", s.handleGetMedication)
	records.HandleFunc("PUT /medications/{id}", s.handleUpdateMedication)
	records.HandleFunc("PUT /medications/{id}/taken", s.handleSetMedicationTaken)
	records.HandleFunc("DELETE /medications/{id}", s.handleDeleteMedication)

	records.HandleFunc("GET /reminders", s.handleListReminders)
	records.HandleFunc("POST /reminders", s.handleCreateReminder)
	records.HandleFunc("GET /reminders/stats/count", s.handleReminderStats)
	records.HandleFunc("GET /reminders/today/list", s.handleListRemindersToday)
	records.HandleFunc("GET /reminders/upcoming/week", s.handleListRemindersUpcomingWeek)
	records.HandleFunc("GET /reminders/{id}", s.handleGetReminder)
	records.HandleFunc("PUT /reminders/{id}", s.handleUpdateReminder)
	records.HandleFunc("PUT /reminders/{id}/notify", s.handleMarkReminderNotified)
	records.HandleFunc("DELETE /reminders/{id}", s.handleDeleteReminder)

	records.HandleFunc("GET /vitals", s.handleListVitals)
	records.HandleFunc("POST /vitals", s.handleCreateVital)
	records.HandleFunc("GET /vitals/stats/summary", s.handleVitalStats)
	records.HandleFunc("GET /vitals/latest/record", s.handleLatestVital)
	records.HandleFunc("GET /vitals/range/dates", s.handleListVitalsByDateRange)
	records.HandleFunc("GET /vitals/{id}", s.handleGetVital)
	records.HandleFunc("PUT /vitals/{id}", s.handleUpdateVital)
	records.HandleFunc("DELETE /vitals/{id}", s.handleDeleteVital)

	records.HandleFunc("GET /appointments", s.handleListAppointments)
	records.HandleFunc("POST /appointments", s.handleCreateAppointment)
	records.HandleFunc("GET /appointments/stats/count", s.handleAppointmentStats)
	records.HandleFunc("GET /appointments/upcoming/list", s.handleListUpcomingAppointments)
	records.HandleFunc("GET /appointments/past/list", s.handleListPastAppointments)
	records.HandleFunc("GET /appointments/type/{type}", s.handleListAppointmentsByType)
	records.HandleFunc("GET /appointments/doctor/{doctor}", s.handleListAppointmentsByDoctor)
	records.HandleFunc("GET /appointments/{id}", s.handleGetAppointment)
	records.HandleFunc("PUT /appointments/{id}", s.handleUpdateAppointment)
	records.HandleFunc("DELETE /appointments/{id}", s.handleDeleteAppointment)

	api.Handle("/", s.authMiddleware(records))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
