package domain

import (
	"context"
	"time"
)

// Appointment represents a scheduled doctor visit.
type Appointment struct {
	ID       int64     `json:"id"`
	Doctor   string    `json:"doctor"`
	Type     string    `json:"type"`
	DateTime time.Time `json:"date_time"`
	Location *string   `json:"location"`
}

// AppointmentStats aggregates the appointment collection relative to a
// fixed instant.
type AppointmentStats struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
	Past     int `json:"past"`
	Types    int `json:"types"`
	Doctors  int `json:"doctors"`
}

// AppointmentRepository is the port for appointment persistence.
type AppointmentRepository interface {
	ListAppointments(ctx context.Context) ([]Appointment, error)
	ListUpcomingAppointments(ctx context.Context, now time.Time) ([]Appointment, error)
	ListPastAppointments(ctx context.Context, now time.Time) ([]Appointment, error)
	ListAppointmentsByType(ctx context.Context, appType string) ([]Appointment, error)
	ListAppointmentsByDoctor(ctx context.Context, doctor string) ([]Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*Appointment, error)
	CreateAppointment(ctx context.Context, a Appointment) (int64, error)
	UpdateAppointment(ctx context.Context, a Appointment) (bool, error)
	DeleteAppointment(ctx context.Context, id int64) (bool, error)
	AppointmentStats(ctx context.Context, now time.Time) (*AppointmentStats, error)
}
