package app

import (
	"context"
	"fmt"
	"time"

	"medtrack/internal/domain"
)

// AppointmentService encapsulates appointment use cases.
type AppointmentService struct {
	repo domain.AppointmentRepository
}

// NewAppointmentService creates an AppointmentService backed by the given repository.
func NewAppointmentService(repo domain.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repo: repo}
}

// List returns all appointments ordered by schedule time ascending.
func (s *AppointmentService) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.repo.ListAppointments(ctx)
}

// ListUpcoming returns appointments at or after now, soonest first.
func (s *AppointmentService) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	return s.repo.ListUpcomingAppointments(ctx, now)
}

// ListPast returns appointments before now, most recent first.
func (s *AppointmentService) ListPast(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	return s.repo.ListPastAppointments(ctx, now)
}

// ListByType returns appointments with an exact type match.
func (s *AppointmentService) ListByType(ctx context.Context, appType string) ([]domain.Appointment, error) {
	if appType == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	return s.repo.ListAppointmentsByType(ctx, appType)
}

// ListByDoctor returns appointments whose doctor name contains the given
// substring, case-insensitively.
func (s *AppointmentService) ListByDoctor(ctx context.Context, doctor string) ([]domain.Appointment, error) {
	if doctor == "" {
		return nil, fmt.Errorf("%w: doctor is required", ErrInvalidInput)
	}
	return s.repo.ListAppointmentsByDoctor(ctx, doctor)
}

// Get returns a single appointment by id.
func (s *AppointmentService) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("appointment %d: %w", id, ErrNotFound)
	}
	return a, nil
}

// Create validates and stores a new appointment, returning its id.
func (s *AppointmentService) Create(ctx context.Context, a domain.Appointment) (int64, error) {
	if err := validateAppointment(a); err != nil {
		return 0, err
	}
	a.ID = 0
	return s.repo.CreateAppointment(ctx, a)
}

// Update replaces the fields of an existing appointment wholesale.
func (s *AppointmentService) Update(ctx context.Context, id int64, a domain.Appointment) error {
	if err := validateAppointment(a); err != nil {
		return err
	}
	a.ID = id
	ok, err := s.repo.UpdateAppointment(ctx, a)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes an appointment permanently.
func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteAppointment(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("appointment %d: %w", id, ErrNotFound)
	}
	return nil
}

// Stats returns upcoming/past and distinct type/doctor counts relative to now.
func (s *AppointmentService) Stats(ctx context.Context, now time.Time) (*domain.AppointmentStats, error) {
	return s.repo.AppointmentStats(ctx, now)
}

func validateAppointment(a domain.Appointment) error {
	if a.Doctor == "" || a.Type == "" || a.DateTime.IsZero() {
		return fmt.Errorf("%w: doctor, type and date_time are required", ErrInvalidInput)
	}
	return nil
}
