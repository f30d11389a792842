package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"medtrack/internal/app"
	"medtrack/internal/domain"
)

type mockAppointmentRepo struct {
	listFn     func(ctx context.Context) ([]domain.Appointment, error)
	upcomingFn func(ctx context.Context, now time.Time) ([]domain.Appointment, error)
	pastFn     func(ctx context.Context, now time.Time) ([]domain.Appointment, error)
	byTypeFn   func(ctx context.Context, appType string) ([]domain.Appointment, error)
	byDoctorFn func(ctx context.Context, doctor string) ([]domain.Appointment, error)
	getFn      func(ctx context.Context, id int64) (*domain.Appointment, error)
	createFn   func(ctx context.Context, a domain.Appointment) (int64, error)
	updateFn   func(ctx context.Context, a domain.Appointment) (bool, error)
	deleteFn   func(ctx context.Context, id int64) (bool, error)
	statsFn    func(ctx context.Context, now time.Time) (*domain.AppointmentStats, error)
}

func (m *mockAppointmentRepo) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) ListUpcomingAppointments(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	if m.upcomingFn != nil {
		return m.upcomingFn(ctx, now)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) ListPastAppointments(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	if m.pastFn != nil {
		return m.pastFn(ctx, now)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) ListAppointmentsByType(ctx context.Context, appType string) ([]domain.Appointment, error) {
	if m.byTypeFn != nil {
		return m.byTypeFn(ctx, appType)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) ListAppointmentsByDoctor(ctx context.Context, doctor string) ([]domain.Appointment, error) {
	if m.byDoctorFn != nil {
		return m.byDoctorFn(ctx, doctor)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) CreateAppointment(ctx context.Context, a domain.Appointment) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return 1, nil
}

func (m *mockAppointmentRepo) UpdateAppointment(ctx context.Context, a domain.Appointment) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, a)
	}
	return true, nil
}

func (m *mockAppointmentRepo) DeleteAppointment(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockAppointmentRepo) AppointmentStats(ctx context.Context, now time.Time) (*domain.AppointmentStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, now)
	}
	return &domain.AppointmentStats{}, nil
}

func TestCreateAppointment_Validation(t *testing.T) {
	svc := app.NewAppointmentService(&mockAppointmentRepo{})

	tests := []struct {
		name        string
		appointment domain.Appointment
	}{
		{"missing doctor", domain.Appointment{Type: "Checkup", DateTime: time.Now()}},
		{"missing type", domain.Appointment{Doctor: "Dr. Lee", DateTime: time.Now()}},
		{"missing date_time", domain.Appointment{Doctor: "Dr. Lee", Type: "Checkup"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.appointment)
			if !errors.Is(err, app.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	repo := &mockAppointmentRepo{
		createFn: func(_ context.Context, a domain.Appointment) (int64, error) {
			if a.Doctor != "Dr. Lee" {
				t.Fatalf("unexpected doctor: %s", a.Doctor)
			}
			return 17, nil
		},
	}
	svc := app.NewAppointmentService(repo)
	id, err := svc.Create(context.Background(), domain.Appointment{
		Doctor: "Dr. Lee", Type: "Checkup", DateTime: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 17 {
		t.Fatalf("expected id 17, got %d", id)
	}
}

func TestListAppointmentsByDoctor_RequiresName(t *testing.T) {
	svc := app.NewAppointmentService(&mockAppointmentRepo{})
	_, err := svc.ListByDoctor(context.Background(), "")
	if !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetAppointment_NotFound(t *testing.T) {
	svc := app.NewAppointmentService(&mockAppointmentRepo{})
	_, err := svc.Get(context.Background(), 2)
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	repo := &mockAppointmentRepo{
		updateFn: func(_ context.Context, _ domain.Appointment) (bool, error) { return false, nil },
	}
	svc := app.NewAppointmentService(repo)
	err := svc.Update(context.Background(), 2, domain.Appointment{
		Doctor: "Dr. Lee", Type: "Checkup", DateTime: time.Now(),
	})
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppointmentStats_PassesNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{
		statsFn: func(_ context.Context, got time.Time) (*domain.AppointmentStats, error) {
			if !got.Equal(now) {
				t.Fatalf("expected now %v, got %v", now, got)
			}
			return &domain.AppointmentStats{Total: 2, Upcoming: 1, Past: 1}, nil
		},
	}
	svc := app.NewAppointmentService(repo)
	stats, err := svc.Stats(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("expected total 2, got %d", stats.Total)
	}
}
