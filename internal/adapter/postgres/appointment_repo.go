package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"medtrack/internal/domain"
)

const appointmentColumns = "id, doctor, type, date_time, location"

func scanAppointment(row interface{ Scan(...any) error }) (domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(&a.ID, &a.Doctor, &a.Type, &a.DateTime, &a.Location)
	return a, err
}

func (d *DB) queryAppointments(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAppointments returns all appointments ordered by schedule time ascending.
func (d *DB) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return d.queryAppointments(ctx,
		"SELECT "+appointmentColumns+" FROM appointments ORDER BY date_time ASC, id ASC;")
}

// ListUpcomingAppointments returns appointments at or after now, soonest first.
func (d *DB) ListUpcomingAppointments(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	return d.queryAppointments(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE date_time >= $1 ORDER BY date_time ASC;",
		now.UTC())
}

// ListPastAppointments returns appointments before now, most recent first.
func (d *DB) ListPastAppointments(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	return d.queryAppointments(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE date_time < $1 ORDER BY date_time DESC;",
		now.UTC())
}

// ListAppointmentsByType returns appointments with an exact type match.
func (d *DB) ListAppointmentsByType(ctx context.Context, appType string) ([]domain.Appointment, error) {
	return d.queryAppointments(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE type = $1 ORDER BY date_time ASC;",
		appType)
}

// ListAppointmentsByDoctor returns appointments whose doctor name contains
// the given substring, case-insensitively.
func (d *DB) ListAppointmentsByDoctor(ctx context.Context, doctor string) ([]domain.Appointment, error) {
	return d.queryAppointments(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE doctor ILIKE '%' || $1 || '%' ORDER BY date_time ASC;",
		doctor)
}

// GetAppointment returns an appointment by id, or nil if absent.
func (d *DB) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := scanAppointment(d.sql.QueryRowContext(ctx,
		"SELECT "+appointmentColumns+" FROM appointments WHERE id = $1;", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAppointment inserts a new appointment and returns its id.
func (d *DB) CreateAppointment(ctx context.Context, a domain.Appointment) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO appointments(doctor, type, date_time, location) VALUES($1, $2, $3, $4) RETURNING id;",
		a.Doctor, a.Type, a.DateTime.UTC(), a.Location,
	).Scan(&id)
	return id, err
}

// UpdateAppointment replaces an appointment's fields wholesale.
func (d *DB) UpdateAppointment(ctx context.Context, a domain.Appointment) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE appointments SET doctor = $1, type = $2, date_time = $3, location = $4 WHERE id = $5;",
		a.Doctor, a.Type, a.DateTime.UTC(), a.Location, a.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteAppointment removes an appointment by id.
func (d *DB) DeleteAppointment(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM appointments WHERE id = $1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// AppointmentStats returns upcoming/past and distinct type/doctor counts
// relative to now.
func (d *DB) AppointmentStats(ctx context.Context, now time.Time) (*domain.AppointmentStats, error) {
	var s domain.AppointmentStats
	err := d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE date_time >= $1),
			COUNT(*) FILTER (WHERE date_time < $1),
			COUNT(DISTINCT type),
			COUNT(DISTINCT doctor)
		FROM appointments;`,
		now.UTC(),
	).Scan(&s.Total, &s.Upcoming, &s.Past, &s.Types, &s.Doctors)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
