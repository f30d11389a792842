package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"medtrack/internal/domain"
)

const reminderColumns = "id, title, date_time, notes, notified"

func scanReminder(row interface{ Scan(...any) error }) (domain.Reminder, error) {
	var r domain.Reminder
	err := row.Scan(&r.ID, &r.Title, &r.DateTime, &r.Notes, &r.Notified)
	return r, err
}

func (d *DB) queryReminders(ctx context.Context, query string, args ...any) ([]domain.Reminder, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Reminder{}
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListReminders returns all reminders ordered by schedule time ascending.
func (d *DB) ListReminders(ctx context.Context) ([]domain.Reminder, error) {
	return d.queryReminders(ctx,
		"SELECT "+reminderColumns+" FROM reminders ORDER BY date_time ASC, id ASC;")
}

// ListRemindersForLocalDay returns reminders scheduled on a local calendar day.
func (d *DB) ListRemindersForLocalDay(ctx context.Context, localDay string) ([]domain.Reminder, error) {
	dayStart, dayEnd, err := localDayBounds(localDay)
	if err != nil {
		return nil, err
	}
	return d.queryReminders(ctx,
		"SELECT "+reminderColumns+" FROM reminders WHERE date_time >= $1 AND date_time < $2 ORDER BY date_time ASC;",
		dayStart, dayEnd)
}

// ListUpcomingReminders returns reminders within [now, now+horizon].
func (d *DB) ListUpcomingReminders(ctx context.Context, now time.Time, horizon time.Duration) ([]domain.Reminder, error) {
	return d.queryReminders(ctx,
		"SELECT "+reminderColumns+" FROM reminders WHERE date_time >= $1 AND date_time <= $2 ORDER BY date_time ASC;",
		now.UTC(), now.Add(horizon).UTC())
}

// GetReminder returns a reminder by id, or nil if absent.
func (d *DB) GetReminder(ctx context.Context, id int64) (*domain.Reminder, error) {
	r, err := scanReminder(d.sql.QueryRowContext(ctx,
		"SELECT "+reminderColumns+" FROM reminders WHERE id = $1;", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReminder inserts a new reminder and returns its id.
func (d *DB) CreateReminder(ctx context.Context, r domain.Reminder) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO reminders(title, date_time, notes, notified) VALUES($1, $2, $3, $4) RETURNING id;",
		r.Title, r.DateTime.UTC(), r.Notes, r.Notified,
	).Scan(&id)
	return id, err
}

// UpdateReminder replaces a reminder's fields wholesale, leaving the
// notified flag untouched.
func (d *DB) UpdateReminder(ctx context.Context, r domain.Reminder) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE reminders SET title = $1, date_time = $2, notes = $3 WHERE id = $4;",
		r.Title, r.DateTime.UTC(), r.Notes, r.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetReminderNotified marks a reminder as notified.
func (d *DB) SetReminderNotified(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "UPDATE reminders SET notified = TRUE WHERE id = $1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteReminder removes a reminder by id.
func (d *DB) DeleteReminder(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM reminders WHERE id = $1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ReminderStats returns today/upcoming/past counts relative to now.
func (d *DB) ReminderStats(ctx context.Context, now time.Time) (*domain.ReminderStats, error) {
	dayStart, dayEnd, err := localDayBounds(now.In(time.Local).Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	var s domain.ReminderStats
	err = d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE date_time >= $1 AND date_time < $2),
			COUNT(*) FILTER (WHERE date_time >= $3),
			COUNT(*) FILTER (WHERE date_time < $3)
		FROM reminders;`,
		dayStart, dayEnd, now.UTC(),
	).Scan(&s.Total, &s.Today, &s.Upcoming, &s.Past)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
