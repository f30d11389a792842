package domain

import (
	"context"
	"time"
)

// Reminder represents a one-shot scheduled reminder. Notified records
// whether the server has been told an alert was raised for it; finer-grained
// alert tiers live in the alerting client, not here.
type Reminder struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	DateTime time.Time `json:"date_time"`
	Notes    *string   `json:"notes"`
	Notified bool      `json:"notified"`
}

// ReminderStats aggregates the reminder collection relative to a fixed instant.
type ReminderStats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
	Past     int `json:"past"`
}

// ReminderRepository is the port for reminder persistence.
type ReminderRepository interface {
	ListReminders(ctx context.Context) ([]Reminder, error)
	ListRemindersForLocalDay(ctx context.Context, localDay string) ([]Reminder, error)
	ListUpcomingReminders(ctx context.Context, now time.Time, horizon time.Duration) ([]Reminder, error)
	GetReminder(ctx context.Context, id int64) (*Reminder, error)
	CreateReminder(ctx context.Context, r Reminder) (int64, error)
	UpdateReminder(ctx context.Context, r Reminder) (bool, error)
	SetReminderNotified(ctx context.Context, id int64) (bool, error)
	DeleteReminder(ctx context.Context, id int64) (bool, error)
	ReminderStats(ctx context.Context, now time.Time) (*ReminderStats, error)
}
