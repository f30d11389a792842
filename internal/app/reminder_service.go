package app

import (
	"context"
	"fmt"
	"time"

	"medtrack/internal/domain"
)

// upcomingHorizon is how far ahead the upcoming-reminders view looks.
const upcomingHorizon = 7 * 24 * time.Hour

// ReminderService encapsulates reminder use cases.
type ReminderService struct {
	repo domain.ReminderRepository
}

// NewReminderService creates a ReminderService backed by the given repository.
func NewReminderService(repo domain.ReminderRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

// List returns all reminders ordered by schedule time ascending.
func (s *ReminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	return s.repo.ListReminders(ctx)
}

// ListToday returns reminders whose schedule time falls on the local
// calendar day of now.
func (s *ReminderService) ListToday(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	return s.repo.ListRemindersForLocalDay(ctx, now.In(time.Local).Format("2006-01-02"))
}

// ListUpcomingWeek returns reminders scheduled within the next seven days of now.
func (s *ReminderService) ListUpcomingWeek(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	return s.repo.ListUpcomingReminders(ctx, now, upcomingHorizon)
}

// Get returns a single reminder by id.
func (s *ReminderService) Get(ctx context.Context, id int64) (*domain.Reminder, error) {
	r, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("reminder %d: %w", id, ErrNotFound)
	}
	return r, nil
}

// Create validates and stores a new reminder, returning its id.
func (s *ReminderService) Create(ctx context.Context, r domain.Reminder) (int64, error) {
	if err := validateReminder(r); err != nil {
		return 0, err
	}
	r.ID = 0
	r.Notified = false
	return s.repo.CreateReminder(ctx, r)
}

// Update replaces the fields of an existing reminder wholesale. The
// notified flag is left untouched.
func (s *ReminderService) Update(ctx context.Context, id int64, r domain.Reminder) error {
	if err := validateReminder(r); err != nil {
		return err
	}
	r.ID = id
	ok, err := s.repo.UpdateReminder(ctx, r)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("reminder %d: %w", id, ErrNotFound)
	}
	return nil
}

// MarkNotified sets only the notified flag of a reminder.
func (s *ReminderService) MarkNotified(ctx context.Context, id int64) error {
	ok, err := s.repo.SetReminderNotified(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("reminder %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a reminder permanently.
func (s *ReminderService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteReminder(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("reminder %d: %w", id, ErrNotFound)
	}
	return nil
}

// Stats returns today/upcoming/past counts relative to now.
func (s *ReminderService) Stats(ctx context.Context, now time.Time) (*domain.ReminderStats, error) {
	return s.repo.ReminderStats(ctx, now)
}

func validateReminder(r domain.Reminder) error {
	if r.Title == "" || r.DateTime.IsZero() {
		return fmt.Errorf("%w: title and date_time are required", ErrInvalidInput)
	}
	return nil
}
