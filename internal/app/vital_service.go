package app

import (
	"context"
	"fmt"
	"time"

	"medtrack/internal/domain"
)

// VitalService encapsulates vital-signs use cases.
type VitalService struct {
	repo domain.VitalRepository
}

// NewVitalService creates a VitalService backed by the given repository.
func NewVitalService(repo domain.VitalRepository) *VitalService {
	return &VitalService{repo: repo}
}

// List returns all vital records, most recent first.
func (s *VitalService) List(ctx context.Context) ([]domain.VitalRecord, error) {
	return s.repo.ListVitals(ctx)
}

// ListByDateRange returns records whose local recording day falls within
// [startDay, endDay], both "2006-01-02".
func (s *VitalService) ListByDateRange(ctx context.Context, startDay, endDay string) ([]domain.VitalRecord, error) {
	if startDay == "" || endDay == "" {
		return nil, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}
	for _, day := range []string{startDay, endDay} {
		if _, err := time.ParseInLocation("2006-01-02", day, time.Local); err != nil {
			return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	return s.repo.ListVitalsByDateRange(ctx, startDay, endDay)
}

// Latest returns the most recently recorded vital record.
func (s *VitalService) Latest(ctx context.Context) (*domain.VitalRecord, error) {
	v, err := s.repo.LatestVital(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("no vital records: %w", ErrNotFound)
	}
	return v, nil
}

// Get returns a single vital record by id.
func (s *VitalService) Get(ctx context.Context, id int64) (*domain.VitalRecord, error) {
	v, err := s.repo.GetVital(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("vital record %d: %w", id, ErrNotFound)
	}
	return v, nil
}

// Create validates and stores a new vital record, stamping it with now.
func (s *VitalService) Create(ctx context.Context, v domain.VitalRecord) (int64, error) {
	if !v.HasMeasurement() {
		return 0, fmt.Errorf("%w: at least one vital sign is required", ErrInvalidInput)
	}
	v.ID = 0
	v.RecordedDate = time.Now().UTC()
	return s.repo.CreateVital(ctx, v)
}

// Update replaces the measurements of an existing record wholesale. The
// recording timestamp is preserved.
func (s *VitalService) Update(ctx context.Context, id int64, v domain.VitalRecord) error {
	if !v.HasMeasurement() {
		return fmt.Errorf("%w: at least one vital sign is required", ErrInvalidInput)
	}
	v.ID = id
	ok, err := s.repo.UpdateVital(ctx, v)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("vital record %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a vital record permanently.
func (s *VitalService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteVital(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("vital record %d: %w", id, ErrNotFound)
	}
	return nil
}

// Stats returns numeric summaries over the collection, ignoring nulls.
func (s *VitalService) Stats(ctx context.Context) (*domain.VitalStats, error) {
	return s.repo.VitalStats(ctx)
}
