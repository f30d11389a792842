package app

import (
	"context"
	"fmt"

	"medtrack/internal/domain"
)

// MedicationService encapsulates medication-tracking use cases.
type MedicationService struct {
	repo domain.MedicationRepository
}

// NewMedicationService creates a MedicationService backed by the given repository.
func NewMedicationService(repo domain.MedicationRepository) *MedicationService {
	return &MedicationService{repo: repo}
}

// List returns all medications ordered by schedule time.
func (s *MedicationService) List(ctx context.Context) ([]domain.Medication, error) {
	return s.repo.ListMedications(ctx)
}

// Get returns a single medication by id.
func (s *MedicationService) Get(ctx context.Context, id int64) (*domain.Medication, error) {
	m, err := s.repo.GetMedication(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("medication %d: %w", id, ErrNotFound)
	}
	return m, nil
}

// Create validates and stores a new medication, returning its id.
func (s *MedicationService) Create(ctx context.Context, m domain.Medication) (int64, error) {
	if err := validateMedication(m); err != nil {
		return 0, err
	}
	m.ID = 0
	m.Taken = false
	return s.repo.CreateMedication(ctx, m)
}

// Update replaces the fields of an existing medication wholesale.
func (s *MedicationService) Update(ctx context.Context, id int64, m domain.Medication) error {
	if err := validateMedication(m); err != nil {
		return err
	}
	m.ID = id
	ok, err := s.repo.UpdateMedication(ctx, m)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("medication %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetTaken flips only the taken flag of a medication.
func (s *MedicationService) SetTaken(ctx context.Context, id int64, taken bool) error {
	ok, err := s.repo.SetMedicationTaken(ctx, id, taken)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("medication %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a medication permanently.
func (s *MedicationService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteMedication(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("medication %d: %w", id, ErrNotFound)
	}
	return nil
}

// Stats returns taken/pending counts for the collection.
func (s *MedicationService) Stats(ctx context.Context) (*domain.MedicationStats, error) {
	return s.repo.MedicationStats(ctx)
}

func validateMedication(m domain.Medication) error {
	if m.Name == "" || m.Dosage == "" || m.Frequency == "" || m.Time == "" {
		return fmt.Errorf("%w: name, dosage, frequency and time are required", ErrInvalidInput)
	}
	if !domain.ValidClockTime(m.Time) {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	return nil
}
