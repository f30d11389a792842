// Package domain contains the core business entities and interfaces.
package domain

import "context"

// Medication represents a tracked medication and its dose schedule.
type Medication struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Time      string `json:"time"` // local clock time, "HH:MM"
	Taken     bool   `json:"taken"`
}

// MedicationStats aggregates the medication collection.
type MedicationStats struct {
	Total   int `json:"total"`
	Taken   int `json:"taken"`
	Pending int `json:"pending"`
}

// MedicationRepository is the port for medication persistence.
type MedicationRepository interface {
	ListMedications(ctx context.Context) ([]Medication, error)
	GetMedication(ctx context.Context, id int64) (*Medication, error)
	CreateMedication(ctx context.Context, m Medication) (int64, error)
	UpdateMedication(ctx context.Context, m Medication) (bool, error)
	SetMedicationTaken(ctx context.Context, id int64, taken bool) (bool, error)
	DeleteMedication(ctx context.Context, id int64) (bool, error)
	MedicationStats(ctx context.Context) (*MedicationStats, error)
}
