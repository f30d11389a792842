package domain

import (
	"context"
	"time"
)

// VitalRecord is a single vital-signs reading. Every measurement is
// optional, but a record must carry at least one.
type VitalRecord struct {
	ID            int64     `json:"id"`
	BloodPressure *string   `json:"blood_pressure"`
	HeartRate     *int      `json:"heart_rate"`
	Temperature   *float64  `json:"temperature"`
	BloodSugar    *float64  `json:"blood_sugar"`
	RecordedDate  time.Time `json:"recorded_date"`
}

// HasMeasurement reports whether at least one measurement is present.
func (v VitalRecord) HasMeasurement() bool {
	return v.BloodPressure != nil || v.HeartRate != nil || v.Temperature != nil || v.BloodSugar != nil
}

// VitalStats summarises the numeric vital fields, ignoring nulls.
// TotalRecords counts only records carrying at least one numeric
// measurement, so blood-pressure-only records are excluded. Aggregates
// are nil when no record carries the corresponding field.
type VitalStats struct {
	TotalRecords   int      `json:"total_records"`
	AvgHeartRate   *float64 `json:"avg_heart_rate"`
	MinHeartRate   *int     `json:"min_heart_rate"`
	MaxHeartRate   *int     `json:"max_heart_rate"`
	AvgTemperature *float64 `json:"avg_temperature"`
	AvgBloodSugar  *float64 `json:"avg_blood_sugar"`
}

// VitalRepository is the port for vital-signs persistence.
type VitalRepository interface {
	ListVitals(ctx context.Context) ([]VitalRecord, error)
	ListVitalsByDateRange(ctx context.Context, startDay, endDay string) ([]VitalRecord, error)
	LatestVital(ctx context.Context) (*VitalRecord, error)
	GetVital(ctx context.Context, id int64) (*VitalRecord, error)
	CreateVital(ctx context.Context, v VitalRecord) (int64, error)
	UpdateVital(ctx context.Context, v VitalRecord) (bool, error)
	DeleteVital(ctx context.Context, id int64) (bool, error)
	VitalStats(ctx context.Context) (*VitalStats, error)
}
