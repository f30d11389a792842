package postgres

import (
	"context"
	"database/sql"
	"errors"

	"medtrack/internal/domain"
)

const vitalColumns = "id, blood_pressure, heart_rate, temperature, blood_sugar, recorded_date"

func scanVital(row interface{ Scan(...any) error }) (domain.VitalRecord, error) {
	var v domain.VitalRecord
	err := row.Scan(&v.ID, &v.BloodPressure, &v.HeartRate, &v.Temperature, &v.BloodSugar, &v.RecordedDate)
	return v, err
}

func (d *DB) queryVitals(ctx context.Context, query string, args ...any) ([]domain.VitalRecord, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.VitalRecord{}
	for rows.Next() {
		v, err := scanVital(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListVitals returns all vital records, most recent first.
func (d *DB) ListVitals(ctx context.Context) ([]domain.VitalRecord, error) {
	return d.queryVitals(ctx,
		"SELECT "+vitalColumns+" FROM vitals ORDER BY recorded_date DESC, id DESC;")
}

// ListVitalsByDateRange returns records recorded within [startDay, endDay],
// both local calendar days.
func (d *DB) ListVitalsByDateRange(ctx context.Context, startDay, endDay string) ([]domain.VitalRecord, error) {
	rangeStart, _, err := localDayBounds(startDay)
	if err != nil {
		return nil, err
	}
	_, rangeEnd, err := localDayBounds(endDay)
	if err != nil {
		return nil, err
	}
	return d.queryVitals(ctx,
		"SELECT "+vitalColumns+" FROM vitals WHERE recorded_date >= $1 AND recorded_date < $2 ORDER BY recorded_date DESC;",
		rangeStart, rangeEnd)
}

// LatestVital returns the most recently recorded record, or nil when the
// collection is empty.
func (d *DB) LatestVital(ctx context.Context) (*domain.VitalRecord, error) {
	v, err := scanVital(d.sql.QueryRowContext(ctx,
		"SELECT "+vitalColumns+" FROM vitals ORDER BY recorded_date DESC, id DESC LIMIT 1;"))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetVital returns a vital record by id, or nil if absent.
func (d *DB) GetVital(ctx context.Context, id int64) (*domain.VitalRecord, error) {
	v, err := scanVital(d.sql.QueryRowContext(ctx,
		"SELECT "+vitalColumns+" FROM vitals WHERE id = $1;", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVital inserts a new vital record and returns its id.
func (d *DB) CreateVital(ctx context.Context, v domain.VitalRecord) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO vitals(blood_pressure, heart_rate, temperature, blood_sugar, recorded_date) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		v.BloodPressure, v.HeartRate, v.Temperature, v.BloodSugar, v.RecordedDate.UTC(),
	).Scan(&id)
	return id, err
}

// UpdateVital replaces a record's measurements wholesale. The recording
// timestamp is preserved.
func (d *DB) UpdateVital(ctx context.Context, v domain.VitalRecord) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE vitals SET blood_pressure = $1, heart_rate = $2, temperature = $3, blood_sugar = $4 WHERE id = $5;",
		v.BloodPressure, v.HeartRate, v.Temperature, v.BloodSugar, v.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteVital removes a vital record by id.
func (d *DB) DeleteVital(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM vitals WHERE id = $1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// VitalStats returns numeric summaries over the collection. Only records
// carrying at least one numeric measurement are counted; SQL aggregates
// already skip NULLs, and empty aggregates come back as NULL and map to nil.
func (d *DB) VitalStats(ctx context.Context) (*domain.VitalStats, error) {
	var (
		s       domain.VitalStats
		avgHR   sql.NullFloat64
		minHR   sql.NullInt64
		maxHR   sql.NullInt64
		avgTemp sql.NullFloat64
		avgBS   sql.NullFloat64
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(heart_rate), MIN(heart_rate), MAX(heart_rate), AVG(temperature), AVG(blood_sugar)
		FROM vitals
		WHERE heart_rate IS NOT NULL OR temperature IS NOT NULL OR blood_sugar IS NOT NULL;`,
	).Scan(&s.TotalRecords, &avgHR, &minHR, &maxHR, &avgTemp, &avgBS)
	if err != nil {
		return nil, err
	}

	if avgHR.Valid {
		s.AvgHeartRate = &avgHR.Float64
	}
	if minHR.Valid {
		v := int(minHR.Int64)
		s.MinHeartRate = &v
	}
	if maxHR.Valid {
		v := int(maxHR.Int64)
		s.MaxHeartRate = &v
	}
	if avgTemp.Valid {
		s.AvgTemperature = &avgTemp.Float64
	}
	if avgBS.Valid {
		s.AvgBloodSugar = &avgBS.Float64
	}
	return &s, nil
}
