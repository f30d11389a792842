package postgres

import (
	"context"
	"database/sql"
	"errors"

	"medtrack/internal/domain"
)

// ListMedications returns all medications ordered by schedule time.
func (d *DB) ListMedications(ctx context.Context) ([]domain.Medication, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, dosage, frequency, dose_time, taken FROM medications ORDER BY dose_time ASC, id ASC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Medication{}
	for rows.Next() {
		var m domain.Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.Dosage, &m.Frequency, &m.Time, &m.Taken); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMedication returns a medication by id, or nil if absent.
func (d *DB) GetMedication(ctx context.Context, id int64) (*domain.Medication, error) {
	var m domain.Medication
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, name, dosage, frequency, dose_time, taken FROM medications WHERE id = $1;", id,
	).Scan(&m.ID, &m.Name, &m.Dosage, &m.Frequency, &m.Time, &m.Taken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMedication inserts a new medication and returns its id.
func (d *DB) CreateMedication(ctx context.Context, m domain.Medication) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO medications(name, dosage, frequency, dose_time, taken) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		m.Name, m.Dosage, m.Frequency, m.Time, m.Taken,
	).Scan(&id)
	return id, err
}

// UpdateMedication replaces a medication's fields wholesale.
func (d *DB) UpdateMedication(ctx context.Context, m domain.Medication) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE medications SET name = $1, dosage = $2, frequency = $3, dose_time = $4 WHERE id = $5;",
		m.Name, m.Dosage, m.Frequency, m.Time, m.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetMedicationTaken updates only the taken flag.
func (d *DB) SetMedicationTaken(ctx context.Context, id int64, taken bool) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "UPDATE medications SET taken = $1 WHERE id = $2;", taken, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteMedication removes a medication by id.
func (d *DB) DeleteMedication(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM medications WHERE id = $1;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MedicationStats returns taken/pending counts for the collection.
func (d *DB) MedicationStats(ctx context.Context) (*domain.MedicationStats, error) {
	var s domain.MedicationStats
	err := d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE taken),
			COUNT(*) FILTER (WHERE NOT taken)
		FROM medications;`,
	).Scan(&s.Total, &s.Taken, &s.Pending)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
