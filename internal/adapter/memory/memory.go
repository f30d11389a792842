// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"medtrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu           sync.Mutex
	medications  []domain.Medication
	reminders    []domain.Reminder
	vitals       []domain.VitalRecord
	appointments []domain.Appointment
	users        []*domain.User
	sessions     map[string]*domain.Session

	medicationIDCounter  int64
	reminderIDCounter    int64
	vitalIDCounter       int64
	appointmentIDCounter int64
	userIDCounter        int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.MedicationRepository = (*DB)(nil)
var _ domain.ReminderRepository = (*DB)(nil)
var _ domain.VitalRepository = (*DB)(nil)
var _ domain.AppointmentRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

func localDayBounds(localDay string) (time.Time, time.Time, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dayStart.UTC(), dayStart.Add(24 * time.Hour).UTC(), nil
}

// --- MedicationRepository ---

// ListMedications returns all medications ordered by schedule time.
func (db *DB) ListMedications(ctx context.Context) ([]domain.Medication, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Medication, len(db.medications))
	copy(result, db.medications)

	sort.Slice(result, func(i, j int) bool {
		if result[i].Time != result[j].Time {
			return result[i].Time < result[j].Time
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// GetMedication returns a medication by id, or nil if absent.
func (db *DB) GetMedication(ctx context.Context, id int64) (*domain.Medication, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, m := range db.medications {
		if m.ID == id {
			ret := m
			return &ret, nil
		}
	}
	return nil, nil
}

// CreateMedication adds a medication and returns its id.
func (db *DB) CreateMedication(ctx context.Context, m domain.Medication) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.medicationIDCounter++
	m.ID = db.medicationIDCounter
	db.medications = append(db.medications, m)
	return m.ID, nil
}

// UpdateMedication replaces a medication's fields, preserving the taken flag.
func (db *DB) UpdateMedication(ctx context.Context, m domain.Medication) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.medications {
		if db.medications[i].ID == m.ID {
			m.Taken = db.medications[i].Taken
			db.medications[i] = m
			return true, nil
		}
	}
	return false, nil
}

// SetMedicationTaken updates only the taken flag.
func (db *DB) SetMedicationTaken(ctx context.Context, id int64, taken bool) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.medications {
		if db.medications[i].ID == id {
			db.medications[i].Taken = taken
			return true, nil
		}
	}
	return false, nil
}

// DeleteMedication removes a medication by id.
func (db *DB) DeleteMedication(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, m := range db.medications {
		if m.ID == id {
			db.medications = append(db.medications[:i], db.medications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// MedicationStats returns taken/pending counts for the collection.
func (db *DB) MedicationStats(ctx context.Context) (*domain.MedicationStats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s := domain.MedicationStats{Total: len(db.medications)}
	for _, m := range db.medications {
		if m.Taken {
			s.Taken++
		} else {
			s.Pending++
		}
	}
	return &s, nil
}

// --- ReminderRepository ---

func sortRemindersAsc(rs []domain.Reminder) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].DateTime.Equal(rs[j].DateTime) {
			return rs[i].DateTime.Before(rs[j].DateTime)
		}
		return rs[i].ID < rs[j].ID
	})
}

// ListReminders returns all reminders ordered by schedule time ascending.
func (db *DB) ListReminders(ctx context.Context) ([]domain.Reminder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Reminder, len(db.reminders))
	copy(result, db.reminders)
	sortRemindersAsc(result)
	return result, nil
}

// ListRemindersForLocalDay returns reminders scheduled on a local calendar day.
func (db *DB) ListRemindersForLocalDay(ctx context.Context, localDay string) ([]domain.Reminder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	dayStart, dayEnd, err := localDayBounds(localDay)
	if err != nil {
		return nil, err
	}

	result := []domain.Reminder{}
	for _, r := range db.reminders {
		if !r.DateTime.Before(dayStart) && r.DateTime.Before(dayEnd) {
			result = append(result, r)
		}
	}
	sortRemindersAsc(result)
	return result, nil
}

// ListUpcomingReminders returns reminders within [now, now+horizon].
func (db *DB) ListUpcomingReminders(ctx context.Context, now time.Time, horizon time.Duration) ([]domain.Reminder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	limit := now.Add(horizon)
	result := []domain.Reminder{}
	for _, r := range db.reminders {
		if !r.DateTime.Before(now) && !r.DateTime.After(limit) {
			result = append(result, r)
		}
	}
	sortRemindersAsc(result)
	return result, nil
}

// GetReminder returns a reminder by id, or nil if absent.
func (db *DB) GetReminder(ctx context.Context, id int64) (*domain.Reminder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, r := range db.reminders {
		if r.ID == id {
			ret := r
			return &ret, nil
		}
	}
	return nil, nil
}

// CreateReminder adds a reminder and returns its id.
func (db *DB) CreateReminder(ctx context.Context, r domain.Reminder) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.reminderIDCounter++
	r.ID = db.reminderIDCounter
	r.DateTime = r.DateTime.UTC()
	db.reminders = append(db.reminders, r)
	return r.ID, nil
}

// UpdateReminder replaces a reminder's fields, preserving the notified flag.
func (db *DB) UpdateReminder(ctx context.Context, r domain.Reminder) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.reminders {
		if db.reminders[i].ID == r.ID {
			r.Notified = db.reminders[i].Notified
			r.DateTime = r.DateTime.UTC()
			db.reminders[i] = r
			return true, nil
		}
	}
	return false, nil
}

// SetReminderNotified marks a reminder as notified.
func (db *DB) SetReminderNotified(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.reminders {
		if db.reminders[i].ID == id {
			db.reminders[i].Notified = true
			return true, nil
		}
	}
	return false, nil
}

// DeleteReminder removes a reminder by id.
func (db *DB) DeleteReminder(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, r := range db.reminders {
		if r.ID == id {
			db.reminders = append(db.reminders[:i], db.reminders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ReminderStats returns today/upcoming/past counts relative to now.
func (db *DB) ReminderStats(ctx context.Context, now time.Time) (*domain.ReminderStats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	dayStart, dayEnd, err := localDayBounds(now.In(time.Local).Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	s := domain.ReminderStats{Total: len(db.reminders)}
	for _, r := range db.reminders {
		if !r.DateTime.Before(dayStart) && r.DateTime.Before(dayEnd) {
			s.Today++
		}
		if r.DateTime.Before(now) {
			s.Past++
		} else {
			s.Upcoming++
		}
	}
	return &s, nil
}

// --- VitalRepository ---

func sortVitalsDesc(vs []domain.VitalRecord) {
	sort.Slice(vs, func(i, j int) bool {
		if !vs[i].RecordedDate.Equal(vs[j].RecordedDate) {
			return vs[i].RecordedDate.After(vs[j].RecordedDate)
		}
		return vs[i].ID > vs[j].ID
	})
}

// ListVitals returns all vital records, most recent first.
func (db *DB) ListVitals(ctx context.Context) ([]domain.VitalRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.VitalRecord, len(db.vitals))
	copy(result, db.vitals)
	sortVitalsDesc(result)
	return result, nil
}

// ListVitalsByDateRange returns records recorded within [startDay, endDay].
func (db *DB) ListVitalsByDateRange(ctx context.Context, startDay, endDay string) ([]domain.VitalRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rangeStart, _, err := localDayBounds(startDay)
	if err != nil {
		return nil, err
	}
	_, rangeEnd, err := localDayBounds(endDay)
	if err != nil {
		return nil, err
	}

	result := []domain.VitalRecord{}
	for _, v := range db.vitals {
		if !v.RecordedDate.Before(rangeStart) && v.RecordedDate.Before(rangeEnd) {
			result = append(result, v)
		}
	}
	sortVitalsDesc(result)
	return result, nil
}

// LatestVital returns the most recently recorded record, or nil when empty.
func (db *DB) LatestVital(ctx context.Context) (*domain.VitalRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var latest *domain.VitalRecord
	for i := range db.vitals {
		v := &db.vitals[i]
		if latest == nil || v.RecordedDate.After(latest.RecordedDate) ||
			(v.RecordedDate.Equal(latest.RecordedDate) && v.ID > latest.ID) {
			latest = v
		}
	}
	if latest == nil {
		return nil, nil
	}
	ret := *latest
	return &ret, nil
}

// GetVital returns a vital record by id, or nil if absent.
func (db *DB) GetVital(ctx context.Context, id int64) (*domain.VitalRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, v := range db.vitals {
		if v.ID == id {
			ret := v
			return &ret, nil
		}
	}
	return nil, nil
}

// CreateVital adds a vital record and returns its id.
func (db *DB) CreateVital(ctx context.Context, v domain.VitalRecord) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.vitalIDCounter++
	v.ID = db.vitalIDCounter
	v.RecordedDate = v.RecordedDate.UTC()
	db.vitals = append(db.vitals, v)
	return v.ID, nil
}

// UpdateVital replaces a record's measurements, preserving its timestamp.
func (db *DB) UpdateVital(ctx context.Context, v domain.VitalRecord) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.vitals {
		if db.vitals[i].ID == v.ID {
			v.RecordedDate = db.vitals[i].RecordedDate
			db.vitals[i] = v
			return true, nil
		}
	}
	return false, nil
}

// DeleteVital removes a vital record by id.
func (db *DB) DeleteVital(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, v := range db.vitals {
		if v.ID == id {
			db.vitals = append(db.vitals[:i], db.vitals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// VitalStats returns numeric summaries over the collection, skipping
// absent measurements the way SQL aggregates skip NULLs. Records with no
// numeric measurement at all are excluded from the count.
func (db *DB) VitalStats(ctx context.Context) (*domain.VitalStats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var s domain.VitalStats

	var (
		hrSum, tempSum, bsSum float64
		hrCount, tempN, bsN   int
		minHR, maxHR          int
	)
	for _, v := range db.vitals {
		if v.HeartRate == nil && v.Temperature == nil && v.BloodSugar == nil {
			continue
		}
		s.TotalRecords++
		if v.HeartRate != nil {
			hr := *v.HeartRate
			if hrCount == 0 || hr < minHR {
				minHR = hr
			}
			if hrCount == 0 || hr > maxHR {
				maxHR = hr
			}
			hrSum += float64(hr)
			hrCount++
		}
		if v.Temperature != nil {
			tempSum += *v.Temperature
			tempN++
		}
		if v.BloodSugar != nil {
			bsSum += *v.BloodSugar
			bsN++
		}
	}

	if hrCount > 0 {
		avg := hrSum / float64(hrCount)
		lo, hi := minHR, maxHR
		s.AvgHeartRate = &avg
		s.MinHeartRate = &lo
		s.MaxHeartRate = &hi
	}
	if tempN > 0 {
		avg := tempSum / float64(tempN)
		s.AvgTemperature = &avg
	}
	if bsN > 0 {
		avg := bsSum / float64(bsN)
		s.AvgBloodSugar = &avg
	}
	return &s, nil
}

// --- AppointmentRepository ---

func sortAppointmentsAsc(as []domain.Appointment) {
	sort.Slice(as, func(i, j int) bool {
		if !as[i].DateTime.Equal(as[j].DateTime) {
			return as[i].DateTime.Before(as[j].DateTime)
		}
		return as[i].ID < as[j].ID
	})
}

// ListAppointments returns all appointments ordered by schedule time ascending.
func (db *DB) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Appointment, len(db.appointments))
	copy(result, db.appointments)
	sortAppointmentsAsc(result)
	return result, nil
}

// ListUpcomingAppointments returns appointments at or after now, soonest first.
func (db *DB) ListUpcomingAppointments(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Appointment{}
	for _, a := range db.appointments {
		if !a.DateTime.Before(now) {
			result = append(result, a)
		}
	}
	sortAppointmentsAsc(result)
	return result, nil
}

// ListPastAppointments returns appointments before now, most recent first.
func (db *DB) ListPastAppointments(ctx context.Context, now time.Time) ([]domain.Appointment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Appointment{}
	for _, a := range db.appointments {
		if a.DateTime.Before(now) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateTime.After(result[j].DateTime)
	})
	return result, nil
}

// ListAppointmentsByType returns appointments with an exact type match.
func (db *DB) ListAppointmentsByType(ctx context.Context, appType string) ([]domain.Appointment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Appointment{}
	for _, a := range db.appointments {
		if a.Type == appType {
			result = append(result, a)
		}
	}
	sortAppointmentsAsc(result)
	return result, nil
}

// ListAppointmentsByDoctor returns appointments whose doctor name contains
// the given substring, case-insensitively.
func (db *DB) ListAppointmentsByDoctor(ctx context.Context, doctor string) ([]domain.Appointment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	needle := strings.ToLower(doctor)
	result := []domain.Appointment{}
	for _, a := range db.appointments {
		if strings.Contains(strings.ToLower(a.Doctor), needle) {
			result = append(result, a)
		}
	}
	sortAppointmentsAsc(result)
	return result, nil
}

// GetAppointment returns an appointment by id, or nil if absent.
func (db *DB) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.appointments {
		if a.ID == id {
			ret := a
			return &ret, nil
		}
	}
	return nil, nil
}

// CreateAppointment adds an appointment and returns its id.
func (db *DB) CreateAppointment(ctx context.Context, a domain.Appointment) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.appointmentIDCounter++
	a.ID = db.appointmentIDCounter
	a.DateTime = a.DateTime.UTC()
	db.appointments = append(db.appointments, a)
	return a.ID, nil
}

// UpdateAppointment replaces an appointment's fields wholesale.
func (db *DB) UpdateAppointment(ctx context.Context, a domain.Appointment) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.appointments {
		if db.appointments[i].ID == a.ID {
			a.DateTime = a.DateTime.UTC()
			db.appointments[i] = a
			return true, nil
		}
	}
	return false, nil
}

// DeleteAppointment removes an appointment by id.
func (db *DB) DeleteAppointment(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, a := range db.appointments {
		if a.ID == id {
			db.appointments = append(db.appointments[:i], db.appointments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// AppointmentStats returns upcoming/past and distinct type/doctor counts
// relative to now.
func (db *DB) AppointmentStats(ctx context.Context, now time.Time) (*domain.AppointmentStats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	types := map[string]struct{}{}
	doctors := map[string]struct{}{}
	s := domain.AppointmentStats{Total: len(db.appointments)}
	for _, a := range db.appointments {
		if a.DateTime.Before(now) {
			s.Past++
		} else {
			s.Upcoming++
		}
		types[a.Type] = struct{}{}
		doctors[a.Doctor] = struct{}{}
	}
	s.Types = len(types)
	s.Doctors = len(doctors)
	return &s, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
