package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"shutterbook/internal/db"
)

var (
	// ErrDayNotFound is returned when no availability row exists for a date or id.
	ErrDayNotFound = errors.New("no availability for this date")

	// ErrSlotTaken is returned when a conditional slot removal matched no row,
	// meaning the slot was already consumed, never published, or expired.
	ErrSlotTaken = errors.New("time slot not available")
)

// dateArg binds calendar dates as YYYY-MM-DD strings so comparisons against
// the DATE column happen at day granularity no matter what time-of-day the
// caller's time.Time carried.
func dateArg(t time.Time) string {
	return t.Format("2006-01-02")
}

type AvailabilityRepository struct {
	DB *sql.DB
}

func NewAvailabilityRepository(database *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{DB: database}
}

func (r *AvailabilityRepository) GetByDate(date time.Time) (*db.AvailabilityDay, error) {
	query := `
		SELECT id, slot_date, time_slots, created_at, updated_at
		FROM availability_days
		WHERE slot_date = $1`

	var day db.AvailabilityDay
	err := r.DB.QueryRow(query, dateArg(date)).Scan(
		&day.ID, &day.SlotDate, pq.Array(&day.TimeSlots), &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("error querying availability for %s: %w", date.Format("2006-01-02"), err)
	}
	return &day, nil
}

func (r *AvailabilityRepository) GetByID(id int) (*db.AvailabilityDay, error) {
	query := `
		SELECT id, slot_date, time_slots, created_at, updated_at
		FROM availability_days
		WHERE id = $1`

	var day db.AvailabilityDay
	err := r.DB.QueryRow(query, id).Scan(
		&day.ID, &day.SlotDate, pq.Array(&day.TimeSlots), &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("error querying availability id %d: %w", id, err)
	}
	return &day, nil
}

func (r *AvailabilityRepository) ListDays() ([]db.AvailabilityDay, error) {
	query := `
		SELECT id, slot_date, time_slots, created_at, updated_at
		FROM availability_days
		ORDER BY slot_date`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying availability days: %w", err)
	}
	defer rows.Close()

	var days []db.AvailabilityDay
	for rows.Next() {
		var day db.AvailabilityDay
		if err := rows.Scan(&day.ID, &day.SlotDate, pq.Array(&day.TimeSlots), &day.CreatedAt, &day.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning availability day: %w", err)
		}
		days = append(days, day)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating availability days: %w", err)
	}
	return days, nil
}

func (r *AvailabilityRepository) ListDatesWithSlots() ([]time.Time, error) {
	query := `
		SELECT slot_date
		FROM availability_days
		WHERE cardinality(time_slots) > 0
		ORDER BY slot_date`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying available dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("error scanning available date: %w", err)
		}
		dates = append(dates, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating available dates: %w", err)
	}
	return dates, nil
}

// Upsert replaces the full slot set for a date, creating the row when needed.
func (r *AvailabilityRepository) Upsert(date time.Time, slots []string) (*db.AvailabilityDay, error) {
	query := `
		INSERT INTO availability_days (slot_date, time_slots)
		VALUES ($1, $2)
		ON CONFLICT (slot_date)
		DO UPDATE SET time_slots = EXCLUDED.time_slots, updated_at = now()
		RETURNING id, slot_date, time_slots, created_at, updated_at`

	var day db.AvailabilityDay
	err := r.DB.QueryRow(query, dateArg(date), pq.Array(slots)).Scan(
		&day.ID, &day.SlotDate, pq.Array(&day.TimeSlots), &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error upserting availability for %s: %w", date.Format("2006-01-02"), err)
	}
	return &day, nil
}

func (r *AvailabilityRepository) UpdateByID(id int, date time.Time, slots []string) (*db.AvailabilityDay, error) {
	query := `
		UPDATE availability_days
		SET slot_date = $2, time_slots = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, slot_date, time_slots, created_at, updated_at`

	var day db.AvailabilityDay
	err := r.DB.QueryRow(query, id, dateArg(date), pq.Array(slots)).Scan(
		&day.ID, &day.SlotDate, pq.Array(&day.TimeSlots), &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("error updating availability id %d: %w", id, err)
	}
	return &day, nil
}

// DeleteByDate removes a date's row. The bool reports whether a row existed;
// deleting a missing row is not an error.
func (r *AvailabilityRepository) DeleteByDate(date time.Time) (bool, error) {
	result, err := r.DB.Exec(`DELETE FROM availability_days WHERE slot_date = $1`, dateArg(date))
	if err != nil {
		return false, fmt.Errorf("error deleting availability for %s: %w", date.Format("2006-01-02"), err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *AvailabilityRepository) DeleteByID(id int) error {
	result, err := r.DB.Exec(`DELETE FROM availability_days WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting availability id %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrDayNotFound
	}
	return nil
}

// ConsumeSlot removes one slot from a date in a single conditional update.
// The WHERE clause only matches while the slot is still present, so out of any
// number of concurrent callers exactly one sees a row affected. A zero count is
// authoritative evidence the slot is taken; callers must not retry-and-recheck.
func (r *AvailabilityRepository) ConsumeSlot(date time.Time, timeSlot string) error {
	query := `
		UPDATE availability_days
		SET time_slots = array_remove(time_slots, $2), updated_at = now()
		WHERE slot_date = $1 AND $2 = ANY(time_slots)`

	result, err := r.DB.Exec(query, dateArg(date), timeSlot)
	if err != nil {
		return fmt.Errorf("error consuming slot %s on %s: %w", timeSlot, date.Format("2006-01-02"), err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSlotTaken
	}
	return nil
}

// RestoreSlot adds a slot back to a date. Idempotent: a slot already present is
// left alone, and a fully deleted row is recreated. Single statement, so it is
// safe against concurrent publishes and consumes on the same date.
func (r *AvailabilityRepository) RestoreSlot(date time.Time, timeSlot string) error {
	query := `
		INSERT INTO availability_days (slot_date, time_slots)
		VALUES ($1, ARRAY[$2])
		ON CONFLICT (slot_date)
		DO UPDATE SET time_slots = array_append(availability_days.time_slots, $2), updated_at = now()
		WHERE NOT $2 = ANY(availability_days.time_slots)`

	_, err := r.DB.Exec(query, dateArg(date), timeSlot)
	if err != nil {
		return fmt.Errorf("error restoring slot %s on %s: %w", timeSlot, date.Format("2006-01-02"), err)
	}
	return nil
}

// DeleteDaysBefore drops every availability row strictly before the given date.
func (r *AvailabilityRepository) DeleteDaysBefore(date time.Time) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM availability_days WHERE slot_date < $1`, dateArg(date))
	if err != nil {
		return 0, fmt.Errorf("error deleting availability before %s: %w", date.Format("2006-01-02"), err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading rows affected: %w", err)
	}
	return affected, nil
}
