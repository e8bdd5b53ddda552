package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"shutterbook/internal/db"
)

// ErrBookingNotFound is returned when no booking exists for a code.
var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings (code, user_id, service_id, booking_date, time_slot, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRow(query,
		b.Code,
		b.UserID,
		b.ServiceID,
		b.BookingDate.Format("2006-01-02"),
		b.TimeSlot,
		b.Details,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating booking for %s %s: %w", b.BookingDate.Format("2006-01-02"), b.TimeSlot, err)
	}
	return nil
}

func (r *BookingRepository) GetByCode(code string) (*db.Booking, error) {
	query := `
		SELECT id, code, user_id, service_id, booking_date, time_slot, details, created_at, updated_at
		FROM bookings
		WHERE code = $1`

	var b db.Booking
	err := r.DB.QueryRow(query, code).Scan(
		&b.ID, &b.Code, &b.UserID, &b.ServiceID, &b.BookingDate, &b.TimeSlot, &b.Details, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error querying booking %s: %w", code, err)
	}
	return &b, nil
}

func (r *BookingRepository) DeleteByCode(code string) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", code, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ListByUser(userID string) ([]db.Booking, error) {
	query := `
		SELECT id, code, user_id, service_id, booking_date, time_slot, details, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date, time_slot`

	return r.queryBookings(query, userID)
}

func (r *BookingRepository) ListAll() ([]db.Booking, error) {
	query := `
		SELECT id, code, user_id, service_id, booking_date, time_slot, details, created_at, updated_at
		FROM bookings
		ORDER BY booking_date, time_slot`

	return r.queryBookings(query)
}

func (r *BookingRepository) queryBookings(query string, args ...interface{}) ([]db.Booking, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := rows.Scan(&b.ID, &b.Code, &b.UserID, &b.ServiceID, &b.BookingDate, &b.TimeSlot, &b.Details, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating bookings: %w", err)
	}
	return bookings, nil
}
