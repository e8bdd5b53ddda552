package db

import "database/sql"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS availability_days (
	id SERIAL PRIMARY KEY,
	slot_date DATE UNIQUE NOT NULL,
	time_slots TEXT[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	id SERIAL PRIMARY KEY,
	code UUID UNIQUE NOT NULL,
	user_id TEXT NOT NULL,
	service_id TEXT NOT NULL,
	booking_date DATE NOT NULL,
	time_slot TEXT NOT NULL,
	details TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_bookings_booking_date ON bookings(booking_date);
`

// Migrate creates the schema on startup. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}
