package db

import "time"

// AvailabilityDay is one calendar date's set of open time slots, as published
// by the studio admin. A day with no open slots has no row at all.
type AvailabilityDay struct {
	ID        int
	SlotDate  time.Time
	TimeSlots []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Booking is a confirmed client claim on one slot of one date for one service.
// UserID and ServiceID are opaque references into the directory service.
type Booking struct {
	ID          int
	Code        string
	UserID      string
	ServiceID   string
	BookingDate time.Time
	TimeSlot    string
	Details     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
