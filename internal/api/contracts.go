package api

import (
	"time"

	"shutterbook/internal/db"
	"shutterbook/internal/entities"
)

// AvailabilityManager is what the availability handlers need from the service
// layer. Satisfied by service.AvailabilityService.
type AvailabilityManager interface {
	Publish(date time.Time, slots []string) (*entities.PublishResult, error)
	GetSlots(date time.Time) ([]string, error)
	ListDays() ([]entities.AvailabilityDayResponse, error)
	ListAvailableDates() ([]string, error)
	UpdateDay(id int, date time.Time, slots []string) (*entities.PublishResult, error)
	DeleteDay(id int) error
	RestorePublishedSlot(date time.Time, timeSlot string) error
}

// BookingManager is satisfied by service.BookingService.
type BookingManager interface {
	Book(userID, serviceID string, date time.Time, timeSlot, details string) (*db.Booking, error)
	Cancel(code, actingUserID string, isAdmin bool) error
	ListForUser(userID string) ([]entities.BookingResponse, error)
	ListAll() ([]entities.BookingResponse, error)
}

// Reaper is satisfied by service.ReaperService.
type Reaper interface {
	Run() error
}
