package service

import (
	"time"

	"shutterbook/internal/db"
	"shutterbook/internal/directory"
)

// AvailabilityStore is what the availability and reaper services need from the
// store. Satisfied by repository.AvailabilityRepository.
type AvailabilityStore interface {
	GetByDate(date time.Time) (*db.AvailabilityDay, error)
	GetByID(id int) (*db.AvailabilityDay, error)
	ListDays() ([]db.AvailabilityDay, error)
	ListDatesWithSlots() ([]time.Time, error)
	Upsert(date time.Time, slots []string) (*db.AvailabilityDay, error)
	UpdateByID(id int, date time.Time, slots []string) (*db.AvailabilityDay, error)
	DeleteByDate(date time.Time) (bool, error)
	DeleteByID(id int) error
	ConsumeSlot(date time.Time, timeSlot string) error
	RestoreSlot(date time.Time, timeSlot string) error
	DeleteDaysBefore(date time.Time) (int64, error)
}

// BookingStore is satisfied by repository.BookingRepository.
type BookingStore interface {
	Create(b *db.Booking) error
	GetByCode(code string) (*db.Booking, error)
	DeleteByCode(code string) error
	ListByUser(userID string) ([]db.Booking, error)
	ListAll() ([]db.Booking, error)
}

// DirectoryClient resolves user and service references owned by the content
// service. Satisfied by directory.Client.
type DirectoryClient interface {
	GetUser(id string) (*directory.User, error)
	GetService(id string) (*directory.Service, error)
}

// Notifier dispatches booking/cancellation notifications. Implementations must
// not block the caller on delivery.
type Notifier interface {
	SendBookingNotifications(user *directory.User, svc *directory.Service, booking *db.Booking, status string)
}
