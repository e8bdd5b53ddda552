package service

import (
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"shutterbook/internal/db"
	"shutterbook/internal/directory"
	"shutterbook/internal/entities"
	"shutterbook/internal/repository"
)

const (
	statusConfirmed = "confirmed"
	statusCancelled = "cancelled"
)

// ErrNotBookingOwner is returned when a client tries to cancel a booking that
// belongs to someone else.
var ErrNotBookingOwner = errors.New("booking does not belong to this user")

// BookingService records confirmed bookings. The one-booking-per-slot
// guarantee comes from consuming the slot in AvailabilityService before the
// booking row is written, never from a constraint on bookings itself.
type BookingService struct {
	Repo         BookingStore
	Availability *AvailabilityService
	Directory    DirectoryClient
	Sender       Notifier
}

func NewBookingService(repo BookingStore, availability *AvailabilityService, dir DirectoryClient, sender Notifier) *BookingService {
	return &BookingService{
		Repo:         repo,
		Availability: availability,
		Directory:    dir,
		Sender:       sender,
	}
}

// Book claims a slot for a client. The availability consume is the correctness
// boundary: when it reports the slot as taken the booking fails with
// repository.ErrSlotTaken and nothing has been written. Notification dispatch
// happens off the critical path; its failure never reverses the booking.
func (s *BookingService) Book(userID, serviceID string, date time.Time, timeSlot, details string) (*db.Booking, error) {
	date = normalizeDate(date)

	// Cheap precheck so the common "slot just disappeared" case fails before
	// any write. The consume below remains the authority.
	open, err := s.Availability.GetSlots(date)
	if err != nil {
		return nil, err
	}
	if !containsSlot(open, timeSlot) {
		return nil, repository.ErrSlotTaken
	}

	if err := s.Availability.ConsumeSlot(date, timeSlot); err != nil {
		return nil, err
	}

	booking := &db.Booking{
		Code:        uuid.NewString(),
		UserID:      userID,
		ServiceID:   serviceID,
		BookingDate: date,
		TimeSlot:    timeSlot,
		Details:     details,
	}
	if err := s.Repo.Create(booking); err != nil {
		// The slot was already consumed; put it back so it is not lost.
		if rerr := s.Availability.RestoreSlot(date, timeSlot); rerr != nil {
			log.Printf("ALERT: booking insert failed and slot %s on %s could not be restored, republish manually: %v",
				timeSlot, date.Format(DateLayout), rerr)
		}
		return nil, err
	}

	go s.notify(booking, statusConfirmed)
	return booking, nil
}

// Cancel deletes a booking and reopens its slot. Clients may only cancel their
// own bookings; the admin console passes isAdmin. A restore failure after the
// delete succeeded leaves the slot closed until the admin republishes it; it is
// logged loudly but not retried.
func (s *BookingService) Cancel(code, actingUserID string, isAdmin bool) error {
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return err
	}
	if !isAdmin && booking.UserID != actingUserID {
		return ErrNotBookingOwner
	}

	if err := s.Repo.DeleteByCode(code); err != nil {
		return err
	}
	if err := s.Availability.RestoreSlot(booking.BookingDate, booking.TimeSlot); err != nil {
		log.Printf("ALERT: booking %s cancelled but slot %s on %s could not be restored, republish manually: %v",
			code, booking.TimeSlot, booking.BookingDate.Format(DateLayout), err)
	}

	go s.notify(booking, statusCancelled)
	return nil
}

// ListForUser returns a client's bookings with the service display data
// resolved from the directory. A directory outage degrades the join, never the
// listing.
func (s *BookingService) ListForUser(userID string) ([]entities.BookingResponse, error) {
	bookings, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(bookings, false), nil
}

// ListAll returns every booking ascending by date and time-of-day, with user
// and service joined, for the admin console. Splitting upcoming from past is
// the caller's job.
func (s *BookingService) ListAll() ([]entities.BookingResponse, error) {
	bookings, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}
	sortBookings(bookings)
	return s.resolve(bookings, true), nil
}

func (s *BookingService) resolve(bookings []db.Booking, withUser bool) []entities.BookingResponse {
	services := make(map[string]*directory.Service)
	users := make(map[string]*directory.User)

	out := make([]entities.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp := entities.BookingResponse{
			Code:      b.Code,
			UserID:    b.UserID,
			ServiceID: b.ServiceID,
			Date:      b.BookingDate.Format(DateLayout),
			TimeSlot:  b.TimeSlot,
			Details:   b.Details,
			CreatedAt: b.CreatedAt,
		}

		svc, ok := services[b.ServiceID]
		if !ok {
			var err error
			svc, err = s.Directory.GetService(b.ServiceID)
			if err != nil {
				log.Printf("could not resolve service %s: %v", b.ServiceID, err)
			}
			services[b.ServiceID] = svc
		}
		if svc != nil {
			resp.Service = &entities.ServiceSummary{ID: svc.ID, Name: svc.Name, Price: svc.Price}
		}

		if withUser {
			user, ok := users[b.UserID]
			if !ok {
				var err error
				user, err = s.Directory.GetUser(b.UserID)
				if err != nil {
					log.Printf("could not resolve user %s: %v", b.UserID, err)
				}
				users[b.UserID] = user
			}
			if user != nil {
				resp.User = &entities.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email, Phone: user.Phone}
			}
		}

		out = append(out, resp)
	}
	return out
}

// notify resolves the booking's references and hands off to the sender. Runs
// in its own goroutine; every failure here is log-only.
func (s *BookingService) notify(booking *db.Booking, status string) {
	user, err := s.Directory.GetUser(booking.UserID)
	if err != nil {
		log.Printf("notification for booking %s: could not resolve user %s: %v", booking.Code, booking.UserID, err)
	}
	svc, err := s.Directory.GetService(booking.ServiceID)
	if err != nil {
		log.Printf("notification for booking %s: could not resolve service %s: %v", booking.Code, booking.ServiceID, err)
	}
	s.Sender.SendBookingNotifications(user, svc, booking, status)
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// sortBookings orders by date, then by the slot's time-of-day. The SQL ORDER BY
// on the raw label would put "9:00 AM" after "10:00 AM".
func sortBookings(bookings []db.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.BookingDate.Equal(b.BookingDate) {
			return a.BookingDate.Before(b.BookingDate)
		}
		ta, erra := parseSlotTime(a.TimeSlot)
		tb, errb := parseSlotTime(b.TimeSlot)
		if erra != nil || errb != nil {
			return a.TimeSlot < b.TimeSlot
		}
		return ta.Before(tb)
	})
}
