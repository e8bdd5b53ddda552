package service

import (
	"errors"
	"fmt"
	"time"

	"shutterbook/internal/entities"
	"shutterbook/internal/repository"
)

// AvailabilityService is the single writer of the availability_days table: the
// admin publish/update/clear operations plus the consume/restore pair used by
// the booking flow.
type AvailabilityService struct {
	Repo AvailabilityStore
}

func NewAvailabilityService(repo AvailabilityStore) *AvailabilityService {
	return &AvailabilityService{Repo: repo}
}

// Publish replaces the full slot set for a date. An empty set means "no
// availability": the row is deleted rather than stored empty, so existence of
// a row always implies at least one open slot.
//
// The result is tagged: Day != nil means stored; Day == nil with Deleted true
// means an existing row was removed; Day == nil with Deleted false means there
// was nothing to delete.
func (s *AvailabilityService) Publish(date time.Time, slots []string) (*entities.PublishResult, error) {
	date = normalizeDate(date)
	slots = dedupeSlots(slots)

	if len(slots) == 0 {
		existed, err := s.Repo.DeleteByDate(date)
		if err != nil {
			return nil, fmt.Errorf("publish: %w", err)
		}
		return &entities.PublishResult{Deleted: existed}, nil
	}

	day, err := s.Repo.Upsert(date, slots)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	return &entities.PublishResult{
		Day: &entities.AvailabilityDayResponse{
			ID:        day.ID,
			Date:      day.SlotDate.Format(DateLayout),
			TimeSlots: sortSlots(day.TimeSlots),
		},
	}, nil
}

// GetSlots returns the open slots for a date, sorted by time-of-day. A date
// with no row yields an empty set; absence means zero availability, not an
// unknown date.
func (s *AvailabilityService) GetSlots(date time.Time) ([]string, error) {
	day, err := s.Repo.GetByDate(normalizeDate(date))
	if err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("get slots: %w", err)
	}
	return sortSlots(day.TimeSlots), nil
}

// ListDays returns every published day, ascending, for the admin console.
func (s *AvailabilityService) ListDays() ([]entities.AvailabilityDayResponse, error) {
	days, err := s.Repo.ListDays()
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	out := make([]entities.AvailabilityDayResponse, 0, len(days))
	for _, day := range days {
		out = append(out, entities.AvailabilityDayResponse{
			ID:        day.ID,
			Date:      day.SlotDate.Format(DateLayout),
			TimeSlots: sortSlots(day.TimeSlots),
		})
	}
	return out, nil
}

// ListAvailableDates returns the ascending dates that still have at least one
// open slot, for the client-facing date picker.
func (s *AvailabilityService) ListAvailableDates() ([]string, error) {
	dates, err := s.Repo.ListDatesWithSlots()
	if err != nil {
		return nil, fmt.Errorf("list available dates: %w", err)
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(DateLayout))
	}
	return out, nil
}

// UpdateDay rewrites an existing row by id. The empty-set-deletes convention
// applies here too. Returns repository.ErrDayNotFound for an unknown id.
func (s *AvailabilityService) UpdateDay(id int, date time.Time, slots []string) (*entities.PublishResult, error) {
	date = normalizeDate(date)
	slots = dedupeSlots(slots)

	if len(slots) == 0 {
		if err := s.Repo.DeleteByID(id); err != nil {
			return nil, err
		}
		return &entities.PublishResult{Deleted: true}, nil
	}

	day, err := s.Repo.UpdateByID(id, date, slots)
	if err != nil {
		return nil, err
	}
	return &entities.PublishResult{
		Day: &entities.AvailabilityDayResponse{
			ID:        day.ID,
			Date:      day.SlotDate.Format(DateLayout),
			TimeSlots: sortSlots(day.TimeSlots),
		},
	}, nil
}

// DeleteDay removes a row by id. Returns repository.ErrDayNotFound when the id
// is unknown.
func (s *AvailabilityService) DeleteDay(id int) error {
	return s.Repo.DeleteByID(id)
}

// ConsumeSlot atomically claims a slot. repository.ErrSlotTaken reports a lost
// race or a slot that was never open; the caller must treat it as final.
func (s *AvailabilityService) ConsumeSlot(date time.Time, timeSlot string) error {
	return s.Repo.ConsumeSlot(normalizeDate(date), timeSlot)
}

// RestoreSlot reopens a slot, recreating the day's row when it was deleted.
// Idempotent.
func (s *AvailabilityService) RestoreSlot(date time.Time, timeSlot string) error {
	return s.Repo.RestoreSlot(normalizeDate(date), timeSlot)
}

// RestorePublishedSlot reopens a slot only when the date still has a published
// row. The public restore endpoint keeps the original API's contract of
// rejecting unknown dates; cancellation uses RestoreSlot instead.
func (s *AvailabilityService) RestorePublishedSlot(date time.Time, timeSlot string) error {
	date = normalizeDate(date)
	if _, err := s.Repo.GetByDate(date); err != nil {
		return err
	}
	return s.Repo.RestoreSlot(date, timeSlot)
}
