package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"shutterbook/internal/repository"
)

// ReaperService purges availability that can no longer be booked: whole days in
// the past, and today's slots whose time-of-day has already gone by. It runs on
// the daily cron schedule and opportunistically before the admin availability
// read, so a skipped schedule never surfaces stale entries.
type ReaperService struct {
	Repo     AvailabilityStore
	Clock    Clock
	Location *time.Location
}

func NewReaperService(repo AvailabilityStore, clock Clock, loc *time.Location) *ReaperService {
	return &ReaperService{Repo: repo, Clock: clock, Location: loc}
}

// Run performs one cleanup pass. Each date's update is a single statement, so
// an error mid-run leaves no partially pruned day behind.
func (s *ReaperService) Run() error {
	now := s.Clock.Now().In(s.Location)
	today := normalizeDate(now)

	removed, err := s.Repo.DeleteDaysBefore(today)
	if err != nil {
		return fmt.Errorf("reaper: deleting past days: %w", err)
	}
	if removed > 0 {
		log.Printf("Reaper: removed %d availability day(s) before %s", removed, today.Format(DateLayout))
	}

	day, err := s.Repo.GetByDate(today)
	if err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			return nil
		}
		return fmt.Errorf("reaper: loading today's availability: %w", err)
	}

	kept := pruneSlots(day.TimeSlots, now)
	if len(kept) == len(day.TimeSlots) {
		return nil
	}

	if len(kept) == 0 {
		if _, err := s.Repo.DeleteByDate(today); err != nil {
			return fmt.Errorf("reaper: deleting today's emptied availability: %w", err)
		}
		log.Printf("Reaper: all of today's slots have passed, removed %s", today.Format(DateLayout))
		return nil
	}

	if _, err := s.Repo.Upsert(today, kept); err != nil {
		return fmt.Errorf("reaper: pruning today's slots: %w", err)
	}
	log.Printf("Reaper: pruned %d passed slot(s) for %s", len(day.TimeSlots)-len(kept), today.Format(DateLayout))
	return nil
}

// pruneSlots keeps labels strictly later than now's time-of-day. Labels that
// don't parse are kept: the reaper never destroys data it can't interpret.
func pruneSlots(slots []string, now time.Time) []string {
	nowMinutes := now.Hour()*60 + now.Minute()

	kept := make([]string, 0, len(slots))
	for _, label := range slots {
		t, err := parseSlotTime(label)
		if err != nil {
			log.Printf("Reaper: keeping unparseable slot label %q: %v", label, err)
			kept = append(kept, label)
			continue
		}
		if t.Hour()*60+t.Minute() > nowMinutes {
			kept = append(kept, label)
		}
	}
	return kept
}
