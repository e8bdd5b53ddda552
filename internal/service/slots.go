package service

import (
	"sort"
	"time"
)

// SlotTimeLayout is the time-of-day format of slot labels, e.g. "10:00 AM".
const SlotTimeLayout = "3:04 PM"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// parseSlotTime parses a slot label into a time-of-day.
func parseSlotTime(label string) (time.Time, error) {
	return time.Parse(SlotTimeLayout, label)
}

// normalizeDate truncates a timestamp to its calendar day at midnight UTC, the
// fixed reference all stored dates use.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dedupeSlots drops duplicate labels while keeping first occurrence order.
func dedupeSlots(slots []string) []string {
	seen := make(map[string]bool, len(slots))
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// sortSlots orders labels by time-of-day. Labels that fail to parse sort after
// the parseable ones, alphabetically, so bad data stays visible and stable.
func sortSlots(slots []string) []string {
	out := make([]string, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool {
		ti, erri := parseSlotTime(out[i])
		tj, errj := parseSlotTime(out[j])
		if erri != nil && errj != nil {
			return out[i] < out[j]
		}
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.Before(tj)
	})
	return out
}
