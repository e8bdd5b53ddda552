package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shutterbook/internal/repository"
)

func TestPublishStoresSortedDedupedSlots(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")

	result, err := svc.Publish(date, []string{"2:00 PM", "10:00 AM", "2:00 PM", ""})
	require.NoError(t, err)
	require.NotNil(t, result.Day)
	assert.Equal(t, "2026-09-10", result.Day.Date)
	assert.Equal(t, []string{"10:00 AM", "2:00 PM"}, result.Day.TimeSlots)
}

func TestPublishReplacesExistingSlotSet(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")

	_, err := svc.Publish(date, []string{"10:00 AM", "11:00 AM"})
	require.NoError(t, err)
	result, err := svc.Publish(date, []string{"3:00 PM"})
	require.NoError(t, err)

	require.NotNil(t, result.Day)
	assert.Equal(t, []string{"3:00 PM"}, result.Day.TimeSlots)
	assert.Equal(t, []string{"3:00 PM"}, store.slots(date))
}

func TestPublishIsIdempotent(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")

	first, err := svc.Publish(date, []string{"10:00 AM", "2:00 PM"})
	require.NoError(t, err)
	second, err := svc.Publish(date, []string{"10:00 AM", "2:00 PM"})
	require.NoError(t, err)

	assert.Equal(t, first.Day.ID, second.Day.ID)
	assert.Equal(t, first.Day.TimeSlots, second.Day.TimeSlots)
}

func TestPublishEmptySetDeletesExistingDay(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")

	_, err := svc.Publish(date, []string{"10:00 AM"})
	require.NoError(t, err)

	result, err := svc.Publish(date, nil)
	require.NoError(t, err)
	assert.Nil(t, result.Day)
	assert.True(t, result.Deleted)
	assert.False(t, store.hasDay(date))
}

func TestPublishEmptySetNothingToDelete(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityStore())

	result, err := svc.Publish(timeMustParse(t, "2026-09-10"), []string{})
	require.NoError(t, err)
	assert.Nil(t, result.Day)
	assert.False(t, result.Deleted)
}

func TestGetSlotsUnknownDateIsEmpty(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityStore())

	slots, err := svc.GetSlots(timeMustParse(t, "2026-01-01"))
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetSlotsSorted(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")
	_, err := store.Upsert(date, []string{"2:00 PM", "9:00 AM"})
	require.NoError(t, err)

	slots, err := svc.GetSlots(date)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "2:00 PM"}, slots)
}

func TestListAvailableDatesSkipsEmptyDays(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	_, err := store.Upsert(timeMustParse(t, "2026-09-12"), []string{"10:00 AM"})
	require.NoError(t, err)
	_, err = store.Upsert(timeMustParse(t, "2026-09-10"), []string{"11:00 AM"})
	require.NoError(t, err)
	_, err = store.Upsert(timeMustParse(t, "2026-09-11"), []string{})
	require.NoError(t, err)

	dates, err := svc.ListAvailableDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-10", "2026-09-12"}, dates)
}

func TestUpdateDayEmptySetDeletesRow(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")
	day, err := store.Upsert(date, []string{"10:00 AM"})
	require.NoError(t, err)

	result, err := svc.UpdateDay(day.ID, date, nil)
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.False(t, store.hasDay(date))
}

func TestUpdateDayUnknownID(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityStore())

	_, err := svc.UpdateDay(99, timeMustParse(t, "2026-09-10"), []string{"10:00 AM"})
	assert.ErrorIs(t, err, repository.ErrDayNotFound)
}

func TestConsumeThenRestoreRoundTrip(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")
	_, err := svc.Publish(date, []string{"10:00 AM", "2:00 PM"})
	require.NoError(t, err)

	require.NoError(t, svc.ConsumeSlot(date, "10:00 AM"))
	assert.Equal(t, []string{"2:00 PM"}, store.slots(date))

	require.NoError(t, svc.RestoreSlot(date, "10:00 AM"))
	slots, err := svc.GetSlots(date)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "2:00 PM"}, slots)
}

func TestConsumeSlotAlreadyTaken(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")
	_, err := svc.Publish(date, []string{"10:00 AM"})
	require.NoError(t, err)

	require.NoError(t, svc.ConsumeSlot(date, "10:00 AM"))
	assert.ErrorIs(t, svc.ConsumeSlot(date, "10:00 AM"), repository.ErrSlotTaken)
}

func TestConsumeSlotUnknownDate(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityStore())

	err := svc.ConsumeSlot(timeMustParse(t, "2026-09-10"), "10:00 AM")
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestRestoreSlotRecreatesDeletedDay(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")

	require.NoError(t, svc.RestoreSlot(date, "10:00 AM"))
	assert.Equal(t, []string{"10:00 AM"}, store.slots(date))
}

func TestRestoreSlotIdempotent(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")

	require.NoError(t, svc.RestoreSlot(date, "10:00 AM"))
	require.NoError(t, svc.RestoreSlot(date, "10:00 AM"))
	assert.Equal(t, []string{"10:00 AM"}, store.slots(date))
}

func TestRestorePublishedSlotUnknownDate(t *testing.T) {
	svc := NewAvailabilityService(newFakeAvailabilityStore())

	err := svc.RestorePublishedSlot(timeMustParse(t, "2026-09-10"), "10:00 AM")
	assert.ErrorIs(t, err, repository.ErrDayNotFound)
}

func TestRestorePublishedSlotKnownDate(t *testing.T) {
	store := newFakeAvailabilityStore()
	svc := NewAvailabilityService(store)
	date := timeMustParse(t, "2026-09-10")
	_, err := svc.Publish(date, []string{"2:00 PM"})
	require.NoError(t, err)

	require.NoError(t, svc.RestorePublishedSlot(date, "10:00 AM"))
	slots, err := svc.GetSlots(date)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "2:00 PM"}, slots)
}
