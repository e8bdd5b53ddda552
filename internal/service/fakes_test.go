package service

import (
	"sort"
	"sync"
	"time"

	"shutterbook/internal/db"
	"shutterbook/internal/directory"
	"shutterbook/internal/repository"
)

// fakeAvailabilityStore is an in-memory AvailabilityStore keyed by date. All
// methods hold the mutex for their whole body, matching the atomicity the SQL
// statements give the real repository.
type fakeAvailabilityStore struct {
	mu     sync.Mutex
	days   map[string]*db.AvailabilityDay
	nextID int
}

func newFakeAvailabilityStore() *fakeAvailabilityStore {
	return &fakeAvailabilityStore{days: make(map[string]*db.AvailabilityDay), nextID: 1}
}

func (f *fakeAvailabilityStore) key(date time.Time) string {
	return date.Format(DateLayout)
}

func (f *fakeAvailabilityStore) GetByDate(date time.Time) (*db.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.days[f.key(date)]
	if !ok {
		return nil, repository.ErrDayNotFound
	}
	return f.copyOf(day), nil
}

func (f *fakeAvailabilityStore) GetByID(id int) (*db.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, day := range f.days {
		if day.ID == id {
			return f.copyOf(day), nil
		}
	}
	return nil, repository.ErrDayNotFound
}

func (f *fakeAvailabilityStore) ListDays() ([]db.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db.AvailabilityDay, 0, len(f.days))
	for _, day := range f.days {
		out = append(out, *f.copyOf(day))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotDate.Before(out[j].SlotDate) })
	return out, nil
}

func (f *fakeAvailabilityStore) ListDatesWithSlots() ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []time.Time
	for _, day := range f.days {
		if len(day.TimeSlots) > 0 {
			out = append(out, day.SlotDate)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (f *fakeAvailabilityStore) Upsert(date time.Time, slots []string) (*db.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.days[f.key(date)]
	if !ok {
		day = &db.AvailabilityDay{ID: f.nextID, SlotDate: date}
		f.nextID++
		f.days[f.key(date)] = day
	}
	day.TimeSlots = append([]string(nil), slots...)
	return f.copyOf(day), nil
}

func (f *fakeAvailabilityStore) UpdateByID(id int, date time.Time, slots []string) (*db.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, day := range f.days {
		if day.ID == id {
			delete(f.days, k)
			day.SlotDate = date
			day.TimeSlots = append([]string(nil), slots...)
			f.days[f.key(date)] = day
			return f.copyOf(day), nil
		}
	}
	return nil, repository.ErrDayNotFound
}

func (f *fakeAvailabilityStore) DeleteByDate(date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.days[f.key(date)]
	delete(f.days, f.key(date))
	return ok, nil
}

func (f *fakeAvailabilityStore) DeleteByID(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, day := range f.days {
		if day.ID == id {
			delete(f.days, k)
			return nil
		}
	}
	return repository.ErrDayNotFound
}

func (f *fakeAvailabilityStore) ConsumeSlot(date time.Time, timeSlot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.days[f.key(date)]
	if !ok {
		return repository.ErrSlotTaken
	}
	for i, s := range day.TimeSlots {
		if s == timeSlot {
			day.TimeSlots = append(day.TimeSlots[:i], day.TimeSlots[i+1:]...)
			return nil
		}
	}
	return repository.ErrSlotTaken
}

func (f *fakeAvailabilityStore) RestoreSlot(date time.Time, timeSlot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.days[f.key(date)]
	if !ok {
		day = &db.AvailabilityDay{ID: f.nextID, SlotDate: date}
		f.nextID++
		f.days[f.key(date)] = day
	}
	for _, s := range day.TimeSlots {
		if s == timeSlot {
			return nil
		}
	}
	day.TimeSlots = append(day.TimeSlots, timeSlot)
	return nil
}

func (f *fakeAvailabilityStore) DeleteDaysBefore(date time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for k, day := range f.days {
		if day.SlotDate.Before(date) {
			delete(f.days, k)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeAvailabilityStore) copyOf(day *db.AvailabilityDay) *db.AvailabilityDay {
	cp := *day
	cp.TimeSlots = append([]string(nil), day.TimeSlots...)
	return &cp
}

func (f *fakeAvailabilityStore) slots(date time.Time) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.days[f.key(date)]
	if !ok {
		return nil
	}
	return append([]string(nil), day.TimeSlots...)
}

func (f *fakeAvailabilityStore) hasDay(date time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.days[f.key(date)]
	return ok
}

// fakeBookingStore is an in-memory BookingStore keyed by booking code.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*db.Booking
	nextID   int

	createErr error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]*db.Booking), nextID: 1}
}

func (f *fakeBookingStore) Create(b *db.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	f.bookings[b.Code] = &cp
	return nil
}

func (f *fakeBookingStore) GetByCode(code string) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[code]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingStore) DeleteByCode(code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[code]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(f.bookings, code)
	return nil
}

func (f *fakeBookingStore) ListByUser(userID string) ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListAll() ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

// fakeDirectory resolves users and services from fixed maps.
type fakeDirectory struct {
	users    map[string]*directory.User
	services map[string]*directory.Service
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users:    make(map[string]*directory.User),
		services: make(map[string]*directory.Service),
	}
}

func (f *fakeDirectory) GetUser(id string) (*directory.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeDirectory) GetService(id string) (*directory.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, directory.ErrServiceNotFound
	}
	return s, nil
}

type notification struct {
	code   string
	status string
}

// recordingNotifier records dispatches on a buffered channel so tests can wait
// for the async notification without sleeping.
type recordingNotifier struct {
	ch chan notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan notification, 64)}
}

func (n *recordingNotifier) SendBookingNotifications(user *directory.User, svc *directory.Service, booking *db.Booking, status string) {
	n.ch <- notification{code: booking.Code, status: status}
}

func (n *recordingNotifier) wait() (notification, bool) {
	select {
	case got := <-n.ch:
		return got, true
	case <-time.After(2 * time.Second):
		return notification{}, false
	}
}

// fixedClock reports a pinned instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
