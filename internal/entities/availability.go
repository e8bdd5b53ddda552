package entities

// PublishAvailabilityRequest is the admin payload for publishing a date's open
// slots. TimeSlots is the complete desired set, not a delta.
type PublishAvailabilityRequest struct {
	Date      string   `json:"date"`
	TimeSlots []string `json:"timeSlots"`
}

type AvailabilityDayResponse struct {
	ID        int      `json:"id"`
	Date      string   `json:"date"`
	TimeSlots []string `json:"timeSlots"`
}

// PublishResult distinguishes "stored" from "deleted because the slot set was
// empty", so callers never have to infer deletion from an empty array.
type PublishResult struct {
	Deleted bool
	Day     *AvailabilityDayResponse
}

type DateSlotsResponse struct {
	Success   bool     `json:"success"`
	TimeSlots []string `json:"timeSlots"`
}

type AvailableDatesResponse struct {
	AvailableDates []string `json:"availableDates"`
}
