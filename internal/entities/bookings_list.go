package entities

import "time"

// ServiceSummary is the display data for a booked service, resolved from the
// directory service. Nil when the directory could not be reached.
type ServiceSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// UserSummary is the display data for the booking client, resolved from the
// directory service.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type BookingResponse struct {
	Code      string          `json:"id"`
	UserID    string          `json:"userId"`
	ServiceID string          `json:"serviceId"`
	Date      string          `json:"date"`
	TimeSlot  string          `json:"timeSlot"`
	Details   string          `json:"details,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	User      *UserSummary    `json:"user,omitempty"`
	Service   *ServiceSummary `json:"service,omitempty"`
}
