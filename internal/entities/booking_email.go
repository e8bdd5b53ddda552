package entities

// BookingEmailData feeds the HTML email template for booking confirmations and
// cancellations.
type BookingEmailData struct {
	UserName      string
	BookingCode   string
	ServiceName   string
	DateFormatted string
	TimeSlot      string
	Status        string
	CurrentYear   int
}
