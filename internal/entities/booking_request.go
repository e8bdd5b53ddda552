package entities

type BookSlotRequest struct {
	UserID    string `json:"userId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Details   string `json:"details"`
}

type RestoreSlotRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}
