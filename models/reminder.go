package models

// ReminderPayload is the asynq task payload for a pre-outing reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	AccountID string `json:"accountId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
