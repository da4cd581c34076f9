package models

// ReminderPayload is the queued message behind a pre-arrival reminder. It
// carries just enough to re-fetch the booking when the task fires; the
// booking record at fire time is authoritative, not this snapshot.
type ReminderPayload struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`  // messaging recipient
	CheckIn   string `json:"check_in"` // "YYYY-MM-DD" at enqueue time, for staleness checks
}
