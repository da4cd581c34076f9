package models

import "strings"

// Intent is the classified purpose of an inbound guest message. It is a
// closed set: anything the classifier emits outside this set is coerced
// to IntentInquiry so downstream routing never sees an unknown value.
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentBooking    Intent = "booking"
	IntentReschedule Intent = "reschedule"
	IntentCancel     Intent = "cancel"
	IntentInquiry    Intent = "inquiry"
)

// ParseIntent normalizes a raw classifier label into the closed intent set.
// Unknown, empty, or malformed labels fall back to IntentInquiry.
func ParseIntent(raw string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(raw))) {
	case IntentGreeting:
		return IntentGreeting
	case IntentBooking:
		return IntentBooking
	case IntentReschedule:
		return IntentReschedule
	case IntentCancel:
		return IntentCancel
	case IntentInquiry:
		return IntentInquiry
	default:
		return IntentInquiry
	}
}
