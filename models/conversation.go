package models

import "time"

// Step names the stage a conversation is in. The step decides how the next
// message is routed before intent classification gets a say.
type Step string

const (
	StepGreeting            Step = "greeting"
	StepGetBookingDetails   Step = "get_booking_details"
	StepBookingComplete     Step = "booking_complete"
	StepRescheduleRequested Step = "reschedule_requested"
	StepCancelRequested     Step = "cancel_requested"
	StepInquiry             Step = "inquiry"
)

// ConversationState is everything the dialogue manager remembers about one
// guest between messages. It round-trips through the state store as JSON.
type ConversationState struct {
	UserID      string        `json:"user_id"`
	Step        Step          `json:"step"`
	BookingData BookingFields `json:"booking_data"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// LastMessage is the raw text currently being processed. It is carried
	// for handlers but never persisted.
	LastMessage string `json:"-"`
}

// NewConversationState returns the state a first-time guest starts in.
func NewConversationState(userID string) *ConversationState {
	return &ConversationState{
		UserID:    userID,
		Step:      StepGreeting,
		UpdatedAt: time.Now().UTC(),
	}
}

// UpdateStep advances the conversation and stamps the transition time.
func (s *ConversationState) UpdateStep(step Step) {
	s.Step = step
	s.UpdatedAt = time.Now().UTC()
}

// ClearBookingData drops all collected fields, used when the guest changes
// topic to a reschedule or cancellation.
func (s *ConversationState) ClearBookingData() {
	s.BookingData = BookingFields{}
	s.UpdatedAt = time.Now().UTC()
}
