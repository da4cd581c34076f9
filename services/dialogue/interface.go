// File: service/dialogue/interface.go
package dialogue

import (
	"context"

	bookingRepo "concierge/database/repository/bookings"
	ai "concierge/services/intelligence"
	"concierge/services/tasks"

	"concierge/models"
)

// DialogueService drives one turn of a guest conversation: it takes the raw
// inbound message and returns the reply to send back. Implementations never
// return an error; every failure inside a turn degrades to an apology reply
// so the conversation survives.
type DialogueService interface {
	ProcessMessage(ctx context.Context, userID, message string) string
}

// DefaultDialogueService implements DialogueService.
type DefaultDialogueService struct {
	Language ai.LanguageService
	States   ai.StateStore
	Bookings bookingRepo.BookingRepository
	Catalog  *models.HotelCatalog

	// Reminders schedules pre-arrival messages; nil disables them (chat
	// mode, tests).
	Reminders tasks.ReminderScheduler
}
