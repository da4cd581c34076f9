// File: service/dialogue/manager.go
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"concierge/models"
	"concierge/utils"

	"go.uber.org/zap"
)

// maxMessageRunes caps inbound message length; anything longer is rejected
// before the turn starts.
const maxMessageRunes = 1000

const (
	emptyInputReply  = "I didn't receive your message properly. Please try again."
	tooLongReply     = "Please keep your message under 1000 characters."
	turnFailureReply = "I encountered an error processing your request. Please try again later."
	stateSaveReply   = "Something went wrong on my end. Could you please send that message again?"
)

// ProcessMessage runs one conversation turn. The turn either completes and
// persists the updated state, or returns an apology without advancing the
// conversation; it never panics out to the caller.
func (s *DefaultDialogueService) ProcessMessage(ctx context.Context, userID, message string) string {
	logger := utils.GetLogger()

	message = strings.TrimSpace(message)
	if userID == "" || message == "" {
		return emptyInputReply
	}
	if utf8.RuneCountInString(message) > maxMessageRunes {
		return tooLongReply
	}

	// 1) Load (or start) this guest's conversation state.
	state, err := s.States.Get(ctx, userID)
	if err != nil {
		logger.Error("Failed to load conversation state", zap.String("user_id", userID), zap.Error(err))
		return turnFailureReply
	}
	state.LastMessage = message

	// 2) Classify the message and route it to the matching flow.
	intent := s.Language.ClassifyIntent(ctx, message)
	logger.Info("Processing message",
		zap.String("user_id", userID),
		zap.String("intent", string(intent)),
		zap.String("step", string(state.Step)),
	)
	reply := s.routeIntent(ctx, intent, state)

	// 3) Persist whatever the turn changed. A failed save means the guest
	// has to repeat themselves, which beats pretending we remembered.
	if err := s.States.Save(ctx, state); err != nil {
		logger.Error("Failed to save conversation state", zap.String("user_id", userID), zap.Error(err))
		return stateSaveReply
	}
	return reply
}

// routeIntent dispatches the turn to the handler for the classified intent.
// The intent set is closed (ParseIntent coerces unknown labels to inquiry),
// and a panicking handler degrades to an apology for its intent category so
// a single bad turn cannot take the conversation down.
func (s *DefaultDialogueService) routeIntent(ctx context.Context, intent models.Intent, state *models.ConversationState) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("Dialogue handler panicked",
				zap.String("user_id", state.UserID),
				zap.String("intent", string(intent)),
				zap.Any("panic", r),
			)
			reply = s.apologyFor(intent)
		}
	}()

	switch intent {
	case models.IntentGreeting:
		return s.handleGreeting(state)
	case models.IntentBooking:
		return s.handleBooking(ctx, state)
	case models.IntentReschedule:
		return s.handleReschedule(ctx, state)
	case models.IntentCancel:
		return s.handleCancel(ctx, state)
	default:
		return s.handleInquiry(ctx, state)
	}
}

// apologyFor picks the degradation reply for an intent category.
func (s *DefaultDialogueService) apologyFor(intent models.Intent) string {
	switch intent {
	case models.IntentBooking:
		return "I encountered an error while processing your booking. Please try again."
	case models.IntentReschedule:
		return "I encountered an error processing your reschedule request. Please try again."
	case models.IntentCancel:
		return "I encountered an error processing your cancellation request. Please try again."
	default:
		return s.defaultHelpMessage()
	}
}

// handleGreeting resets the conversation to the top of the menu.
func (s *DefaultDialogueService) handleGreeting(state *models.ConversationState) string {
	state.UpdateStep(models.StepGreeting)

	hotelName := s.Catalog.Name
	if hotelName == "" {
		hotelName = "our hotel"
	}
	return fmt.Sprintf("Hello! Welcome to %s!\n\n"+
		"I'm Maya, your booking assistant. I can help you with:\n"+
		"• Making new reservations\n"+
		"• Checking room availability\n"+
		"• Answering questions about amenities\n"+
		"• Managing existing bookings\n\n"+
		"How can I assist you today?", hotelName)
}

// activeBookings returns the guest's confirmed bookings in creation order.
func (s *DefaultDialogueService) activeBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.StatusConfirmed {
			active = append(active, b)
		}
	}
	return active, nil
}

// title uppercases the first letter of a room key for display.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// titleWords turns a policy key like "pet_policy" into "Pet Policy".
func titleWords(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = title(w)
	}
	return strings.Join(words, " ")
}
