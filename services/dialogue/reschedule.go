// File: service/dialogue/reschedule.go
package dialogue

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"concierge/models"
	"concierge/utils"

	"go.uber.org/zap"
)

// bookingIDPattern finds a booking reference anywhere in a message. IDs are
// minted uppercase but guests type them any way they like.
var bookingIDPattern = regexp.MustCompile(`(?i)bk[a-z0-9]+`)

// FindBookingID extracts the first booking reference from a message,
// uppercased, or "" when the message has none.
func FindBookingID(message string) string {
	return strings.ToUpper(bookingIDPattern.FindString(message))
}

const notYourBookingReply = "Booking not found or you don't have permission to modify it."

// handleReschedule owns the date-change flow. The first reschedule message
// lists the guest's active bookings; once the conversation is in
// reschedule_requested, each message is parsed for a booking id and the new
// dates.
func (s *DefaultDialogueService) handleReschedule(ctx context.Context, state *models.ConversationState) string {
	if state.Step == models.StepRescheduleRequested {
		return s.continueReschedule(ctx, state)
	}

	active, err := s.activeBookings(ctx, state.UserID)
	if err != nil {
		utils.GetLogger().Error("Failed to list bookings for reschedule",
			zap.String("user_id", state.UserID), zap.Error(err))
		return "I encountered an error while retrieving your bookings. Please try again."
	}
	if len(active) == 0 {
		return "You don't have any active bookings to reschedule. Would you like to make a new booking instead?"
	}

	// Switching topic to a reschedule abandons any half-collected new
	// booking.
	state.ClearBookingData()
	state.UpdateStep(models.StepRescheduleRequested)
	return rescheduleOptions(active)
}

// rescheduleOptions presents the bookings eligible for a date change. With
// several bookings only the first five are listed and the guest must name
// one by id.
func rescheduleOptions(active []models.Booking) string {
	if len(active) == 1 {
		b := active[0]
		return fmt.Sprintf("I found your booking:\n\n"+
			"**%s**\n"+
			"• Dates: %s to %s\n"+
			"• Room: %s\n"+
			"• Guests: %d\n\n"+
			"Please provide your new preferred dates (check-in and check-out in YYYY-MM-DD format).",
			b.BookingID, b.CheckIn, b.CheckOut, title(b.RoomType), b.NumGuests)
	}

	var lines []string
	for i, b := range active {
		if i == 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** - %s to %s (%s)",
			i+1, b.BookingID, b.CheckIn, b.CheckOut, title(b.RoomType)))
	}
	return "You have multiple bookings:\n\n" + strings.Join(lines, "\n") +
		"\n\nPlease specify which booking ID you'd like to reschedule and provide the new dates."
}

// continueReschedule applies a requested date change. It needs a booking id
// and both new dates in the same message; anything less keeps the guest in
// the flow with a pointed prompt, and nothing is mutated until the new
// dates pass the same checks a new booking would.
func (s *DefaultDialogueService) continueReschedule(ctx context.Context, state *models.ConversationState) string {
	logger := utils.GetLogger()

	bookingID := FindBookingID(state.LastMessage)
	if bookingID == "" {
		return "Please provide the booking ID and new dates you'd like to reschedule to."
	}

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error("Failed to fetch booking for reschedule",
			zap.String("booking_id", bookingID), zap.Error(err))
		return "I encountered an error while retrieving your bookings. Please try again."
	}
	if booking == nil || booking.UserID != state.UserID {
		return notYourBookingReply
	}

	fields := s.Language.ExtractBookingFields(ctx, state.LastMessage)
	if fields.CheckIn == nil || fields.CheckOut == nil {
		return "Please provide both check-in and check-out dates in YYYY-MM-DD format."
	}
	if !datesBookable(*fields.CheckIn, *fields.CheckOut) {
		return "Invalid dates. Please ensure check-out is after check-in and both dates are in the future."
	}

	room, ok := s.Catalog.Room(booking.RoomType)
	if !ok {
		return "I'm sorry, but room information is currently unavailable. Please try again later."
	}

	booking.CheckIn = *fields.CheckIn
	booking.CheckOut = *fields.CheckOut
	booking.TotalPrice = models.TotalPrice(room.Price, booking.CheckIn, booking.CheckOut)

	if err := s.Bookings.Save(ctx, booking); err != nil {
		logger.Error("Failed to save rescheduled booking",
			zap.String("booking_id", booking.BookingID), zap.Error(err))
		return "Error updating booking. Please try again."
	}

	state.UpdateStep(models.StepInquiry)
	s.scheduleReminder(ctx, booking)

	logger.Info("Booking rescheduled",
		zap.String("booking_id", booking.BookingID),
		zap.String("check_in", booking.CheckIn),
		zap.String("check_out", booking.CheckOut),
	)
	return fmt.Sprintf("Booking rescheduled successfully!\n\n"+
		"**Updated Booking:**\n"+
		"• Booking ID: %s\n"+
		"• New dates: %s to %s\n"+
		"• Updated total: $%.2f\n\n"+
		"Is there anything else I can help you with?",
		booking.BookingID, booking.CheckIn, booking.CheckOut, booking.TotalPrice)
}
