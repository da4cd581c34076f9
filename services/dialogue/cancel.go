// File: service/dialogue/cancel.go
package dialogue

import (
	"context"
	"fmt"
	"strings"

	"concierge/models"
	"concierge/utils"

	"go.uber.org/zap"
)

// confirmCancelPhrase is the literal a guest must type before anything is
// cancelled. The check is on the phrase, not the conversation step, so a
// guest who pastes it straight in still gets through.
const confirmCancelPhrase = "confirm cancel"

// handleCancel owns the cancellation flow. Without the confirmation phrase
// it only lists what could be cancelled; the destructive part runs solely
// from confirmCancellation.
func (s *DefaultDialogueService) handleCancel(ctx context.Context, state *models.ConversationState) string {
	if strings.Contains(strings.ToLower(state.LastMessage), confirmCancelPhrase) {
		return s.confirmCancellation(ctx, state)
	}

	active, err := s.activeBookings(ctx, state.UserID)
	if err != nil {
		utils.GetLogger().Error("Failed to list bookings for cancellation",
			zap.String("user_id", state.UserID), zap.Error(err))
		return "I encountered an error while retrieving your bookings. Please try again."
	}
	if len(active) == 0 {
		return "You don't have any active bookings to cancel."
	}

	state.ClearBookingData()
	state.UpdateStep(models.StepCancelRequested)
	return s.cancellationOptions(active)
}

// cancellationOptions shows what would be cancelled and how to confirm it.
func (s *DefaultDialogueService) cancellationOptions(active []models.Booking) string {
	policy := s.policyOr("cancellation", "Please contact us for cancellation terms")

	if len(active) == 1 {
		b := active[0]
		return fmt.Sprintf("I found your booking:\n\n"+
			"**%s**\n"+
			"• Dates: %s to %s\n"+
			"• Room: %s\n"+
			"• Total: $%.2f\n\n"+
			"⚠️ **Cancellation Policy:** %s\n\n"+
			"Type 'CONFIRM CANCEL' if you want to proceed with cancelling this booking.",
			b.BookingID, b.CheckIn, b.CheckOut, title(b.RoomType), b.TotalPrice, policy)
	}

	var lines []string
	for i, b := range active {
		if i == 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** - %s to %s ($%.2f)",
			i+1, b.BookingID, b.CheckIn, b.CheckOut, b.TotalPrice))
	}
	return "You have multiple bookings:\n\n" + strings.Join(lines, "\n") +
		fmt.Sprintf("\n\n⚠️ **Cancellation Policy:** %s\n\n", policy) +
		"Type 'CONFIRM CANCEL' followed by the booking ID (for example 'CONFIRM CANCEL " + active[0].BookingID + "') to cancel one of them."
}

// confirmCancellation cancels a booking after the guest typed the
// confirmation phrase. With several active bookings the message must also
// name the booking id; a named id that isn't the guest's own is refused.
func (s *DefaultDialogueService) confirmCancellation(ctx context.Context, state *models.ConversationState) string {
	active, err := s.activeBookings(ctx, state.UserID)
	if err != nil {
		utils.GetLogger().Error("Failed to list bookings for cancellation",
			zap.String("user_id", state.UserID), zap.Error(err))
		return "I encountered an error while retrieving your bookings. Please try again."
	}
	if len(active) == 0 {
		return "No active bookings found to cancel."
	}

	if id := FindBookingID(state.LastMessage); id != "" {
		for i := range active {
			if active[i].BookingID == id {
				return s.cancelBooking(ctx, state, &active[i])
			}
		}
		return notYourBookingReply
	}

	if len(active) == 1 {
		return s.cancelBooking(ctx, state, &active[0])
	}
	return "You have multiple active bookings. Please include the booking ID, for example 'CONFIRM CANCEL " + active[0].BookingID + "'."
}

// cancelBooking flips the booking to cancelled and drops its reminder. The
// record is kept for history.
func (s *DefaultDialogueService) cancelBooking(ctx context.Context, state *models.ConversationState, booking *models.Booking) string {
	logger := utils.GetLogger()

	booking.Status = models.StatusCancelled
	if err := s.Bookings.Save(ctx, booking); err != nil {
		logger.Error("Failed to save cancelled booking",
			zap.String("booking_id", booking.BookingID), zap.Error(err))
		return "Error cancelling booking. Please try again or contact us directly."
	}

	state.UpdateStep(models.StepInquiry)

	if s.Reminders != nil {
		if err := s.Reminders.CancelCheckInReminder(ctx, booking.BookingID); err != nil {
			logger.Warn("Failed to drop check-in reminder",
				zap.String("booking_id", booking.BookingID), zap.Error(err))
		}
	}

	logger.Info("Booking cancelled",
		zap.String("booking_id", booking.BookingID),
		zap.String("user_id", state.UserID),
	)
	return fmt.Sprintf("Booking cancelled successfully!\n\n"+
		"**Cancelled Booking:**\n"+
		"• Booking ID: %s\n"+
		"• Dates: %s to %s\n"+
		"• Amount: $%.2f\n\n"+
		"You will receive a cancellation confirmation email shortly. Is there anything else I can help you with?",
		booking.BookingID, booking.CheckIn, booking.CheckOut, booking.TotalPrice)
}
