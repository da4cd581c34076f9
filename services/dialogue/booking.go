// File: service/dialogue/booking.go
package dialogue

import (
	"context"
	"fmt"
	"strings"

	"concierge/models"
	"concierge/utils"

	"go.uber.org/zap"
)

// handleBooking is the new-reservation flow. A booking intent anywhere
// outside detail collection (re)starts the flow with the room menu; inside
// it, each message tops up the collected fields until they validate.
func (s *DefaultDialogueService) handleBooking(ctx context.Context, state *models.ConversationState) string {
	if state.Step == models.StepGetBookingDetails {
		return s.collectBookingDetails(ctx, state)
	}
	return s.startBookingFlow(state)
}

// startBookingFlow presents the rooms and the checklist of details needed,
// then moves the conversation into collection.
func (s *DefaultDialogueService) startBookingFlow(state *models.ConversationState) string {
	if len(s.Catalog.RoomTypes) == 0 {
		return "I'm sorry, but room information is currently unavailable. Please try again later."
	}
	state.UpdateStep(models.StepGetBookingDetails)

	var rooms []string
	var roomNames []string
	for _, rt := range s.Catalog.RoomTypes {
		rooms = append(rooms, fmt.Sprintf("• %s: $%g/night (up to %d guests)", title(rt.Key), rt.Price, rt.Capacity))
		roomNames = append(roomNames, title(rt.Key))
	}

	return "Perfect! I'd love to help you book a room.\n\n" +
		"Here are our available rooms:\n" + strings.Join(rooms, "\n") +
		fmt.Sprintf("\n\nTo proceed, please provide:\n"+
			"• Check-in date (YYYY-MM-DD)\n"+
			"• Check-out date (YYYY-MM-DD)\n"+
			"• Room type (%s)\n"+
			"• Number of guests\n"+
			"• Your full name\n"+
			"• Email address\n"+
			"• Phone number\n\n"+
			"You can provide all details in one message or step by step!", strings.Join(roomNames, ", "))
}

// collectBookingDetails merges whatever the latest message adds into the
// running field set (later values win), validates, and either reports
// progress or creates the booking.
func (s *DefaultDialogueService) collectBookingDetails(ctx context.Context, state *models.ConversationState) string {
	extracted := s.Language.ExtractBookingFields(ctx, state.LastMessage)
	state.BookingData.Merge(extracted)

	rejection, missing := CheckFields(state.BookingData, s.Catalog)
	if rejection != "" {
		return rejection
	}
	if len(missing) > 0 {
		return progressSummary(state.BookingData, missing)
	}
	return s.createBooking(ctx, state)
}

// progressSummary tells the guest what has been collected and what is still
// needed, in the fixed field order.
func progressSummary(fields models.BookingFields, missing []RequiredField) string {
	var collected []string
	for _, rf := range requiredFields {
		if fieldPresent(fields, rf.Key) {
			collected = append(collected, fmt.Sprintf("✅ %s: %s", rf.Label, fieldDisplay(fields, rf.Key)))
		}
	}
	var needed []string
	for _, rf := range missing {
		needed = append(needed, "• "+rf.Label)
	}

	var sb strings.Builder
	sb.WriteString("Great! I have the following information:\n")
	sb.WriteString(strings.Join(collected, "\n"))
	sb.WriteString("\n\nI still need:\n")
	sb.WriteString(strings.Join(needed, "\n"))
	sb.WriteString("\n\nPlease provide the missing details.")
	return sb.String()
}

// createBooking prices the validated field set, persists the reservation,
// and confirms. The collected fields are only cleared after the save
// succeeds, so a failed save lets the guest simply try again.
func (s *DefaultDialogueService) createBooking(ctx context.Context, state *models.ConversationState) string {
	logger := utils.GetLogger()

	roomKey := strings.ToLower(*state.BookingData.RoomType)
	room, ok := s.Catalog.Room(roomKey)
	if !ok {
		// Validated a moment ago, so this means the catalog changed under us.
		return "I'm sorry, but room information is currently unavailable. Please try again later."
	}

	checkIn, checkOut := *state.BookingData.CheckIn, *state.BookingData.CheckOut
	total := models.TotalPrice(room.Price, checkIn, checkOut)
	if total <= 0 {
		return "Please check your dates. There seems to be an issue with the date calculation."
	}

	booking := &models.Booking{
		BookingID:  models.NewBookingID(),
		UserID:     state.UserID,
		GuestName:  *state.BookingData.GuestName,
		GuestEmail: *state.BookingData.GuestEmail,
		GuestPhone: *state.BookingData.GuestPhone,
		RoomType:   room.Key,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		NumGuests:  *state.BookingData.NumGuests,
		TotalPrice: total,
		Status:     models.StatusConfirmed,
	}

	if err := s.Bookings.Save(ctx, booking); err != nil {
		logger.Error("Failed to save booking",
			zap.String("user_id", state.UserID),
			zap.String("booking_id", booking.BookingID),
			zap.Error(err),
		)
		return "I'm sorry, there was an error saving your booking. Please try again or contact us directly."
	}

	state.UpdateStep(models.StepBookingComplete)
	state.ClearBookingData()
	s.scheduleReminder(ctx, booking)

	logger.Info("Booking created",
		zap.String("booking_id", booking.BookingID),
		zap.String("user_id", booking.UserID),
		zap.Float64("total", booking.TotalPrice),
	)
	return s.bookingConfirmation(booking)
}

// bookingConfirmation is the receipt message for a new reservation.
func (s *DefaultDialogueService) bookingConfirmation(b *models.Booking) string {
	nights := models.Nights(b.CheckIn, b.CheckOut)
	hotelName := s.Catalog.Name
	if hotelName == "" {
		hotelName = "our hotel"
	}

	return fmt.Sprintf("Booking Confirmed!\n\n"+
		"**Booking Details:**\n"+
		"• Booking ID: **%s**\n"+
		"• Guest: %s\n"+
		"• Dates: %s to %s (%d nights)\n"+
		"• Room: %s\n"+
		"• Guests: %d\n"+
		"• Total: $%.2f\n\n"+
		"A confirmation email will be sent to %s\n\n"+
		"**Check-in:** %s\n**Check-out:** %s\n\n"+
		"Thank you for choosing %s! Is there anything else I can help you with?",
		b.BookingID, b.GuestName, b.CheckIn, b.CheckOut, nights,
		title(b.RoomType), b.NumGuests, b.TotalPrice, b.GuestEmail,
		s.policyOr("check_in", "3:00 PM"), s.policyOr("check_out", "11:00 AM"),
		hotelName)
}

// policyOr reads a policy string from the catalog with a fallback.
func (s *DefaultDialogueService) policyOr(key, fallback string) string {
	if v, ok := s.Catalog.Policies[key]; ok && v != "" {
		return v
	}
	return fallback
}

// scheduleReminder queues the pre-arrival reminder, best effort: a booking
// never fails because the reminder queue is down.
func (s *DefaultDialogueService) scheduleReminder(ctx context.Context, booking *models.Booking) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleCheckInReminder(ctx, booking); err != nil {
		utils.GetLogger().Warn("Failed to schedule check-in reminder",
			zap.String("booking_id", booking.BookingID),
			zap.Error(err),
		)
	}
}
