// File: service/dialogue/booking_test.go
package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	bookingRepo "concierge/database/repository/bookings"
	"concierge/models"
)

// failingRepo wraps a working repository and fails Save.
type failingRepo struct {
	bookingRepo.BookingRepository
	saveErr error
}

func (f *failingRepo) Save(ctx context.Context, b *models.Booking) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.BookingRepository.Save(ctx, b)
}

func TestBookingIntentStartsFlow(t *testing.T) {
	svc, states := newTestService(&fakeLanguage{intent: models.IntentBooking})
	ctx := context.Background()

	reply := svc.ProcessMessage(ctx, "u1", "I want to book a room")
	for _, want := range []string{
		"• Standard: $100/night (up to 2 guests)",
		"• Deluxe: $150/night (up to 3 guests)",
		"• Suite: $250/night (up to 4 guests)",
		"Room type (Standard, Deluxe, Suite)",
		"step by step!",
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("menu reply missing %q:\n%s", want, reply)
		}
	}

	state, _ := states.Get(ctx, "u1")
	if state.Step != models.StepGetBookingDetails {
		t.Errorf("step = %q, want get_booking_details", state.Step)
	}
}

func TestBookingIntentRestartsFlowAfterCompletion(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentBooking}
	svc, states := newTestService(lang)
	ctx := context.Background()

	// Drop the user at booking_complete, then send another booking intent.
	state, _ := states.Get(ctx, "u1")
	state.UpdateStep(models.StepBookingComplete)
	if err := states.Save(ctx, state); err != nil {
		t.Fatal(err)
	}

	reply := svc.ProcessMessage(ctx, "u1", "book another room")
	if !strings.Contains(reply, "Here are our available rooms") {
		t.Errorf("got %q, want the room menu again", reply)
	}
	state, _ = states.Get(ctx, "u1")
	if state.Step != models.StepGetBookingDetails {
		t.Errorf("step = %q, want get_booking_details", state.Step)
	}
}

func TestBookingFlowEmptyCatalog(t *testing.T) {
	svc, states := newTestService(&fakeLanguage{intent: models.IntentBooking})
	svc.Catalog = &models.HotelCatalog{Name: "Grand Hotel"}
	ctx := context.Background()

	reply := svc.ProcessMessage(ctx, "u1", "book a room")
	if !strings.Contains(reply, "room information is currently unavailable") {
		t.Errorf("got %q, want unavailable message", reply)
	}
	state, _ := states.Get(ctx, "u1")
	if state.Step == models.StepGetBookingDetails {
		t.Error("flow should not start when the catalog has no rooms")
	}
}

func TestBookingCollectionReportsProgress(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentBooking}
	svc, states := newTestService(lang)
	ctx := context.Background()

	svc.ProcessMessage(ctx, "u1", "book a room")

	lang.fields = models.BookingFields{
		CheckIn:  models.StrPtr(futureDate(7)),
		CheckOut: models.StrPtr(futureDate(9)),
		RoomType: models.StrPtr("deluxe"),
	}
	reply := svc.ProcessMessage(ctx, "u1", "deluxe, arriving next week for two nights")

	if !strings.Contains(reply, "Great! I have the following information:") {
		t.Errorf("reply missing collected summary:\n%s", reply)
	}
	if !strings.Contains(reply, "✅ Room type: Deluxe") {
		t.Errorf("reply missing collected room line:\n%s", reply)
	}
	if !strings.Contains(reply, "I still need:") || !strings.Contains(reply, "• Your full name") {
		t.Errorf("reply missing needed list:\n%s", reply)
	}

	state, _ := states.Get(ctx, "u1")
	if state.Step != models.StepGetBookingDetails {
		t.Errorf("step = %q, want to stay in get_booking_details", state.Step)
	}
	if state.BookingData.RoomType == nil || *state.BookingData.RoomType != "deluxe" {
		t.Error("collected fields should persist across turns")
	}
}

func TestBookingCollectionRejectsBadDatesAndKeepsStep(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentBooking}
	svc, states := newTestService(lang)
	ctx := context.Background()

	svc.ProcessMessage(ctx, "u1", "book a room")

	lang.fields = models.BookingFields{
		CheckIn:  models.StrPtr(futureDate(9)),
		CheckOut: models.StrPtr(futureDate(7)),
	}
	reply := svc.ProcessMessage(ctx, "u1", "backwards dates")
	if !strings.Contains(reply, "Please check your dates") {
		t.Errorf("got %q, want date rejection", reply)
	}

	state, _ := states.Get(ctx, "u1")
	if state.Step != models.StepGetBookingDetails {
		t.Errorf("step = %q, rejection must not leave the flow", state.Step)
	}
}

func TestBookingHappyPath(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentBooking}
	svc, states := newTestService(lang)
	ctx := context.Background()

	svc.ProcessMessage(ctx, "u1", "book a room")

	checkIn, checkOut := futureDate(10), futureDate(12)
	lang.fields = models.BookingFields{
		CheckIn:    models.StrPtr(checkIn),
		CheckOut:   models.StrPtr(checkOut),
		RoomType:   models.StrPtr("deluxe"),
		NumGuests:  models.IntPtr(2),
		GuestName:  models.StrPtr("John Doe"),
		GuestEmail: models.StrPtr("john@example.com"),
		GuestPhone: models.StrPtr("1234567890"),
	}
	reply := svc.ProcessMessage(ctx, "u1", "all details in one go")

	for _, want := range []string{
		"Booking Confirmed!",
		"• Guest: John Doe",
		"(2 nights)",
		"• Room: Deluxe",
		"• Total: $300.00",
		"A confirmation email will be sent to john@example.com",
		"**Check-in:** 3:00 PM",
		"Thank you for choosing Grand Hotel!",
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("confirmation missing %q:\n%s", want, reply)
		}
	}

	state, _ := states.Get(ctx, "u1")
	if state.Step != models.StepBookingComplete {
		t.Errorf("step = %q, want booking_complete", state.Step)
	}
	if !state.BookingData.Empty() {
		t.Error("collected fields should be cleared after confirmation")
	}

	bookings, err := svc.Bookings.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 1 {
		t.Fatalf("stored bookings = %d, want 1", len(bookings))
	}
	b := bookings[0]
	if b.Status != models.StatusConfirmed || b.RoomType != "deluxe" || b.TotalPrice != 300 {
		t.Errorf("stored booking = %+v, want confirmed deluxe at $300", b)
	}
	if !strings.HasPrefix(b.BookingID, "BK") {
		t.Errorf("booking id = %q, want BK prefix", b.BookingID)
	}
	if b.CheckIn != checkIn || b.CheckOut != checkOut {
		t.Errorf("stored dates = %s/%s, want %s/%s", b.CheckIn, b.CheckOut, checkIn, checkOut)
	}
}

func TestBookingSaveFailureKeepsCollectedFields(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentBooking}
	svc, states := newTestService(lang)
	svc.Bookings = &failingRepo{
		BookingRepository: bookingRepo.NewMemoryBookingRepo(),
		saveErr:           errors.New("mongo down"),
	}
	ctx := context.Background()

	svc.ProcessMessage(ctx, "u1", "book a room")
	lang.fields = models.BookingFields{
		CheckIn:    models.StrPtr(futureDate(10)),
		CheckOut:   models.StrPtr(futureDate(12)),
		RoomType:   models.StrPtr("standard"),
		NumGuests:  models.IntPtr(1),
		GuestName:  models.StrPtr("Jane Roe"),
		GuestEmail: models.StrPtr("jane@example.com"),
		GuestPhone: models.StrPtr("0987654321"),
	}
	reply := svc.ProcessMessage(ctx, "u1", "everything at once")

	if !strings.Contains(reply, "error saving your booking") {
		t.Errorf("got %q, want save-error message", reply)
	}

	state, _ := states.Get(ctx, "u1")
	if state.Step != models.StepGetBookingDetails {
		t.Errorf("step = %q, failed save must not advance the flow", state.Step)
	}
	if state.BookingData.Empty() {
		t.Error("collected fields must survive a failed save so the guest can retry")
	}
}
