// File: service/dialogue/reschedule_test.go
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"concierge/models"
)

func seedBooking(t *testing.T, svc *DefaultDialogueService, userID, bookingID, roomType string, nightly float64, checkIn, checkOut string) *models.Booking {
	t.Helper()
	b := &models.Booking{
		BookingID:  bookingID,
		UserID:     userID,
		GuestName:  "John Doe",
		GuestEmail: "john@example.com",
		GuestPhone: "1234567890",
		RoomType:   roomType,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		NumGuests:  2,
		TotalPrice: models.TotalPrice(nightly, checkIn, checkOut),
		Status:     models.StatusConfirmed,
	}
	if err := svc.Bookings.Save(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestFindBookingID(t *testing.T) {
	for _, tc := range []struct {
		message string
		want    string
	}{
		{"reschedule BK12AB34CD to next week", "BK12AB34CD"},
		{"bk9f to 2030-01-01", "BK9F"},
		{"please move my booking", ""},
		{"", ""},
		{"CONFIRM CANCEL BKAA11BB22", "BKAA11BB22"},
	} {
		if got := FindBookingID(tc.message); got != tc.want {
			t.Errorf("FindBookingID(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestRescheduleEntryNoActiveBookings(t *testing.T) {
	svc, _ := newTestService(&fakeLanguage{intent: models.IntentReschedule})
	ctx := context.Background()

	reply := svc.ProcessMessage(ctx, "u1", "I need to change my dates")
	if !strings.Contains(reply, "don't have any active bookings to reschedule") {
		t.Errorf("got %q, want no-bookings message", reply)
	}

	// A cancelled booking does not count as active.
	b := seedBooking(t, svc, "u1", "BKDEAD0001", "standard", 100, futureDate(5), futureDate(7))
	b.Status = models.StatusCancelled
	if err := svc.Bookings.Save(ctx, b); err != nil {
		t.Fatal(err)
	}
	reply = svc.ProcessMessage(ctx, "u1", "I need to change my dates")
	if !strings.Contains(reply, "don't have any active bookings to reschedule") {
		t.Errorf("got %q, want no-bookings message for cancelled-only user", reply)
	}
}

func TestRescheduleEntrySingleBooking(t *testing.T) {
	svc, states := newTestService(&fakeLanguage{intent: models.IntentReschedule})
	ctx := context.Background()
	seedBooking(t, svc, "u1", "BK12AB34CD", "deluxe", 150, futureDate(5), futureDate(7))

	reply := svc.ProcessMessage(ctx, "u1", "reschedule my stay")
	for _, want := range []string{
		"I found your booking:",
		"**BK12AB34CD**",
		"• Room: Deluxe",
		"new preferred dates",
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}

	state, _ := states.Get(ctx, "u1")
	if state.Step != models.StepRescheduleRequested {
		t.Errorf("step = %q, want reschedule_requested", state.Step)
	}
}

func TestRescheduleEntryMultipleBookings(t *testing.T) {
	svc, _ := newTestService(&fakeLanguage{intent: models.IntentReschedule})
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		seedBooking(t, svc, "u1", fmt.Sprintf("BK%08d", i), "standard", 100, futureDate(5+i), futureDate(7+i))
	}

	reply := svc.ProcessMessage(ctx, "u1", "reschedule")
	if !strings.Contains(reply, "You have multiple bookings:") {
		t.Fatalf("got %q, want multiple-bookings list", reply)
	}
	if !strings.Contains(reply, "5. **BK") {
		t.Errorf("list should have a fifth entry:\n%s", reply)
	}
	if strings.Contains(reply, "6. **BK") {
		t.Errorf("list must cap at five entries:\n%s", reply)
	}
	if !strings.Contains(reply, "specify which booking ID") {
		t.Errorf("reply missing id prompt:\n%s", reply)
	}
}

func TestRescheduleEntryClearsCollectedFields(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentReschedule}
	svc, states := newTestService(lang)
	ctx := context.Background()
	seedBooking(t, svc, "u1", "BK12AB34CD", "deluxe", 150, futureDate(5), futureDate(7))

	state, _ := states.Get(ctx, "u1")
	state.UpdateStep(models.StepGetBookingDetails)
	state.BookingData = models.BookingFields{RoomType: models.StrPtr("suite")}
	if err := states.Save(ctx, state); err != nil {
		t.Fatal(err)
	}

	svc.ProcessMessage(ctx, "u1", "actually I want to reschedule instead")
	state, _ = states.Get(ctx, "u1")
	if !state.BookingData.Empty() {
		t.Error("switching to the reschedule flow should drop half-collected booking fields")
	}
}

func TestRescheduleContinuationSuccess(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentReschedule}
	svc, states := newTestService(lang)
	ctx := context.Background()
	seedBooking(t, svc, "u1", "BK12AB34CD", "deluxe", 150, futureDate(5), futureDate(7))

	svc.ProcessMessage(ctx, "u1", "reschedule my stay")

	newIn, newOut := futureDate(20), futureDate(23)
	lang.fields = models.BookingFields{
		CheckIn:  models.StrPtr(newIn),
		CheckOut: models.StrPtr(newOut),
	}
	reply := svc.ProcessMessage(ctx, "u1", fmt.Sprintf("BK12AB34CD to %s until %s", newIn, newOut))

	if !strings.Contains(reply, "Booking rescheduled successfully!") {
		t.Fatalf("got %q, want success message", reply)
	}
	if !strings.Contains(reply, "• Updated total: $450.00") {
		t.Errorf("reply missing repriced total (3 nights x $150):\n%s", reply)
	}

	b, err := svc.Bookings.GetByID(ctx, "BK12AB34CD")
	if err != nil || b == nil {
		t.Fatalf("GetByID error = %v, booking = %v", err, b)
	}
	if b.CheckIn != newIn || b.CheckOut != newOut {
		t.Errorf("stored dates = %s/%s, want %s/%s", b.CheckIn, b.CheckOut, newIn, newOut)
	}
	if b.TotalPrice != 450 {
		t.Errorf("stored total = %v, want 450", b.TotalPrice)
	}

	state, _ := states.Get(ctx, "u1")
	if state.Step != models.StepInquiry {
		t.Errorf("step = %q, want inquiry after reschedule", state.Step)
	}
}

func TestRescheduleContinuationNeedsBookingID(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentReschedule}
	svc, _ := newTestService(lang)
	ctx := context.Background()
	seedBooking(t, svc, "u1", "BK12AB34CD", "deluxe", 150, futureDate(5), futureDate(7))

	svc.ProcessMessage(ctx, "u1", "reschedule my stay")
	lang.fields = models.BookingFields{
		CheckIn:  models.StrPtr(futureDate(20)),
		CheckOut: models.StrPtr(futureDate(22)),
	}
	reply := svc.ProcessMessage(ctx, "u1", "move it to those dates")
	if !strings.Contains(reply, "Please provide the booking ID and new dates") {
		t.Errorf("got %q, want id prompt", reply)
	}
}

func TestRescheduleContinuationNeedsBothDates(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentReschedule}
	svc, _ := newTestService(lang)
	ctx := context.Background()
	seedBooking(t, svc, "u1", "BK12AB34CD", "deluxe", 150, futureDate(5), futureDate(7))

	svc.ProcessMessage(ctx, "u1", "reschedule my stay")
	lang.fields = models.BookingFields{CheckIn: models.StrPtr(futureDate(20))}
	reply := svc.ProcessMessage(ctx, "u1", "BK12AB34CD to "+futureDate(20))
	if !strings.Contains(reply, "both check-in and check-out dates") {
		t.Errorf("got %q, want both-dates prompt", reply)
	}
}

func TestRescheduleContinuationRejectsInvalidDates(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentReschedule}
	svc, _ := newTestService(lang)
	ctx := context.Background()
	seedBooking(t, svc, "u1", "BK12AB34CD", "deluxe", 150, futureDate(5), futureDate(7))

	svc.ProcessMessage(ctx, "u1", "reschedule my stay")
	lang.fields = models.BookingFields{
		CheckIn:  models.StrPtr("2020-01-01"),
		CheckOut: models.StrPtr("2020-01-05"),
	}
	reply := svc.ProcessMessage(ctx, "u1", "BK12AB34CD to the past")
	if !strings.Contains(reply, "Invalid dates") {
		t.Errorf("got %q, want invalid-dates message", reply)
	}

	b, _ := svc.Bookings.GetByID(ctx, "BK12AB34CD")
	if b.CheckIn != futureDate(5) {
		t.Error("rejected reschedule must not touch the stored booking")
	}
}

func TestRescheduleContinuationRefusesForeignBooking(t *testing.T) {
	lang := &fakeLanguage{intent: models.IntentReschedule}
	svc, _ := newTestService(lang)
	ctx := context.Background()
	seedBooking(t, svc, "u1", "BK12AB34CD", "deluxe", 150, futureDate(5), futureDate(7))
	seedBooking(t, svc, "someone-else", "BKFFFF0001", "suite", 250, futureDate(5), futureDate(7))

	svc.ProcessMessage(ctx, "u1", "reschedule my stay")
	lang.fields = models.BookingFields{
		CheckIn:  models.StrPtr(futureDate(20)),
		CheckOut: models.StrPtr(futureDate(22)),
	}
	reply := svc.ProcessMessage(ctx, "u1", "BKFFFF0001 to new dates")
	if reply != notYourBookingReply {
		t.Errorf("got %q, want permission refusal", reply)
	}

	b, _ := svc.Bookings.GetByID(ctx, "BKFFFF0001")
	if b.CheckIn != futureDate(5) {
		t.Error("foreign booking must stay untouched")
	}
}
