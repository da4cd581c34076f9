package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bookingRepo "concierge/database/repository/bookings"
	"concierge/models"
	"concierge/services/messenger"
	"concierge/services/tasks"

	"github.com/hibiken/asynq"
)

type fakeGateway struct {
	sentTo   []string
	sentText []string
	sendErr  error
}

func (g *fakeGateway) SendMessage(_ context.Context, recipientID, text string) error {
	if g.sendErr != nil {
		return g.sendErr
	}
	g.sentTo = append(g.sentTo, recipientID)
	g.sentText = append(g.sentText, text)
	return nil
}

func (g *fakeGateway) SendTypingAction(context.Context, string) error { return nil }

func (g *fakeGateway) VerifyWebhook(string, string, string) (string, bool) { return "", false }

func (g *fakeGateway) ParseWebhook([]byte) (*messenger.InboundMessage, error) { return nil, nil }

type failingRepo struct{}

func (failingRepo) Save(context.Context, *models.Booking) error { return errors.New("mongo down") }

func (failingRepo) GetByID(context.Context, string) (*models.Booking, error) {
	return nil, errors.New("mongo down")
}

func (failingRepo) ListByUser(context.Context, string) ([]models.Booking, error) {
	return nil, errors.New("mongo down")
}

func reminderTask(t *testing.T, p models.ReminderPayload) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewCheckInReminderTask(p, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	return task
}

func testCatalog() *models.HotelCatalog {
	return &models.HotelCatalog{
		Name:     "Grand Hotel",
		Policies: map[string]string{"check_in": "3:00 PM"},
	}
}

func TestHandleCheckInReminderSendsForConfirmedBooking(t *testing.T) {
	repo := bookingRepo.NewMemoryBookingRepo()
	booking := &models.Booking{
		BookingID: "BK3F9A21C4",
		UserID:    "ig_900100",
		GuestName: "Alice Smith",
		RoomType:  "deluxe",
		CheckIn:   "2030-06-15",
		CheckOut:  "2030-06-18",
		Status:    models.StatusConfirmed,
	}
	if err := repo.Save(context.Background(), booking); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	gw := &fakeGateway{}
	h := handleCheckInReminder(repo, gw, testCatalog())

	payload := models.ReminderPayload{BookingID: "BK3F9A21C4", UserID: "ig_900100", CheckIn: "2030-06-15"}
	if err := h(context.Background(), reminderTask(t, payload)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if len(gw.sentTo) != 1 || gw.sentTo[0] != "ig_900100" {
		t.Fatalf("sent to %v, want one send to ig_900100", gw.sentTo)
	}
	for _, want := range []string{"Alice Smith", "Grand Hotel", "deluxe", "2030-06-15", "3:00 PM", "BK3F9A21C4"} {
		if !strings.Contains(gw.sentText[0], want) {
			t.Errorf("reminder %q missing %q", gw.sentText[0], want)
		}
	}
}

func TestHandleCheckInReminderSkipsStaleBookings(t *testing.T) {
	tests := []struct {
		name    string
		booking *models.Booking // nil = never saved
		payload models.ReminderPayload
	}{
		{
			"booking gone",
			nil,
			models.ReminderPayload{BookingID: "BKGONE01", UserID: "u1", CheckIn: "2030-06-15"},
		},
		{
			"booking cancelled after enqueue",
			&models.Booking{BookingID: "BKCANC01", UserID: "u1", CheckIn: "2030-06-15", Status: models.StatusCancelled},
			models.ReminderPayload{BookingID: "BKCANC01", UserID: "u1", CheckIn: "2030-06-15"},
		},
		{
			"booking rescheduled after enqueue",
			&models.Booking{BookingID: "BKMOVE01", UserID: "u1", CheckIn: "2030-07-01", Status: models.StatusConfirmed},
			models.ReminderPayload{BookingID: "BKMOVE01", UserID: "u1", CheckIn: "2030-06-15"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := bookingRepo.NewMemoryBookingRepo()
			if tt.booking != nil {
				if err := repo.Save(context.Background(), tt.booking); err != nil {
					t.Fatalf("seed booking: %v", err)
				}
			}

			gw := &fakeGateway{}
			h := handleCheckInReminder(repo, gw, testCatalog())

			if err := h(context.Background(), reminderTask(t, tt.payload)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if len(gw.sentTo) != 0 {
				t.Errorf("sent %v, want no sends", gw.sentTo)
			}
		})
	}
}

func TestHandleCheckInReminderRejectsMalformedPayload(t *testing.T) {
	gw := &fakeGateway{}
	h := handleCheckInReminder(bookingRepo.NewMemoryBookingRepo(), gw, testCatalog())

	task := asynq.NewTask(tasks.TypeCheckInReminder, []byte("{not json"))
	if err := h(context.Background(), task); err == nil {
		t.Fatal("expected error for malformed payload, got nil")
	}
	if len(gw.sentTo) != 0 {
		t.Errorf("sent %v, want no sends", gw.sentTo)
	}
}

func TestHandleCheckInReminderReturnsRepoErrorForRetry(t *testing.T) {
	gw := &fakeGateway{}
	h := handleCheckInReminder(failingRepo{}, gw, testCatalog())

	payload := models.ReminderPayload{BookingID: "BK1", UserID: "u1", CheckIn: "2030-06-15"}
	if err := h(context.Background(), reminderTask(t, payload)); err == nil {
		t.Fatal("expected repo error to propagate, got nil")
	}
	if len(gw.sentTo) != 0 {
		t.Errorf("sent %v, want no sends", gw.sentTo)
	}
}

func TestHandleCheckInReminderReturnsSendError(t *testing.T) {
	repo := bookingRepo.NewMemoryBookingRepo()
	booking := &models.Booking{BookingID: "BK2", UserID: "u2", CheckIn: "2030-06-15", Status: models.StatusConfirmed}
	if err := repo.Save(context.Background(), booking); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	gw := &fakeGateway{sendErr: errors.New("graph api status 500")}
	h := handleCheckInReminder(repo, gw, testCatalog())

	payload := models.ReminderPayload{BookingID: "BK2", UserID: "u2", CheckIn: "2030-06-15"}
	if err := h(context.Background(), reminderTask(t, payload)); err == nil {
		t.Fatal("expected send error to propagate, got nil")
	}
}

func TestReminderTextFallbacks(t *testing.T) {
	b := &models.Booking{BookingID: "BK9", GuestName: "Bob", RoomType: "suite", CheckIn: "2030-01-05"}

	got := reminderText(b, &models.HotelCatalog{})
	for _, want := range []string{"our hotel", "3:00 PM", "BK9"} {
		if !strings.Contains(got, want) {
			t.Errorf("reminderText = %q, missing %q", got, want)
		}
	}
}
