package bookingRepo

import (
	"context"
	"testing"
	"time"

	"concierge/models"
)

func TestMemoryRepoSaveAndGet(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	b := &models.Booking{
		BookingID: "BK11111111",
		UserID:    "guest-1",
		RoomType:  "deluxe",
		CheckIn:   "2025-03-01",
		CheckOut:  "2025-03-04",
		Status:    models.StatusConfirmed,
	}
	if err := repo.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, "BK11111111")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.RoomType != "deluxe" {
		t.Fatalf("GetByID = %+v, want deluxe booking", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("Save should stamp CreatedAt and UpdatedAt")
	}
}

func TestMemoryRepoGetMissingIsNilNil(t *testing.T) {
	repo := NewMemoryBookingRepo()
	got, err := repo.GetByID(context.Background(), "BKDEADBEEF")
	if err != nil {
		t.Fatalf("GetByID on missing id: err = %v, want nil", err)
	}
	if got != nil {
		t.Fatalf("GetByID on missing id = %+v, want nil", got)
	}
}

func TestMemoryRepoUpsertKeepsCreatedAt(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	b := &models.Booking{BookingID: "BK22222222", UserID: "guest-1", Status: models.StatusConfirmed}
	if err := repo.Save(ctx, b); err != nil {
		t.Fatal(err)
	}
	created := b.CreatedAt

	time.Sleep(5 * time.Millisecond)
	b.Status = models.StatusCancelled
	if err := repo.Save(ctx, b); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.GetByID(ctx, "BK22222222")
	if got.Status != models.StatusCancelled {
		t.Errorf("Status = %q, want cancelled after upsert", got.Status)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on upsert: %v -> %v", created, got.CreatedAt)
	}
	if !got.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt = %v, want later than CreatedAt %v", got.UpdatedAt, created)
	}
}

func TestMemoryRepoListByUserOrder(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	for i, id := range []string{"BKAAAA0001", "BKAAAA0002", "BKAAAA0003"} {
		b := &models.Booking{
			BookingID: id,
			UserID:    "guest-1",
			CreatedAt: time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
		if err := repo.Save(ctx, b); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Save(ctx, &models.Booking{BookingID: "BKBBBB0001", UserID: "guest-2"}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListByUser(ctx, "guest-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByUser returned %d bookings, want 3", len(got))
	}
	for i, id := range []string{"BKAAAA0001", "BKAAAA0002", "BKAAAA0003"} {
		if got[i].BookingID != id {
			t.Errorf("ListByUser[%d] = %s, want %s (creation order)", i, got[i].BookingID, id)
		}
	}
}
