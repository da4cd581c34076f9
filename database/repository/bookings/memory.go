package bookingRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"concierge/models"
)

type memoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

// NewMemoryBookingRepo returns an in-memory BookingRepository for the local
// chat mode and tests. It mirrors the Mongo repo's semantics, including
// upsert-by-id and creation-order listing.
func NewMemoryBookingRepo() BookingRepository {
	return &memoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *memoryBookingRepo) Save(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.bookings[booking.BookingID]; ok {
		booking.CreatedAt = existing.CreatedAt
	} else if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	r.bookings[booking.BookingID] = *booking
	return nil
}

func (r *memoryBookingRepo) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (r *memoryBookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
