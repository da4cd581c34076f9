package bookingRepo

import (
	"context"

	"concierge/models"
)

// BookingRepository persists reservation records. GetByID returns (nil, nil)
// when no booking carries the id so callers can tell "absent" from "broken".
type BookingRepository interface {
	Save(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}
