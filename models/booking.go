package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking statuses. A cancelled booking is kept for history, never deleted.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking represents a confirmed reservation record.
type Booking struct {
	BookingID  string    `bson:"booking_id" json:"booking_id"`   // short reference, e.g. "BK3F9A21C4"
	UserID     string    `bson:"user_id" json:"user_id"`         // guest the booking belongs to
	GuestName  string    `bson:"guest_name" json:"guest_name"`   // full name as given
	GuestEmail string    `bson:"guest_email" json:"guest_email"` // contact email
	GuestPhone string    `bson:"guest_phone" json:"guest_phone"` // contact phone, digits
	RoomType   string    `bson:"room_type" json:"room_type"`     // catalog room key
	CheckIn    string    `bson:"check_in" json:"check_in"`       // "YYYY-MM-DD"
	CheckOut   string    `bson:"check_out" json:"check_out"`     // "YYYY-MM-DD"
	NumGuests  int       `bson:"num_guests" json:"num_guests"`   // party size
	TotalPrice float64   `bson:"total_price" json:"total_price"` // nightly rate * nights
	Status     string    `bson:"status" json:"status"`           // "confirmed" or "cancelled"
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`   // when the booking was made
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`   // last status or date change
}

// NewBookingID mints a short guest-facing reference: "BK" plus the first
// eight hex characters of a fresh UUID, uppercased.
func NewBookingID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "BK" + strings.ToUpper(raw[:8])
}

// Nights returns the number of nights between two "YYYY-MM-DD" dates.
// Malformed dates or a non-positive range yield zero.
func Nights(checkIn, checkOut string) int {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return 0
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// TotalPrice computes the stay cost from a nightly rate.
func TotalPrice(nightly float64, checkIn, checkOut string) float64 {
	return nightly * float64(Nights(checkIn, checkOut))
}
