// File: service/dialogue/validate.go
package dialogue

import (
	"fmt"
	"strings"
	"time"

	"concierge/models"
)

// RequiredField pairs a booking field key with the label used when asking
// the guest for it. The package-level requiredFields slice fixes the order
// fields are reported in.
type RequiredField struct {
	Key   string
	Label string
}

var requiredFields = []RequiredField{
	{"check_in_date", "Check-in date (YYYY-MM-DD)"},
	{"check_out_date", "Check-out date (YYYY-MM-DD)"},
	{"room_type", "Room type"},
	{"num_guests", "Number of guests"},
	{"guest_name", "Your full name"},
	{"guest_email", "Your email address"},
	{"guest_phone", "Your phone number"},
}

// CheckFields validates the details collected so far against the catalog
// and the date rules. A non-empty rejection names the first violated rule;
// otherwise missing lists the required fields still to collect, in prompt
// order. Both empty means the set is complete and bookable.
//
// Checks run in a fixed order and stop at the first violation: date range,
// then room type, then guest count. Fields that have not been provided yet
// are not violations; they land in missing.
func CheckFields(fields models.BookingFields, catalog *models.HotelCatalog) (rejection string, missing []RequiredField) {
	if fields.CheckIn != nil && fields.CheckOut != nil {
		if !datesBookable(*fields.CheckIn, *fields.CheckOut) {
			return "Please check your dates. The check-out date must be after the check-in date, and both dates should be in the future.", nil
		}
	}

	if fields.RoomType != nil {
		if _, ok := catalog.Room(*fields.RoomType); !ok {
			keys := catalog.RoomKeys()
			display := make([]string, len(keys))
			for i, k := range keys {
				display[i] = title(k)
			}
			return fmt.Sprintf("'%s' is not available. Our available room types are: %s",
				strings.ToLower(*fields.RoomType), strings.Join(display, ", ")), nil
		}
	}

	if fields.NumGuests != nil {
		if *fields.NumGuests < 1 || *fields.NumGuests > 10 {
			return "Number of guests must be between 1 and 10.", nil
		}
	}

	for _, rf := range requiredFields {
		if !fieldPresent(fields, rf.Key) {
			missing = append(missing, rf)
		}
	}
	return "", missing
}

// datesBookable reports whether the pair forms a valid future stay:
// check-in today or later (calendar comparison, not time of day) and
// check-out strictly after check-in. Unparseable dates are not bookable.
func datesBookable(checkIn, checkOut string) bool {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return false
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !in.Before(today) && out.After(in)
}

func fieldPresent(fields models.BookingFields, key string) bool {
	switch key {
	case "check_in_date":
		return fields.CheckIn != nil
	case "check_out_date":
		return fields.CheckOut != nil
	case "room_type":
		return fields.RoomType != nil
	case "num_guests":
		return fields.NumGuests != nil
	case "guest_name":
		return fields.GuestName != nil
	case "guest_email":
		return fields.GuestEmail != nil
	case "guest_phone":
		return fields.GuestPhone != nil
	}
	return false
}

// fieldDisplay renders a collected field value for the progress summary.
func fieldDisplay(fields models.BookingFields, key string) string {
	switch key {
	case "check_in_date":
		return *fields.CheckIn
	case "check_out_date":
		return *fields.CheckOut
	case "room_type":
		return title(*fields.RoomType)
	case "num_guests":
		return fmt.Sprintf("%d", *fields.NumGuests)
	case "guest_name":
		return *fields.GuestName
	case "guest_email":
		return *fields.GuestEmail
	case "guest_phone":
		return *fields.GuestPhone
	}
	return ""
}
