package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"concierge/config"
	"concierge/database"
	"concierge/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Seeds the bookings collection with demo reservations so the booking lookup
// endpoints and the reminder worker have data to chew on during manual runs.
func main() {
	config.LoadConfig()
	database.InitDB()
	client := database.MongoClient
	db := client.Database(database.DatabaseName)
	bookingColl := db.Collection("bookings")

	// Clear existing bookings.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if _, err := bookingColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear bookings collection: %v", err)
	}

	catalog := config.DefaultHotelCatalog()

	// Demo guests with staggered future stays. Dates are relative to today so
	// the seed data stays bookable no matter when this runs.
	type stay struct {
		userID   string
		name     string
		email    string
		phone    string
		roomType string
		inDays   int
		nights   int
		guests   int
		status   string
	}
	stays := []stay{
		{"ig_1001", "Alice Kimani", "alice@example.com", "254700000001", "standard", 3, 2, 2, models.StatusConfirmed},
		{"ig_1001", "Alice Kimani", "alice@example.com", "254700000001", "deluxe", 30, 5, 3, models.StatusConfirmed},
		{"ig_1002", "Brian Otieno", "brian@example.com", "254700000002", "suite", 7, 3, 4, models.StatusConfirmed},
		{"ig_1003", "Carol Wanjiru", "carol@example.com", "254700000003", "standard", 14, 1, 1, models.StatusConfirmed},
		{"ig_1003", "Carol Wanjiru", "carol@example.com", "254700000003", "deluxe", 21, 2, 2, models.StatusCancelled},
	}

	now := time.Now().UTC()
	var docs []interface{}
	for _, s := range stays {
		checkIn := now.AddDate(0, 0, s.inDays).Format("2006-01-02")
		checkOut := now.AddDate(0, 0, s.inDays+s.nights).Format("2006-01-02")

		room, ok := catalog.Room(s.roomType)
		if !ok {
			log.Fatalf("Unknown room type %q in seed data", s.roomType)
		}

		booking := models.Booking{
			BookingID:  models.NewBookingID(),
			UserID:     s.userID,
			GuestName:  s.name,
			GuestEmail: s.email,
			GuestPhone: s.phone,
			RoomType:   s.roomType,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			NumGuests:  s.guests,
			TotalPrice: models.TotalPrice(room.Price, checkIn, checkOut),
			Status:     s.status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		docs = append(docs, booking)
	}

	insertResult, err := bookingColl.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("Failed to insert bookings: %v", err)
	}
	fmt.Printf("Inserted %d bookings: %v\n", len(insertResult.InsertedIDs), insertResult.InsertedIDs)
}
