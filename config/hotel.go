package config

import (
	"encoding/json"
	"log"
	"os"

	"concierge/models"
)

// Hotel is the catalog the concierge serves answers from, loaded once at
// startup.
var Hotel *models.HotelCatalog

// LoadHotelCatalog reads the catalog JSON at path. Any failure (missing
// file, bad JSON, empty room list) falls back to the built-in catalog so
// the assistant always has rooms to sell.
func LoadHotelCatalog(path string) *models.HotelCatalog {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Hotel catalog %s not readable (%v), using built-in catalog", path, err)
		Hotel = DefaultHotelCatalog()
		return Hotel
	}

	var catalog models.HotelCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		log.Printf("Hotel catalog %s is invalid JSON (%v), using built-in catalog", path, err)
		Hotel = DefaultHotelCatalog()
		return Hotel
	}
	if len(catalog.RoomTypes) == 0 {
		log.Printf("Hotel catalog %s has no room types, using built-in catalog", path)
		Hotel = DefaultHotelCatalog()
		return Hotel
	}
	if len(catalog.PolicyKeys) == 0 {
		for _, k := range []string{"check_in", "check_out", "cancellation", "pet_policy", "smoking"} {
			if _, ok := catalog.Policies[k]; ok {
				catalog.PolicyKeys = append(catalog.PolicyKeys, k)
			}
		}
	}

	Hotel = &catalog
	return Hotel
}

// DefaultHotelCatalog is the built-in fallback used when no catalog file is
// available.
func DefaultHotelCatalog() *models.HotelCatalog {
	return &models.HotelCatalog{
		Name: "Grand Hotel",
		RoomTypes: []models.RoomType{
			{Key: "standard", Price: 100.0, Capacity: 2, Description: "Comfortable standard room with modern amenities"},
			{Key: "deluxe", Price: 150.0, Capacity: 3, Description: "Spacious deluxe room with city view and premium facilities"},
			{Key: "suite", Price: 250.0, Capacity: 4, Description: "Luxurious suite with separate living area and premium services"},
		},
		Amenities: []string{"Free WiFi", "Swimming Pool", "Fitness Center", "Restaurant", "24/7 Room Service", "Spa", "Business Center"},
		Policies: map[string]string{
			"check_in":     "3:00 PM",
			"check_out":    "11:00 AM",
			"cancellation": "Free cancellation up to 24 hours before check-in",
			"pet_policy":   "Pet-friendly with additional fee",
			"smoking":      "Non-smoking property",
		},
		PolicyKeys: []string{"check_in", "check_out", "cancellation", "pet_policy", "smoking"},
	}
}
