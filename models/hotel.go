package models

import "strings"

// RoomType is one bookable room category. Key is the lowercase token guests
// use ("standard", "deluxe", "suite") and the order of RoomTypes in the
// catalog is the tie-break order for rule-based extraction.
type RoomType struct {
	Key         string  `json:"key"`
	Price       float64 `json:"price"`       // nightly rate in USD
	Capacity    int     `json:"capacity"`    // maximum guests
	Description string  `json:"description"` // short guest-facing blurb
}

// HotelCatalog is the static knowledge the concierge answers from: rooms,
// amenities, and house policies. It is loaded from a JSON file at startup
// with a built-in fallback when the file is absent.
type HotelCatalog struct {
	Name      string            `json:"name"`
	RoomTypes []RoomType        `json:"room_types"`
	Amenities []string          `json:"amenities"`
	Policies  map[string]string `json:"policies"`

	// PolicyKeys fixes the display order of Policies; map iteration order
	// would otherwise shuffle replies between runs.
	PolicyKeys []string `json:"policy_keys"`
}

// Room looks up a room type by key, case-insensitively. The second return
// is false when the key is not in the catalog.
func (c *HotelCatalog) Room(key string) (RoomType, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, rt := range c.RoomTypes {
		if rt.Key == k {
			return rt, true
		}
	}
	return RoomType{}, false
}

// RoomKeys returns the catalog's room keys in declaration order.
func (c *HotelCatalog) RoomKeys() []string {
	keys := make([]string, 0, len(c.RoomTypes))
	for _, rt := range c.RoomTypes {
		keys = append(keys, rt.Key)
	}
	return keys
}
