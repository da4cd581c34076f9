// File: service/ai/rules.go
package ai

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"concierge/models"
)

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
		regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{4}`),
		regexp.MustCompile(`\d{1,2}\s+[A-Za-z]+\s+\d{4}`),
	}
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern  = regexp.MustCompile(`\b\d{10,12}\b`)
	guestsPattern = regexp.MustCompile(`(\d+)\s*guest`)
	wordPattern   = regexp.MustCompile(`\b[A-Za-z]+\b`)
)

// bookingTerms are words that look like names to the fallback name heuristic
// but are really booking vocabulary or filler.
var bookingTerms = map[string]bool{
	"check": true, "in": true, "out": true, "room": true, "guest": true,
	"guests": true, "standard": true, "deluxe": true, "suite": true,
	"date": true, "dates": true, "night": true, "nights": true, "book": true,
	"reservation": true, "email": true, "phone": true, "number": true,
	"want": true, "need": true, "from": true, "for": true, "name": true,
	"the": true, "and": true, "with": true, "stay": true, "hotel": true,
	"please": true,
}

// ExtractWithRules is the deterministic fallback extractor used when the
// model yields nothing. It is regex driven and intentionally conservative:
// a missed field just gets asked for on the next turn.
func ExtractWithRules(message string, catalog *models.HotelCatalog) models.BookingFields {
	var fields models.BookingFields
	lower := strings.ToLower(message)

	// Dates, in order of appearance in the message. Two or more dates are
	// read as check-in then check-out; a single date needs an explicit
	// "check in" / "check out" cue to be assignable.
	dates := datesInOrder(message)
	if len(dates) >= 2 {
		fields.CheckIn = models.StrPtr(dates[0])
		fields.CheckOut = models.StrPtr(dates[1])
	} else if len(dates) == 1 {
		switch {
		case strings.Contains(lower, "check in") || strings.Contains(lower, "checkin"):
			fields.CheckIn = models.StrPtr(dates[0])
		case strings.Contains(lower, "check out") || strings.Contains(lower, "checkout"):
			fields.CheckOut = models.StrPtr(dates[0])
		}
	}

	// First catalog room key mentioned wins; catalog order breaks ties.
	for _, key := range catalog.RoomKeys() {
		if strings.Contains(lower, key) {
			fields.RoomType = models.StrPtr(key)
			break
		}
	}

	if m := guestsPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			fields.NumGuests = models.IntPtr(n)
		}
	}

	if email := emailPattern.FindString(message); email != "" {
		fields.GuestEmail = models.StrPtr(email)
	}
	if phone := phonePattern.FindString(message); phone != "" {
		fields.GuestPhone = models.StrPtr(phone)
	}

	// Name heuristic: the first two words longer than two letters that are
	// not booking vocabulary.
	var candidates []string
	for _, word := range wordPattern.FindAllString(message, -1) {
		if len(word) > 2 && !bookingTerms[strings.ToLower(word)] {
			candidates = append(candidates, word)
			if len(candidates) == 2 {
				break
			}
		}
	}
	if len(candidates) == 2 {
		fields.GuestName = models.StrPtr(strings.Join(candidates, " "))
	}

	return fields
}

// datesInOrder finds every date spelling in the message and returns the
// normalized forms sorted by where they appear.
func datesInOrder(message string) []string {
	type hit struct {
		pos  int
		date string
	}
	var hits []hit
	for _, pattern := range datePatterns {
		for _, loc := range pattern.FindAllStringIndex(message, -1) {
			if normalized, ok := NormalizeDate(message[loc[0]:loc[1]]); ok {
				hits = append(hits, hit{pos: loc[0], date: normalized})
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.date)
	}
	return out
}
