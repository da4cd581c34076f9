// File: service/dialogue/inquiry.go
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"concierge/models"
)

// Keyword routes tried before spending an AI call. Substring matches, same
// order as listed.
var (
	greetingWords = []string{"hi", "hello", "hey", "good morning", "good evening"}
	amenityWords  = []string{"amenities", "facilities", "services"}
	policyWords   = []string{"check-in", "check-out", "policy", "policies"}
	roomWords     = []string{"room", "rooms", "price", "cost"}
)

// handleInquiry answers free-form questions. Common topics are served from
// the catalog directly; everything else goes to the language model, padded
// with a capabilities footer when the answer comes back too thin to stand
// alone.
func (s *DefaultDialogueService) handleInquiry(ctx context.Context, state *models.ConversationState) string {
	lower := strings.ToLower(state.LastMessage)

	if containsAny(lower, greetingWords) {
		return s.handleGreeting(state)
	}
	if containsAny(lower, amenityWords) {
		return s.amenitiesInfo()
	}
	if containsAny(lower, policyWords) {
		return s.policiesInfo()
	}
	if containsAny(lower, roomWords) {
		return s.roomInfo()
	}

	reply := s.Language.Answer(ctx, state.LastMessage)
	if utf8.RuneCountInString(reply) < 50 {
		reply += "\n\nI can also help you with:\n" +
			"• Room bookings and availability\n" +
			"• Hotel amenities and services\n" +
			"• Booking modifications\n" +
			"• General hotel information"
	}
	return reply
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (s *DefaultDialogueService) amenitiesInfo() string {
	hotelName := s.Catalog.Name
	if hotelName == "" {
		hotelName = "Our Hotel"
	}
	amenitiesText := "Various amenities available"
	if len(s.Catalog.Amenities) > 0 {
		amenitiesText = strings.Join(s.Catalog.Amenities, "\n• ")
	}
	return fmt.Sprintf("**%s Amenities:**\n\n• %s\n\n"+
		"Would you like to know more about any specific amenity or make a booking?",
		hotelName, amenitiesText)
}

func (s *DefaultDialogueService) policiesInfo() string {
	var lines []string
	for _, key := range s.Catalog.PolicyKeys {
		if v, ok := s.Catalog.Policies[key]; ok {
			lines = append(lines, fmt.Sprintf("• **%s:** %s", titleWords(key), v))
		}
	}
	display := "Standard hotel policies apply"
	if len(lines) > 0 {
		display = strings.Join(lines, "\n")
	}
	return fmt.Sprintf("**Hotel Policies:**\n\n%s\n\n"+
		"Do you have any specific questions about our policies?", display)
}

func (s *DefaultDialogueService) roomInfo() string {
	if len(s.Catalog.RoomTypes) == 0 {
		return "Room information is currently unavailable. Please contact us directly."
	}
	var details []string
	for _, rt := range s.Catalog.RoomTypes {
		details = append(details, fmt.Sprintf("**%s**\n  Price: $%g/night\n  Capacity: Up to %d guests\n  %s",
			title(rt.Key), rt.Price, rt.Capacity, rt.Description))
	}
	return "**Available Rooms:**\n\n" + strings.Join(details, "\n\n") +
		"\n\nWould you like to make a reservation?"
}

// defaultHelpMessage is the safe landing spot when an inquiry turn cannot be
// answered any other way.
func (s *DefaultDialogueService) defaultHelpMessage() string {
	amenities := s.Catalog.Amenities
	if len(amenities) == 0 {
		amenities = []string{"WiFi", "Pool", "Restaurant"}
	}
	preview := strings.Join(amenities[:min(3, len(amenities))], ", ")
	if len(amenities) > 3 {
		preview += fmt.Sprintf(", and %d more", len(amenities)-3)
	}
	return fmt.Sprintf("I'm here to help with your hotel needs! You can ask me about:\n\n"+
		"• Room types and pricing\n"+
		"• Hotel amenities: %s\n"+
		"• Check-in/out times and policies\n"+
		"• Making a reservation\n"+
		"• Managing existing bookings\n\n"+
		"What would you like to know?", preview)
}
