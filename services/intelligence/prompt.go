// File: service/ai/prompt.go
package ai

import (
	"encoding/json"
	"fmt"

	"concierge/models"
)

// Per-call output budgets. Intent is a single word, extraction a small JSON
// object, answers a short paragraph.
const (
	intentMaxTokens  int32 = 100
	extractMaxTokens int32 = 300
	answerMaxTokens  int32 = 300
)

const assistantPreamble = `You are a professional hotel booking assistant named Maya. You are helpful, friendly, and knowledgeable about hotel services.

Guidelines:
- Always be polite and professional
- Provide clear, concise responses
- If you don't have specific information, ask for clarification
- Be helpful with hotel-related questions about amenities, policies, check-in/out times, etc.
- Keep responses conversational but informative`

func buildIntentPrompt(message string) string {
	return fmt.Sprintf(`Analyze this message and determine the user's intent. Respond with ONLY one of these exact words:

INTENTS:
- booking (user wants to make a new reservation)
- reschedule (user wants to change existing booking dates)
- cancel (user wants to cancel a booking)
- inquiry (user asking about hotel info, amenities, policies)
- greeting (user is greeting or starting conversation)

Message: "%s"

Intent:`, message)
}

func buildExtractPrompt(message string) string {
	return fmt.Sprintf(`Extract booking information from this message and return a valid JSON object.

Message: "%s"

Extract these fields (use null for missing info):
- check_in_date: Date in YYYY-MM-DD format
- check_out_date: Date in YYYY-MM-DD format
- room_type: One of "standard", "deluxe", "suite"
- num_guests: Integer number
- guest_name: Full name as string
- guest_email: Email address as string
- guest_phone: Phone number as string

Return only valid JSON:`, message)
}

// buildAnswerPrompt grounds free-form answers in the catalog so the model
// quotes real prices and policies instead of inventing them.
func buildAnswerPrompt(question string, catalog *models.HotelCatalog) string {
	if catalog != nil {
		if info, err := json.MarshalIndent(catalog, "", "  "); err == nil {
			return fmt.Sprintf("%s\nHotel Information: %s\n\nUser Question: %s\n\nResponse:", assistantPreamble, info, question)
		}
	}
	return fmt.Sprintf("%s\n\nUser Question: %s\n\nResponse:", assistantPreamble, question)
}
