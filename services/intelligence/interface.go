// File: service/ai/language_service.go
package ai

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"concierge/models"
	"concierge/utils"

	"go.uber.org/zap"
)

// troubleReply is what every model-facing operation degrades to when the
// model is unreachable or answers with nothing usable.
const troubleReply = "I'm having trouble processing your request right now. Please try again later."

// LanguageService is the understanding layer of the assistant: it labels a
// message with an intent, pulls booking details out of free text, and writes
// free-form answers. Implementations never fail loudly; they degrade to
// conservative defaults so the conversation can continue.
type LanguageService interface {
	ClassifyIntent(ctx context.Context, message string) models.Intent
	ExtractBookingFields(ctx context.Context, message string) models.BookingFields
	Answer(ctx context.Context, question string) string
}

type DefaultLanguageService struct {
	gen     TextGenerator
	catalog *models.HotelCatalog
}

func NewDefaultLanguageService(gen TextGenerator, catalog *models.HotelCatalog) *DefaultLanguageService {
	return &DefaultLanguageService{gen: gen, catalog: catalog}
}

// ClassifyIntent asks the model for exactly one intent token. Anything that
// is not an exact token, including transport errors, collapses to inquiry.
func (s *DefaultLanguageService) ClassifyIntent(ctx context.Context, message string) models.Intent {
	logger := utils.GetLogger()

	raw, err := s.gen.GenerateText(ctx, buildIntentPrompt(message), intentMaxTokens)
	if err != nil {
		logger.Warn("Intent classification failed, defaulting to inquiry", zap.Error(err))
		return models.IntentInquiry
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))
	intent := models.ParseIntent(normalized)
	if string(intent) != normalized {
		logger.Warn("Unknown intent label, defaulting to inquiry", zap.String("label", normalized))
	}
	return intent
}

// ExtractBookingFields tries the model first and falls back to rule-based
// extraction when the model returns nothing usable.
func (s *DefaultLanguageService) ExtractBookingFields(ctx context.Context, message string) models.BookingFields {
	logger := utils.GetLogger()

	raw, err := s.gen.GenerateText(ctx, buildExtractPrompt(message), extractMaxTokens)
	if err == nil {
		if fields, ok := s.parseExtraction(raw); ok && !fields.Empty() {
			return fields
		}
	} else {
		logger.Warn("Model extraction failed", zap.Error(err))
	}

	logger.Info("Falling back to rule-based extraction")
	return ExtractWithRules(message, s.catalog)
}

// Answer handles open questions about the hotel, grounded in the catalog.
func (s *DefaultLanguageService) Answer(ctx context.Context, question string) string {
	text, err := s.gen.GenerateText(ctx, buildAnswerPrompt(question, s.catalog), answerMaxTokens)
	if err != nil {
		utils.GetLogger().Warn("Answer generation failed", zap.Error(err))
		return troubleReply
	}
	return text
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractionPayload mirrors the JSON shape the extraction prompt requests.
// num_guests is left loose because models answer with numbers and strings
// interchangeably.
type extractionPayload struct {
	CheckInDate  *string `json:"check_in_date"`
	CheckOutDate *string `json:"check_out_date"`
	RoomType     *string `json:"room_type"`
	NumGuests    any     `json:"num_guests"`
	GuestName    *string `json:"guest_name"`
	GuestEmail   *string `json:"guest_email"`
	GuestPhone   *string `json:"guest_phone"`
}

// parseExtraction digs the JSON object out of a model response (stripping
// code fences) and normalizes every field: dates canonicalized, room types
// checked against the catalog, strings trimmed. Fields that do not survive
// normalization are dropped rather than guessed at.
func (s *DefaultLanguageService) parseExtraction(raw string) (models.BookingFields, bool) {
	var fields models.BookingFields

	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	blob := jsonObjectPattern.FindString(cleaned)
	if blob == "" {
		return fields, false
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		utils.GetLogger().Warn("Model extraction was not valid JSON", zap.Error(err))
		return fields, false
	}

	if payload.CheckInDate != nil {
		if date, ok := NormalizeDate(*payload.CheckInDate); ok {
			fields.CheckIn = models.StrPtr(date)
		}
	}
	if payload.CheckOutDate != nil {
		if date, ok := NormalizeDate(*payload.CheckOutDate); ok {
			fields.CheckOut = models.StrPtr(date)
		}
	}
	if payload.RoomType != nil {
		if room, ok := s.catalog.Room(*payload.RoomType); ok {
			fields.RoomType = models.StrPtr(room.Key)
		}
	}
	switch v := payload.NumGuests.(type) {
	case float64:
		fields.NumGuests = models.IntPtr(int(v))
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			fields.NumGuests = models.IntPtr(n)
		}
	}
	if payload.GuestName != nil {
		if name := strings.TrimSpace(*payload.GuestName); name != "" {
			fields.GuestName = models.StrPtr(name)
		}
	}
	if payload.GuestEmail != nil {
		if email := strings.TrimSpace(*payload.GuestEmail); email != "" {
			fields.GuestEmail = models.StrPtr(email)
		}
	}
	if payload.GuestPhone != nil {
		if phone := strings.TrimSpace(*payload.GuestPhone); phone != "" {
			fields.GuestPhone = models.StrPtr(phone)
		}
	}

	return fields, true
}
