// File: service/messenger/instagram.go
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"concierge/config"
	"concierge/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	graphAPIBase    = "https://graph.facebook.com/v23.0"
	sendTimeout     = 30 * time.Second
	maxSendAttempts = 3

	// messagingTypeResponse marks sends as replies inside the 24h window.
	messagingTypeResponse = "RESPONSE"
)

// InstagramGateway talks to the Instagram Graph API. BaseURL is a field so
// tests can point it at a local server.
type InstagramGateway struct {
	AccessToken string
	PageID      string
	VerifyToken string
	BaseURL     string
	Client      *http.Client

	// limiter paces outbound calls so a burst of conversations cannot trip
	// the Graph API message quota.
	limiter *rate.Limiter
}

// NewInstagramGateway builds the gateway from the loaded configuration.
func NewInstagramGateway() *InstagramGateway {
	return &InstagramGateway{
		AccessToken: config.AppConfig.InstagramAccessToken,
		PageID:      config.AppConfig.InstagramPageID,
		VerifyToken: config.AppConfig.InstagramVerifyToken,
		BaseURL:     graphAPIBase,
		Client:      &http.Client{Timeout: sendTimeout},
		limiter:     rate.NewLimiter(rate.Every(time.Second/4), 4),
	}
}

type recipientRef struct {
	ID string `json:"id"`
}

type messageBody struct {
	Text string `json:"text"`
}

type sendRequest struct {
	Recipient     recipientRef `json:"recipient"`
	Message       *messageBody `json:"message,omitempty"`
	SenderAction  string       `json:"sender_action,omitempty"`
	MessagingType string       `json:"messaging_type,omitempty"`
}

// SendMessage delivers one text reply. Transient failures are retried up to
// maxSendAttempts; a 4xx from the API is final because the request itself is
// wrong.
func (g *InstagramGateway) SendMessage(ctx context.Context, recipientID, text string) error {
	logger := utils.GetLogger()
	if recipientID == "" || text == "" {
		return fmt.Errorf("messenger: missing recipient or message text")
	}

	req := sendRequest{
		Recipient:     recipientRef{ID: recipientID},
		Message:       &messageBody{Text: text},
		MessagingType: messagingTypeResponse,
	}

	var lastErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}

		status, err := g.post(ctx, req)
		if err == nil {
			logger.Info("Message sent",
				zap.String("recipient_id", recipientID),
				zap.Int("attempt", attempt),
			)
			return nil
		}
		lastErr = err
		logger.Warn("Send attempt failed",
			zap.String("recipient_id", recipientID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if status >= 400 && status < 500 {
			break
		}
	}
	return lastErr
}

// SendTypingAction flips the typing indicator on for the recipient. One
// attempt only; the caller treats failure as cosmetic.
func (g *InstagramGateway) SendTypingAction(ctx context.Context, recipientID string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := g.post(ctx, sendRequest{
		Recipient:    recipientRef{ID: recipientID},
		SenderAction: "typing_on",
	})
	return err
}

// post sends one Graph API call to the page's /messages edge and returns the
// HTTP status (0 when the request never got a response).
func (g *InstagramGateway) post(ctx context.Context, payload sendRequest) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/%s/messages?access_token=%s", g.BaseURL, g.PageID, g.AccessToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("graph api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return resp.StatusCode, fmt.Errorf("graph api status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return resp.StatusCode, nil
}

// VerifyWebhook answers Meta's subscription handshake: echo the challenge
// back only when the mode and token are what we registered.
func (g *InstagramGateway) VerifyWebhook(mode, token, challenge string) (string, bool) {
	if g.VerifyToken == "" {
		utils.GetLogger().Error("Webhook verify token not configured")
		return "", false
	}
	if mode != "subscribe" || token != g.VerifyToken {
		utils.GetLogger().Warn("Webhook verification failed", zap.String("mode", mode))
		return "", false
	}
	return challenge, true
}

// webhookEnvelope mirrors the slice of the Graph webhook schema we consume.
type webhookEnvelope struct {
	Entry []struct {
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Timestamp int64 `json:"timestamp"`
			Message   struct {
				MID    string `json:"mid"`
				Text   string `json:"text"`
				IsEcho bool   `json:"is_echo"`
			} `json:"message"`
		} `json:"messaging"`
	} `json:"entry"`
}

// ParseWebhook lifts the first text message out of a webhook delivery.
// Malformed JSON is an error; a structurally valid delivery that carries no
// text message (attachments, reactions, status pings) returns (nil, nil).
func (g *InstagramGateway) ParseWebhook(body []byte) (*InboundMessage, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if len(envelope.Entry) == 0 || len(envelope.Entry[0].Messaging) == 0 {
		return nil, nil
	}

	event := envelope.Entry[0].Messaging[0]
	if event.Message.Text == "" {
		return nil, nil
	}

	timestamp := event.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}
	return &InboundMessage{
		SenderID:  event.Sender.ID,
		Text:      event.Message.Text,
		MessageID: event.Message.MID,
		Timestamp: timestamp,
		IsEcho:    event.Message.IsEcho,
	}, nil
}
