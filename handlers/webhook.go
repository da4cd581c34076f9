// File: concierge/handlers/webhook.go
package handlers

import (
	"io"
	"net/http"

	"concierge/services/dialogue"
	"concierge/services/messenger"
	"concierge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler owns the Instagram webhook endpoints.
type WebhookHandler struct {
	Gateway  messenger.Gateway
	Dialogue dialogue.DialogueService
}

func NewWebhookHandler(gateway messenger.Gateway, dlg dialogue.DialogueService) *WebhookHandler {
	return &WebhookHandler{Gateway: gateway, Dialogue: dlg}
}

// VerifyWebhookHandler handles GET /webhook, Meta's subscription handshake.
func (h *WebhookHandler) VerifyWebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	echoed, ok := h.Gateway.VerifyWebhook(mode, token, challenge)
	if !ok {
		logger.Error("Webhook verification failed")
		c.JSON(http.StatusForbidden, gin.H{"error": "Verification failed"})
		return
	}
	logger.Info("Webhook verified successfully")
	c.String(http.StatusOK, echoed)
}

// HandleWebhookHandler handles POST /webhook: one inbound Instagram event.
// Meta expects a 200 for anything it delivered, so parse and send problems
// are reported in the body, never as HTTP errors.
func (h *WebhookHandler) HandleWebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Error("Failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	inbound, err := h.Gateway.ParseWebhook(body)
	if err != nil {
		logger.Error("Failed to parse webhook", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if inbound == nil || inbound.IsEcho || inbound.SenderID == "" {
		c.JSON(http.StatusOK, gin.H{"status": "no_message"})
		return
	}

	logger.Info("Processing webhook message",
		zap.String("sender_id", inbound.SenderID),
		zap.String("message_id", inbound.MessageID),
	)

	// Typing indicator while the turn runs; failure is cosmetic.
	if err := h.Gateway.SendTypingAction(c.Request.Context(), inbound.SenderID); err != nil {
		logger.Warn("Failed to send typing action", zap.Error(err))
	}

	reply := h.Dialogue.ProcessMessage(c.Request.Context(), inbound.SenderID, inbound.Text)

	if err := h.Gateway.SendMessage(c.Request.Context(), inbound.SenderID, reply); err != nil {
		logger.Error("Failed to send response",
			zap.String("sender_id", inbound.SenderID),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "Failed to send response"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "response": reply})
}
