// File: concierge/handlers/chat.go
package handlers

import (
	"net/http"

	"concierge/services/dialogue"

	"github.com/gin-gonic/gin"
)

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message" binding:"required"`
}

// ChatHandler exposes the dialogue service over plain HTTP so the agent can
// be exercised without an Instagram round-trip.
type ChatHandler struct {
	Dialogue dialogue.DialogueService
}

func NewChatHandler(dlg dialogue.DialogueService) *ChatHandler {
	return &ChatHandler{Dialogue: dlg}
}

// HandleChat handles POST /api/chat.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if req.UserID == "" {
		req.UserID = "test_user"
	}

	reply := h.Dialogue.ProcessMessage(c.Request.Context(), req.UserID, req.Message)
	c.JSON(http.StatusOK, gin.H{
		"user_id":  req.UserID,
		"message":  req.Message,
		"response": reply,
		"status":   "success",
	})
}
