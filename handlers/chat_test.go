package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func newChatRouter(dlg *fakeDialogue) *gin.Engine {
	h := NewChatHandler(dlg)
	r := gin.New()
	r.POST("/api/chat", h.HandleChat)
	return r
}

func TestHandleChatRunsTurn(t *testing.T) {
	dlg := &fakeDialogue{reply: "Which dates would you like?"}
	r := newChatRouter(dlg)

	w := performRequest(r, http.MethodPost, "/api/chat", `{"user_id":"u77","message":"I want a room"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["response"] != dlg.reply {
		t.Errorf("response = %v, want %q", resp["response"], dlg.reply)
	}
	if resp["status"] != "success" {
		t.Errorf("status = %v, want success", resp["status"])
	}
	if dlg.gotUser != "u77" || dlg.gotMsg != "I want a room" {
		t.Errorf("dialogue got (%q, %q), want (%q, %q)", dlg.gotUser, dlg.gotMsg, "u77", "I want a room")
	}
}

func TestHandleChatDefaultsUser(t *testing.T) {
	dlg := &fakeDialogue{reply: "ok"}
	r := newChatRouter(dlg)

	w := performRequest(r, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if dlg.gotUser != "test_user" {
		t.Errorf("user = %q, want test_user", dlg.gotUser)
	}
}

func TestHandleChatRequiresMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message field", `{"user_id":"u1"}`},
		{"empty message", `{"user_id":"u1","message":""}`},
		{"malformed json", `plain text`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dlg := &fakeDialogue{reply: "ok"}
			r := newChatRouter(dlg)

			w := performRequest(r, http.MethodPost, "/api/chat", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
