package messenger

import "context"

// InboundMessage is one text message lifted out of a webhook delivery.
type InboundMessage struct {
	SenderID  string
	Text      string
	MessageID string
	Timestamp int64 // epoch millis
	IsEcho    bool  // our own outbound message reflected back
}

// Gateway is the messaging channel the concierge talks through. Sends are
// fire-per-turn: the dialogue layer never queues, the gateway owns pacing
// and retries.
type Gateway interface {
	SendMessage(ctx context.Context, recipientID, text string) error
	SendTypingAction(ctx context.Context, recipientID string) error
	VerifyWebhook(mode, token, challenge string) (string, bool)
	ParseWebhook(body []byte) (*InboundMessage, error)
}
