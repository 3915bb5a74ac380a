package notification

import "context"

// Message is an outbound notification to a single recipient
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notifier delivers notification messages.
// Implementations can support different channels (SMTP, logging, etc.)
type Notifier interface {
	// Send delivers the message to its recipient
	Send(ctx context.Context, msg Message) error
}
