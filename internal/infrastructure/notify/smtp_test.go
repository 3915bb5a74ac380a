package notify

import (
	"testing"

	"github.com/retailnet/backend/internal/application/notification"
	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	payload := string(buildMessage("noreply@retailnet.local", notification.Message{
		To:      "buyer@example.com",
		Subject: "Confirm your email",
		Body:    "Follow the link.",
	}))

	assert.Contains(t, payload, "From: noreply@retailnet.local\r\n")
	assert.Contains(t, payload, "To: buyer@example.com\r\n")
	assert.Contains(t, payload, "Subject: Confirm your email\r\n")
	assert.Contains(t, payload, "\r\n\r\nFollow the link.\r\n")
}
