package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/retailnet/backend/internal/application/notification"
	"github.com/retailnet/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SMTPNotifier delivers notification messages over SMTP
type SMTPNotifier struct {
	addr   string
	auth   smtp.Auth
	from   string
	logger *zap.Logger
}

// NewSMTPNotifier creates a notifier for the configured SMTP server
func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	return &SMTPNotifier{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:   auth,
		from:   cfg.From,
		logger: logger,
	}
}

// Send delivers the message to its recipient.
// The ctx deadline is honored before dialing; net/smtp itself does not take
// a context, so an in-flight delivery runs to the client timeout.
func (n *SMTPNotifier) Send(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload := buildMessage(n.from, msg)
	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", msg.To, err)
	}

	n.logger.Debug("mail delivered",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// buildMessage assembles an RFC 5322 message
func buildMessage(from string, msg notification.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

var _ notification.Notifier = (*SMTPNotifier)(nil)
