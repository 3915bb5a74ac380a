package notification

import (
	"context"

	"go.uber.org/zap"
)

// LoggingNotifier logs messages instead of delivering them.
// Useful for development and tests when no SMTP server is configured.
type LoggingNotifier struct {
	logger *zap.Logger
}

// NewLoggingNotifier creates a new logging notifier
func NewLoggingNotifier(logger *zap.Logger) *LoggingNotifier {
	return &LoggingNotifier{logger: logger}
}

// Send logs the message
func (n *LoggingNotifier) Send(ctx context.Context, msg Message) error {
	n.logger.Info("NOTIFICATION",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

var _ Notifier = (*LoggingNotifier)(nil)
