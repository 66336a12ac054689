package service

import (
	"context"

	"go.uber.org/zap"
)

// Mailer sends outbound mail. The production deployment relays through
// the office mail gateway; this build ships with a log-only mailer.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string, attachmentName string) error
}

// LogMailer logs outgoing mail instead of delivering it
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a new LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message
func (m *LogMailer) Send(ctx context.Context, to, subject, body string, attachmentName string) error {
	m.logger.Info("outgoing mail",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("attachment", attachmentName),
	)
	return nil
}
