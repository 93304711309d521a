package notify

import (
	"context"
	"log"
)

// LogSender writes emails to the log instead of sending them. It is used
// when no provider API key is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Name() string {
	return "log"
}

func (s *LogSender) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return ErrNoRecipient
	}
	log.Printf("[EMAIL] (log sender) to=%s subject=%q body=%q", email.To, email.Subject, email.HTML)
	return nil
}
