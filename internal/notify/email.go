// Package notify sends transactional email.
//
// Senders talk to a provider synchronously. Dispatchers accept an Email and
// hand it to a background worker without waiting for the outcome; delivery
// failures are logged and counted by Deliver, never returned to the caller
// that dispatched the email.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/bookreviews/internal/metrics"
)

// Email is a single outbound message with an HTML body.
type Email struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	To      string `json:"to"`
}

// Sender delivers an email through a provider.
type Sender interface {
	Name() string
	Send(ctx context.Context, email Email) error
}

// Dispatcher submits an email for background delivery. A nil error means the
// email was accepted, not that it was delivered.
type Dispatcher interface {
	Dispatch(ctx context.Context, email Email) error
}

// ErrNoRecipient is returned when an email has no destination address.
var ErrNoRecipient = errors.New("email has no recipient")

// ProviderError represents a non-2xx answer from the email provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email provider error: HTTP %d: %s", e.StatusCode, e.Body)
}

// Deliver sends the email and swallows any failure after logging it.
func Deliver(ctx context.Context, sender Sender, email Email) {
	if err := sender.Send(ctx, email); err != nil {
		metrics.EmailsTotal.WithLabelValues(sender.Name(), "failed").Inc()
		log.Printf("[EMAIL] Failed to send %q to %s via %s: %v", email.Subject, email.To, sender.Name(), err)
		return
	}
	metrics.EmailsTotal.WithLabelValues(sender.Name(), "sent").Inc()
	log.Printf("[EMAIL] Sent %q to %s via %s", email.Subject, email.To, sender.Name())
}
