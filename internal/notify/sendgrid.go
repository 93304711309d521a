package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailClient is the subset of the SendGrid client used by SendGridSender.
type MailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender delivers email through the SendGrid v3 mail API.
type SendGridSender struct {
	client MailClient
	from   *mail.Email
}

// NewSendGridSender creates a sender authenticated with apiKey.
func NewSendGridSender(apiKey, fromAddress, fromName string) *SendGridSender {
	return NewSendGridSenderWithClient(sendgrid.NewSendClient(apiKey), fromAddress, fromName)
}

// NewSendGridSenderWithClient creates a sender around an existing client.
func NewSendGridSenderWithClient(client MailClient, fromAddress, fromName string) *SendGridSender {
	return &SendGridSender{
		client: client,
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

func (s *SendGridSender) Name() string {
	return "sendgrid"
}

// Send builds a single-recipient HTML message and submits it.
func (s *SendGridSender) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return ErrNoRecipient
	}

	message := mail.NewV3MailInit(s.from, email.Subject, mail.NewEmail("", email.To), mail.NewContent("text/html", email.HTML))

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &ProviderError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	log.Printf("[EMAIL] SendGrid accepted message to %s: HTTP %d", email.To, resp.StatusCode)
	return nil
}
