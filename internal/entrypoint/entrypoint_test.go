package entrypoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/notify"
)

func TestNewSender(t *testing.T) {
	t.Run("logs when no api key is configured", func(t *testing.T) {
		sender := NewSender(config.Email{})

		assert.IsType(t, &notify.LogSender{}, sender)
	})

	t.Run("uses sendgrid with an api key", func(t *testing.T) {
		sender := NewSender(config.Email{SendGridAPIKey: "SG.test", From: "noreply@example.com"})

		assert.IsType(t, &notify.SendGridSender{}, sender)
		assert.Equal(t, "sendgrid", sender.Name())
	})

	t.Run("wraps the provider in a breaker", func(t *testing.T) {
		sender := NewSender(config.Email{
			SendGridAPIKey:     "SG.test",
			BreakerEnabled:     true,
			BreakerFailures:    3,
			BreakerOpenTimeout: time.Minute,
		})

		assert.IsType(t, &notify.BreakerSender{}, sender)
		assert.Equal(t, "sendgrid", sender.Name())
	})
}
