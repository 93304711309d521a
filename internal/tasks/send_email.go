package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookreviews/internal/metrics"
	"github.com/mrlokans/bookreviews/internal/notify"
	"github.com/mrlokans/bookreviews/internal/requestid"
)

// SendEmailTask delivers one transactional email.
type SendEmailTask struct {
	Email     notify.Email `json:"email"`
	RequestID string       `json:"request_id,omitempty"`
}

// Config returns the queue configuration for email tasks. Emails are
// attempted once; a failed delivery is dropped.
func (t SendEmailTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "send_email",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SendEmailProcessor creates a processor function for SendEmailTask.
// Provider errors are logged by notify.Deliver and never fail the task.
func SendEmailProcessor(sender notify.Sender) backlite.QueueProcessor[SendEmailTask] {
	return func(ctx context.Context, task SendEmailTask) error {
		if sender == nil {
			return fmt.Errorf("email sender not configured")
		}
		if task.RequestID != "" {
			log.Printf("[TASK] Delivering email queued by request %s", task.RequestID)
		}
		notify.Deliver(ctx, sender, task.Email)
		return nil
	}
}

// NewSendEmailQueue creates a backlite queue for email tasks.
func NewSendEmailQueue(sender notify.Sender) backlite.Queue {
	return backlite.NewQueue(SendEmailProcessor(sender))
}

// TaskAdder enqueues tasks. *Client satisfies it.
type TaskAdder interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// EmailDispatcher implements notify.Dispatcher on top of the task queue.
type EmailDispatcher struct {
	client TaskAdder
}

func NewEmailDispatcher(client TaskAdder) *EmailDispatcher {
	return &EmailDispatcher{client: client}
}

// Dispatch persists a SendEmailTask and returns without waiting for a worker.
func (d *EmailDispatcher) Dispatch(ctx context.Context, email notify.Email) error {
	task := SendEmailTask{Email: email, RequestID: requestid.FromContext(ctx)}
	if _, err := d.client.Add(task).Ctx(ctx).Save(); err != nil {
		metrics.EmailsDispatchedTotal.WithLabelValues("queue", "rejected").Inc()
		return fmt.Errorf("enqueue email: %w", err)
	}
	metrics.EmailsDispatchedTotal.WithLabelValues("queue", "queued").Inc()
	return nil
}
