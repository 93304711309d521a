package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mrlokans/bookreviews/internal/metrics"
)

// ErrDispatcherBusy is returned when every in-process delivery slot is taken.
var ErrDispatcherBusy = errors.New("email dispatcher is busy")

// AsyncDispatcher delivers emails on goroutines in the current process. It is
// the fallback when the persistent task queue is disabled.
type AsyncDispatcher struct {
	sender  Sender
	timeout time.Duration
	slots   chan struct{}
	wg      sync.WaitGroup
}

// NewAsyncDispatcher allows at most maxInFlight concurrent deliveries, each
// bounded by timeout.
func NewAsyncDispatcher(sender Sender, maxInFlight int, timeout time.Duration) *AsyncDispatcher {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &AsyncDispatcher{
		sender:  sender,
		timeout: timeout,
		slots:   make(chan struct{}, maxInFlight),
	}
}

// Dispatch starts delivery and returns immediately. ctx only gates submission;
// delivery runs on a fresh context bounded by the dispatcher timeout.
func (d *AsyncDispatcher) Dispatch(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case d.slots <- struct{}{}:
	default:
		metrics.EmailsDispatchedTotal.WithLabelValues("async", "rejected").Inc()
		return ErrDispatcherBusy
	}

	metrics.EmailsDispatchedTotal.WithLabelValues("async", "queued").Inc()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() { <-d.slots }()

		sendCtx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		Deliver(sendCtx, d.sender, email)
	}()

	return nil
}

// Wait blocks until in-flight deliveries finish or ctx is done.
// Returns true if all deliveries finished.
func (d *AsyncDispatcher) Wait(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
