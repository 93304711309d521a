// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Book CRUD and filtering (internal/http/stores.go)
//   - ReviewStore: Reviews scoped to their book (internal/http/stores.go)
//
// ## Email Interfaces
//
//   - Sender: Synchronous delivery through a provider (internal/notify/email.go)
//   - Dispatcher: Fire-and-forget submission (internal/notify/email.go)
//   - TaskAdder: Enqueues backlite tasks (internal/tasks/send_email.go)
//
// # Adding a New Email Provider
//
//  1. Implement Sender in internal/notify/
//
//     type MailgunSender struct {
//         client *mailgun.MailgunImpl
//     }
//
//     func (s *MailgunSender) Name() string { return "mailgun" }
//     func (s *MailgunSender) Send(ctx context.Context, email Email) error
//
//     var _ notify.Sender = (*MailgunSender)(nil)
//
//  2. Select it in entrypoint.NewSender. Wrapping it with NewBreakerSender
//     and dispatching through the task queue work unchanged.
//
// # Compile-Time Checks
//
// checks.go asserts every concrete implementation against its interface.
package interfaces
