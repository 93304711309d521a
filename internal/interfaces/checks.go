package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/http"
	"github.com/mrlokans/bookreviews/internal/notify"
	"github.com/mrlokans/bookreviews/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.ReviewStore = (*reviews.Repository)(nil)

// =============================================================================
// Email
// =============================================================================

// Sender implementations
var _ notify.Sender = (*notify.SendGridSender)(nil)
var _ notify.Sender = (*notify.LogSender)(nil)
var _ notify.Sender = (*notify.BreakerSender)(nil)

// Dispatcher implementations
var _ notify.Dispatcher = (*tasks.EmailDispatcher)(nil)
var _ notify.Dispatcher = (*notify.AsyncDispatcher)(nil)

// TaskAdder implementations
var _ tasks.TaskAdder = (*tasks.Client)(nil)
