package http

import (
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/notify"
)

// CreateReviewRequest is the body of POST /books/:book_id/reviews/.
type CreateReviewRequest struct {
	Text   *string `json:"text" binding:"required"`
	Rating *int    `json:"rating" binding:"required,gte=1,lte=5"`
}

// UpdateReviewRequest is the body of PUT /books/:book_id/reviews/:review_id/.
type UpdateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
}

// ConfirmationConfig addresses the email sent when a review is confirmed.
type ConfirmationConfig struct {
	To      string
	Subject string
}

const confirmationMessage = "Confirmation email will be sent"

type ReviewsController struct {
	store        ReviewStore
	dispatcher   notify.Dispatcher
	confirmation ConfirmationConfig
}

func NewReviewsController(store ReviewStore, dispatcher notify.Dispatcher, confirmation ConfirmationConfig) *ReviewsController {
	return &ReviewsController{
		store:        store,
		dispatcher:   dispatcher,
		confirmation: confirmation,
	}
}

// ListReviews returns the reviews of a book.
// GET /books/:book_id/reviews/
func (rc *ReviewsController) ListReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	result, err := rc.store.ListReviews(c.Request.Context(), bookID)
	if err != nil {
		respondInternalError(c, err, "list reviews")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateReview attaches a new review to a book.
// POST /books/:book_id/reviews/
func (rc *ReviewsController) CreateReview(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review := &entities.Review{
		BookID: bookID,
		Text:   *req.Text,
		Rating: *req.Rating,
	}
	if err := rc.store.CreateReview(c.Request.Context(), review); err != nil {
		if errors.Is(err, database.ErrBookNotFound) {
			respondNotFound(c, "Book")
			return
		}
		respondInternalError(c, err, "create review")
		return
	}

	c.JSON(http.StatusOK, review)
}

// UpdateReview applies a partial update to a review of the given book.
// PUT /books/:book_id/reviews/:review_id/
func (rc *ReviewsController) UpdateReview(c *gin.Context) {
	bookID, reviewID, ok := parseReviewPath(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	update := reviews.ReviewUpdate{Text: req.Text, Rating: req.Rating}
	review, err := rc.store.UpdateReview(c.Request.Context(), bookID, reviewID, update)
	if err != nil {
		rc.respondStoreError(c, err, "update review")
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review of the given book and returns it.
// DELETE /books/:book_id/reviews/:review_id/
func (rc *ReviewsController) DeleteReview(c *gin.Context) {
	bookID, reviewID, ok := parseReviewPath(c)
	if !ok {
		return
	}

	review, err := rc.store.DeleteReview(c.Request.Context(), bookID, reviewID)
	if err != nil {
		rc.respondStoreError(c, err, "delete review")
		return
	}

	c.JSON(http.StatusOK, review)
}

// ConfirmReview schedules the confirmation email and returns immediately.
// Dispatch failures are logged; the response does not depend on delivery.
// POST /books/:book_id/reviews/:review_id/confirm/
func (rc *ReviewsController) ConfirmReview(c *gin.Context) {
	bookID, reviewID, ok := parseReviewPath(c)
	if !ok {
		return
	}

	review, err := rc.store.GetReview(c.Request.Context(), bookID, reviewID)
	if err != nil {
		rc.respondStoreError(c, err, "confirm review")
		return
	}

	if rc.dispatcher != nil {
		email := notify.Email{
			Subject: rc.confirmation.Subject,
			HTML:    confirmationHTML(review),
			To:      rc.confirmation.To,
		}
		if err := rc.dispatcher.Dispatch(c.Request.Context(), email); err != nil {
			log.Printf("[EMAIL] Failed to schedule confirmation for review %d: %v", review.ID, err)
		}
	}

	respondSuccess(c, confirmationMessage)
}

func (rc *ReviewsController) respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, database.ErrBookNotFound):
		respondNotFound(c, "Book")
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "Review")
	default:
		respondInternalError(c, err, context)
	}
}

func parseReviewPath(c *gin.Context) (bookID, reviewID uint, ok bool) {
	if bookID, ok = parseIDParam(c, "book_id"); !ok {
		return 0, 0, false
	}
	if reviewID, ok = parseIDParam(c, "review_id"); !ok {
		return 0, 0, false
	}
	return bookID, reviewID, true
}

func confirmationHTML(review *entities.Review) string {
	return fmt.Sprintf(
		"<p>Your review #%d has been confirmed.</p><p>Rating: %d/%d</p><blockquote>%s</blockquote>",
		review.ID, review.Rating, entities.MaxRating, html.EscapeString(review.Text),
	)
}
