package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/metrics"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())
	router.Use(MetricsMiddleware())

	if cfg.RateLimitRPS > 0 {
		router.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	reviewsController := NewReviewsController(cfg.Reviews, cfg.Dispatcher, cfg.Confirmation)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Books
	router.POST("/books/", booksController.CreateBook)
	router.GET("/books/", booksController.ListBooks)
	router.GET("/books/:book_id/", booksController.GetBook)
	router.PUT("/books/:book_id/", booksController.UpdateBook)
	router.DELETE("/books/:book_id/", booksController.DeleteBook)

	// Reviews
	router.GET("/books/:book_id/reviews/", reviewsController.ListReviews)
	router.POST("/books/:book_id/reviews/", reviewsController.CreateReview)
	router.PUT("/books/:book_id/reviews/:review_id/", reviewsController.UpdateReview)
	router.DELETE("/books/:book_id/reviews/:review_id/", reviewsController.DeleteReview)
	router.POST("/books/:book_id/reviews/:review_id/confirm/", reviewsController.ConfirmReview)

	return router
}
