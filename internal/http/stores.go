package http

import (
	"context"

	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// BookStore defines the book operations used by BooksController.
type BookStore interface {
	CreateBook(ctx context.Context, book *entities.Book) error
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	ListBooks(ctx context.Context, filter books.BookFilter) ([]entities.Book, error)
	UpdateBook(ctx context.Context, id uint, update books.BookUpdate) (*entities.Book, error)
	DeleteBook(ctx context.Context, id uint) (*entities.Book, error)
}

// ReviewStore defines the review operations used by ReviewsController.
type ReviewStore interface {
	ListReviews(ctx context.Context, bookID uint) ([]entities.Review, error)
	CreateReview(ctx context.Context, review *entities.Review) error
	GetReview(ctx context.Context, bookID, reviewID uint) (*entities.Review, error)
	UpdateReview(ctx context.Context, bookID, reviewID uint, update reviews.ReviewUpdate) (*entities.Review, error)
	DeleteReview(ctx context.Context, bookID, reviewID uint) (*entities.Review, error)
}
