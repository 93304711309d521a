// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (foreign keys on), migrations
//	├── errors.go        # Sentinel errors shared by the repositories
//	├── books/           # Book CRUD and filtering
//	└── reviews/         # Review CRUD scoped to the owning book
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./book-reviews.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	reviewsRepo := reviews.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBook(ctx, 123)
//	list, err := reviewsRepo.ListReviews(ctx, book.ID)
//
// # Errors
//
// Missing rows are reported as ErrBookNotFound or ErrReviewNotFound, both of
// which match ErrNotFound with errors.Is. Deleting a book that still has
// reviews fails with ErrBookHasReviews.
//
// # Interface Implementations
//
//   - books.Repository: implements http.BookStore
//   - reviews.Repository: implements http.ReviewStore
package database
