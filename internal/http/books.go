package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// CreateBookRequest is the body of POST /books/.
type CreateBookRequest struct {
	Title           *string `json:"title" binding:"required"`
	Author          *string `json:"author" binding:"required"`
	PublicationYear *int    `json:"publication_year" binding:"required,gte=0"`
}

// UpdateBookRequest is the body of PUT /books/:book_id/. Omitted fields keep
// their stored values.
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	PublicationYear *int    `json:"publication_year" binding:"omitempty,gte=0"`
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// CreateBook stores a new book and returns it with its assigned id.
// POST /books/
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book := &entities.Book{
		Title:           *req.Title,
		Author:          *req.Author,
		PublicationYear: *req.PublicationYear,
	}
	if err := bc.store.CreateBook(c.Request.Context(), book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// ListBooks returns all books, optionally filtered by author and publication year.
// GET /books/?author=...&publication_year=...
func (bc *BooksController) ListBooks(c *gin.Context) {
	year, ok := parseOptionalIntQuery(c, "publication_year")
	if !ok {
		return
	}

	filter := books.BookFilter{
		Author:          optionalStringQuery(c, "author"),
		PublicationYear: year,
	}
	result, err := bc.store.ListBooks(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBook returns a single book.
// GET /books/:book_id/
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	book, err := bc.store.GetBook(c.Request.Context(), id)
	if err != nil {
		bc.respondStoreError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook applies a partial update and returns the stored book.
// PUT /books/:book_id/
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	update := books.BookUpdate{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
	}
	book, err := bc.store.UpdateBook(c.Request.Context(), id, update)
	if err != nil {
		bc.respondStoreError(c, err, "update book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book and returns it. Books that still have reviews
// are refused with 409.
// DELETE /books/:book_id/
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	book, err := bc.store.DeleteBook(c.Request.Context(), id)
	if err != nil {
		bc.respondStoreError(c, err, "delete book")
		return
	}

	c.JSON(http.StatusOK, book)
}

func (bc *BooksController) respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "Book")
	case errors.Is(err, database.ErrBookHasReviews):
		respondConflict(c, "Book has reviews")
	default:
		respondInternalError(c, err, context)
	}
}
