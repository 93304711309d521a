// Package books provides database operations for book management.
//
// Every method scopes its work to the caller's context. Methods that read
// and then write run inside a transaction, so the handle is always released
// (committed or rolled back) before returning.
//
// # Usage
//
//	repo := books.NewRepository(db.DB)
//	book, err := repo.GetBook(ctx, 123)
//	if errors.Is(err, database.ErrNotFound) { ... }
package books

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// BookUpdate carries the fields of a partial update. Nil fields are left untouched.
type BookUpdate struct {
	Title           *string
	Author          *string
	PublicationYear *int
}

// Columns returns the column/value pairs present in the update.
func (u BookUpdate) Columns() map[string]any {
	cols := make(map[string]any, 3)
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Author != nil {
		cols["author"] = *u.Author
	}
	if u.PublicationYear != nil {
		cols["publication_year"] = *u.PublicationYear
	}
	return cols
}

// BookFilter holds optional equality filters for ListBooks; present filters are ANDed.
type BookFilter struct {
	Author          *string
	PublicationYear *int
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts the book and fills in its assigned ID.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// GetBook retrieves a book by its ID.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	return findBook(r.db.WithContext(ctx), id)
}

// ListBooks returns the books matching the filter, ordered by ID.
// The result is never nil.
func (r *Repository) ListBooks(ctx context.Context, filter BookFilter) ([]entities.Book, error) {
	query := r.db.WithContext(ctx).Model(&entities.Book{})
	if filter.Author != nil {
		query = query.Where("author = ?", *filter.Author)
	}
	if filter.PublicationYear != nil {
		query = query.Where("publication_year = ?", *filter.PublicationYear)
	}

	books := make([]entities.Book, 0)
	if err := query.Order("id ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// UpdateBook applies the present fields of update and returns the refreshed book.
func (r *Repository) UpdateBook(ctx context.Context, id uint, update BookUpdate) (*entities.Book, error) {
	var book *entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findBook(tx, id)
		if err != nil {
			return err
		}

		if cols := update.Columns(); len(cols) > 0 {
			if err := tx.Model(found).Updates(cols).Error; err != nil {
				return fmt.Errorf("update book %d: %w", id, err)
			}
		}

		book, err = findBook(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook removes the book and returns it as it was before deletion.
// Reviews are not cascaded; while any exist the delete fails with
// database.ErrBookHasReviews.
func (r *Repository) DeleteBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book *entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findBook(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Delete(found).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("delete book %d: %w", id, database.ErrBookHasReviews)
			}
			return fmt.Errorf("delete book %d: %w", id, err)
		}

		book = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func findBook(db *gorm.DB, id uint) (*entities.Book, error) {
	var book entities.Book
	err := db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get book %d: %w", id, database.ErrBookNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}
