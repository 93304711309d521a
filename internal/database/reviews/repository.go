// Package reviews provides database operations for book reviews.
//
// Lookups are always scoped to the owning book: a review ID that exists
// under a different book is reported as not found.
package reviews

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// ReviewUpdate carries the fields of a partial update. Nil fields are left untouched.
type ReviewUpdate struct {
	Text   *string
	Rating *int
}

// Columns returns the column/value pairs present in the update.
func (u ReviewUpdate) Columns() map[string]any {
	cols := make(map[string]any, 2)
	if u.Text != nil {
		cols["text"] = *u.Text
	}
	if u.Rating != nil {
		cols["rating"] = *u.Rating
	}
	return cols
}

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListReviews returns the reviews of a book ordered by ID. The result is never nil.
func (r *Repository) ListReviews(ctx context.Context, bookID uint) ([]entities.Review, error) {
	reviews := make([]entities.Review, 0)
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews for book %d: %w", bookID, err)
	}
	return reviews, nil
}

// CreateReview inserts the review. The schema rejects a book_id that does not
// resolve, which is reported as database.ErrBookNotFound.
func (r *Repository) CreateReview(ctx context.Context, review *entities.Review) error {
	err := r.db.WithContext(ctx).Omit("Book").Create(review).Error
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("create review for book %d: %w", review.BookID, database.ErrBookNotFound)
	}
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// GetReview retrieves a review by ID within the given book.
func (r *Repository) GetReview(ctx context.Context, bookID, reviewID uint) (*entities.Review, error) {
	return findReview(r.db.WithContext(ctx), bookID, reviewID)
}

// UpdateReview applies the present fields of update and returns the refreshed review.
func (r *Repository) UpdateReview(ctx context.Context, bookID, reviewID uint, update ReviewUpdate) (*entities.Review, error) {
	var review *entities.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findReview(tx, bookID, reviewID)
		if err != nil {
			return err
		}

		if cols := update.Columns(); len(cols) > 0 {
			if err := tx.Model(found).Omit("Book").Updates(cols).Error; err != nil {
				return fmt.Errorf("update review %d: %w", reviewID, err)
			}
		}

		review, err = findReview(tx, bookID, reviewID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes the review and returns it as it was before deletion.
func (r *Repository) DeleteReview(ctx context.Context, bookID, reviewID uint) (*entities.Review, error) {
	var review *entities.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findReview(tx, bookID, reviewID)
		if err != nil {
			return err
		}
		if err := tx.Delete(found).Error; err != nil {
			return fmt.Errorf("delete review %d: %w", reviewID, err)
		}
		review = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func findReview(db *gorm.DB, bookID, reviewID uint) (*entities.Review, error) {
	var review entities.Review
	err := db.Where("id = ? AND book_id = ?", reviewID, bookID).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get review %d of book %d: %w", reviewID, bookID, database.ErrReviewNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get review %d: %w", reviewID, err)
	}
	return &review, nil
}
