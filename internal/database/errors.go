package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned (wrapped) by repositories when the targeted row does not exist.
var ErrNotFound = errors.New("record not found")

var (
	ErrBookNotFound   = fmt.Errorf("book %w", ErrNotFound)
	ErrReviewNotFound = fmt.Errorf("review %w", ErrNotFound)
)

// ErrBookHasReviews is returned when the reviews foreign key refuses a book delete.
var ErrBookHasReviews = errors.New("book is still referenced by reviews")

// IsForeignKeyViolation reports whether err was raised by SQLite's foreign key enforcement.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
