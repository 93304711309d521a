package reviews

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *entities.Book, func()) {
	t.Helper()

	db, err := database.NewQuietDatabase(filepath.Join(t.TempDir(), "reviews.db"))
	require.NoError(t, err)

	book := &entities.Book{Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965}
	require.NoError(t, db.DB.Create(book).Error)

	cleanup := func() {
		db.Close()
	}
	return NewRepository(db.DB), book, cleanup
}

func ptr[T any](v T) *T {
	return &v
}

func TestRepository_CreateReview(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	review := &entities.Review{BookID: book.ID, Text: "Great book!", Rating: 5}
	require.NoError(t, repo.CreateReview(ctx, review))
	assert.NotZero(t, review.ID)

	got, err := repo.GetReview(ctx, book.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.BookID)
	assert.Equal(t, "Great book!", got.Text)
	assert.Equal(t, 5, got.Rating)
}

func TestRepository_CreateReview_UnknownBook(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.CreateReview(context.Background(), &entities.Review{BookID: 404, Text: "?", Rating: 1})
	assert.ErrorIs(t, err, database.ErrBookNotFound)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_ListReviews(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("empty when no reviews", func(t *testing.T) {
		reviews, err := repo.ListReviews(ctx, book.ID)
		require.NoError(t, err)
		assert.NotNil(t, reviews)
		assert.Empty(t, reviews)
	})

	t.Run("returns reviews of the book in order", func(t *testing.T) {
		require.NoError(t, repo.CreateReview(ctx, &entities.Review{BookID: book.ID, Text: "first", Rating: 4}))
		require.NoError(t, repo.CreateReview(ctx, &entities.Review{BookID: book.ID, Text: "second", Rating: 2}))

		reviews, err := repo.ListReviews(ctx, book.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "first", reviews[0].Text)
		assert.Equal(t, "second", reviews[1].Text)
	})

	t.Run("unknown book yields empty list", func(t *testing.T) {
		reviews, err := repo.ListReviews(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})
}

func TestRepository_GetReview_ScopedToBook(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	review := &entities.Review{BookID: book.ID, Text: "scoped", Rating: 3}
	require.NoError(t, repo.CreateReview(ctx, review))

	_, err := repo.GetReview(ctx, book.ID+1, review.ID)
	assert.ErrorIs(t, err, database.ErrReviewNotFound)

	_, err = repo.GetReview(ctx, book.ID, review.ID+100)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_UpdateReview(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	review := &entities.Review{BookID: book.ID, Text: "Great book!", Rating: 5}
	require.NoError(t, repo.CreateReview(ctx, review))

	t.Run("rating only leaves text unchanged", func(t *testing.T) {
		updated, err := repo.UpdateReview(ctx, book.ID, review.ID, ReviewUpdate{Rating: ptr(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Rating)
		assert.Equal(t, "Great book!", updated.Text)
		assert.Equal(t, book.ID, updated.BookID)
	})

	t.Run("text only leaves rating unchanged", func(t *testing.T) {
		updated, err := repo.UpdateReview(ctx, book.ID, review.ID, ReviewUpdate{Text: ptr("Changed my mind")})
		require.NoError(t, err)
		assert.Equal(t, "Changed my mind", updated.Text)
		assert.Equal(t, 2, updated.Rating)
	})

	t.Run("missing review", func(t *testing.T) {
		updated, err := repo.UpdateReview(ctx, book.ID, 999, ReviewUpdate{Rating: ptr(1)})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestRepository_DeleteReview(t *testing.T) {
	repo, book, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	review := &entities.Review{BookID: book.ID, Text: "bye", Rating: 1}
	require.NoError(t, repo.CreateReview(ctx, review))

	deleted, err := repo.DeleteReview(ctx, book.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, deleted.ID)
	assert.Equal(t, "bye", deleted.Text)

	deleted, err = repo.DeleteReview(ctx, book.ID, review.ID)
	assert.Nil(t, deleted)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
