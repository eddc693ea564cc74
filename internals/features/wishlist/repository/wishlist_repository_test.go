package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"bookshelf_backend/internals/databases/dbtest"
	bookModel "bookshelf_backend/internals/features/books/model"
	"bookshelf_backend/internals/features/wishlist/model"
	helper "bookshelf_backend/internals/helpers"
)

func entry(userID, bookID string, priority int, at time.Time) *model.WishlistEntry {
	return &model.WishlistEntry{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		Priority:  priority,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestWishlistRepository(t *testing.T) {
	db := dbtest.New(t)
	repo := NewWishlistRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, db.Create(&bookModel.Book{
			ID: id, Title: "T" + id, Language: "en",
			Authors: datatypes.JSONSlice[string]{}, Categories: datatypes.JSONSlice[string]{},
			IsAvailable: true, TotalCopies: 1, AvailableCopies: 1,
		}).Error)
	}

	require.NoError(t, repo.Create(ctx, entry("u1", "a", 1, base)))
	require.NoError(t, repo.Create(ctx, entry("u1", "b", 3, base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, entry("u1", "c", 1, base.Add(2*time.Minute))))

	err := repo.Create(ctx, entry("u1", "a", 2, base))
	assert.True(t, errors.Is(err, helper.ErrDuplicateWishlist), "unique (user_id, book_id)")

	ok, err := repo.Exists(ctx, "u1", "a")
	require.NoError(t, err)
	assert.True(t, ok)

	rows, total, err := repo.List(ctx, "u1", 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{rows[0].BookID, rows[1].BookID, rows[2].BookID})
	require.NotNil(t, rows[0].Book)
	assert.Equal(t, "Tb", rows[0].Book.Title)

	note := "gift"
	updated, err := repo.Update(ctx, "u1", "a", nil, &note, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Priority)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "gift", *updated.Notes)

	empty := ""
	updated, err = repo.Update(ctx, "u1", "a", intp(5), &empty, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Priority)
	assert.Nil(t, updated.Notes)

	_, err = repo.Update(ctx, "u2", "a", intp(2), nil, base)
	assert.True(t, errors.Is(err, helper.ErrWishlistEntryNotFound))

	require.NoError(t, repo.Delete(ctx, "u1", "a"))
	assert.True(t, errors.Is(repo.Delete(ctx, "u1", "a"), helper.ErrWishlistEntryNotFound))
}

func intp(v int) *int { return &v }
