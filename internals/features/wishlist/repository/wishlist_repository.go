package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	database "bookshelf_backend/internals/databases"
	"bookshelf_backend/internals/features/wishlist/model"
	helper "bookshelf_backend/internals/helpers"
)

type WishlistRepository struct {
	DB *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{DB: db}
}

func (r *WishlistRepository) Exists(ctx context.Context, userID, bookID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.WishlistEntry{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "check wishlist entry")
	}
	return n > 0, nil
}

// Create relies on the (user_id, book_id) unique index for concurrent adds.
func (r *WishlistRepository) Create(ctx context.Context, e *model.WishlistEntry) error {
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return helper.DuplicateWishlistEntry()
		}
		return errors.Wrap(err, "insert wishlist entry")
	}
	return nil
}

// Update applies the non-nil fields and returns the stored row.
func (r *WishlistRepository) Update(ctx context.Context, userID, bookID string, priority *int, notes *string, at time.Time) (*model.WishlistEntry, error) {
	set := map[string]any{"updated_at": at}
	if priority != nil {
		set["priority"] = *priority
	}
	if notes != nil {
		// an empty string clears the note
		if *notes == "" {
			set["notes"] = nil
		} else {
			set["notes"] = *notes
		}
	}

	var out model.WishlistEntry
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.WishlistEntry{}).
			Where("user_id = ? AND book_id = ?", userID, bookID).
			UpdateColumns(set)
		if res.Error != nil {
			return errors.Wrap(res.Error, "update wishlist entry")
		}
		if res.RowsAffected == 0 {
			return helper.WishlistEntryNotFound()
		}
		return errors.Wrap(
			tx.Where("user_id = ? AND book_id = ?", userID, bookID).Take(&out).Error,
			"reload wishlist entry",
		)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *WishlistRepository) Delete(ctx context.Context, userID, bookID string) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.WishlistEntry{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete wishlist entry")
	}
	if res.RowsAffected == 0 {
		return helper.WishlistEntryNotFound()
	}
	return nil
}

// List orders by priority, highest first, then newest first.
func (r *WishlistRepository) List(ctx context.Context, userID string, offset, limit int) ([]model.WishlistEntry, int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.WishlistEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "count wishlist")
	}

	rows := []model.WishlistEntry{}
	if total == 0 {
		return rows, 0, nil
	}
	err = r.DB.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("priority DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list wishlist")
	}
	return rows, total, nil
}
