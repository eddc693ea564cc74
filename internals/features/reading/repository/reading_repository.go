package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "bookshelf_backend/internals/databases"
	"bookshelf_backend/internals/features/reading/model"
	helper "bookshelf_backend/internals/helpers"
)

type ReadingRepository struct {
	DB *gorm.DB
}

func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{DB: db}
}

// Find returns nil, nil when the user does not track the book.
func (r *ReadingRepository) Find(ctx context.Context, userID, bookID string, withBook bool) (*model.ReadingStatus, error) {
	q := r.DB.WithContext(ctx)
	if withBook {
		q = q.Preload("Book")
	}
	var out model.ReadingStatus
	err := q.Where("user_id = ? AND book_id = ?", userID, bookID).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find reading status")
	}
	return &out, nil
}

func (r *ReadingRepository) Create(ctx context.Context, row *model.ReadingStatus) error {
	err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(row).Error
	if database.IsUniqueViolation(err) {
		return model.ErrAlreadyTracked
	}
	return errors.Wrap(err, "insert reading status")
}

func (r *ReadingRepository) Save(ctx context.Context, row *model.ReadingStatus) error {
	err := r.DB.WithContext(ctx).
		Model(row).
		Select("status", "current_page", "progress_percentage", "rating", "review", "start_date", "finish_date", "updated_at").
		Updates(row).Error
	return errors.Wrap(err, "update reading status")
}

func (r *ReadingRepository) Delete(ctx context.Context, userID, bookID string) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.ReadingStatus{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete reading status")
	}
	if res.RowsAffected == 0 {
		return helper.ReadingStatusNotFound()
	}
	return nil
}

// List orders by the most recently touched first.
func (r *ReadingRepository) List(ctx context.Context, userID string, offset, limit int) ([]model.ReadingStatus, int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.ReadingStatus{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "count reading status")
	}

	rows := []model.ReadingStatus{}
	if total == 0 {
		return rows, 0, nil
	}
	err = r.DB.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list reading status")
	}
	return rows, total, nil
}
