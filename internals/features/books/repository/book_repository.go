package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookshelf_backend/internals/features/books/model"
)

type BookRepository struct {
	DB *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{DB: db}
}

// FindByID returns nil, nil when the book is not stored locally.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	var b model.Book
	err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find book %s", id)
	}
	return &b, nil
}

// FindAvailability loads the counters of every stored book among ids in a
// single query.
func (r *BookRepository) FindAvailability(ctx context.Context, ids []string) (map[string]model.Availability, error) {
	out := make(map[string]model.Availability, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.Book
	err := r.DB.WithContext(ctx).
		Select("id", "is_available", "total_copies", "available_copies").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "load book availability")
	}
	for i := range rows {
		out[rows[i].ID] = rows[i].Availability()
	}
	return out, nil
}

// InsertIgnore stores b unless a row with the same id already exists.
func (r *BookRepository) InsertIgnore(ctx context.Context, b *model.Book) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(b).Error
	return errors.Wrapf(err, "insert book %s", b.ID)
}
