package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "bookshelf_backend/internals/features/books/model"
)

const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 1
)

type WishlistEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:uq_wishlist_user_book" json:"userId"`
	BookID    string    `gorm:"column:book_id;not null;uniqueIndex:uq_wishlist_user_book" json:"bookId"`
	Priority  int       `gorm:"column:priority;not null" json:"priority"`
	Notes     *string   `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`

	Book *bookModel.Book `gorm:"foreignKey:BookID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WishlistEntry) TableName() string { return "wishlist" }
