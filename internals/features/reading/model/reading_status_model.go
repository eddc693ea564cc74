package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	bookModel "bookshelf_backend/internals/features/books/model"
)

// ErrAlreadyTracked is returned when a row for (user, book) already exists.
var ErrAlreadyTracked = errors.New("reading status already exists")

type Status string

const (
	WantToRead       Status = "want_to_read"
	CurrentlyReading Status = "currently_reading"
	Read             Status = "read"
	DidNotFinish     Status = "did_not_finish"
)

type ReadingStatus struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID             string     `gorm:"column:user_id;not null;uniqueIndex:uq_reading_user_book" json:"userId"`
	BookID             string     `gorm:"column:book_id;not null;uniqueIndex:uq_reading_user_book" json:"bookId"`
	Status             Status     `gorm:"column:status;type:varchar(24);not null" json:"status"`
	CurrentPage        int        `gorm:"column:current_page;not null" json:"currentPage"`
	ProgressPercentage int        `gorm:"column:progress_percentage;not null" json:"progressPercentage"`
	Rating             *int       `gorm:"column:rating" json:"rating"`
	Review             *string    `gorm:"column:review" json:"review"`
	StartDate          *time.Time `gorm:"column:start_date" json:"startDate"`
	FinishDate         *time.Time `gorm:"column:finish_date" json:"finishDate"`
	CreatedAt          time.Time  `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;not null;index" json:"updatedAt"`

	Book *bookModel.Book `gorm:"foreignKey:BookID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReadingStatus) TableName() string { return "reading_status" }
