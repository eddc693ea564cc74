package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "bookshelf_backend/internals/features/books/model"
)

type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	LoanOverdue  LoanStatus = "overdue"
)

// OutstandingStatuses are the states in which the copy is still out.
var OutstandingStatuses = []LoanStatus{LoanActive, LoanOverdue}

func (s LoanStatus) Outstanding() bool {
	return s == LoanActive || s == LoanOverdue
}

// Loan rows are never deleted. The partial unique index keeps at most one
// outstanding loan per (user, book).
type Loan struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       string     `gorm:"column:user_id;not null;uniqueIndex:uq_loans_user_book_outstanding,where:status <> 'returned'" json:"userId"`
	BookID       string     `gorm:"column:book_id;not null;index;uniqueIndex:uq_loans_user_book_outstanding,where:status <> 'returned'" json:"bookId"`
	LoanDate     time.Time  `gorm:"column:loan_date;not null;index" json:"loanDate"`
	DueDate      time.Time  `gorm:"column:due_date;not null" json:"dueDate"`
	ReturnDate   *time.Time `gorm:"column:return_date" json:"returnDate"`
	Status       LoanStatus `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	RenewalCount int        `gorm:"column:renewal_count;not null" json:"renewalCount"`
	Notes        *string    `gorm:"column:notes" json:"notes"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;not null" json:"updatedAt"`

	Book *bookModel.Book `gorm:"foreignKey:BookID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Loan) TableName() string { return "loans" }
