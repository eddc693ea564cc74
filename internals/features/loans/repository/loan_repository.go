package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	database "bookshelf_backend/internals/databases"
	bookModel "bookshelf_backend/internals/features/books/model"
	"bookshelf_backend/internals/features/loans/model"
	helper "bookshelf_backend/internals/helpers"
)

// LoanFilter selects one page of a user's loans.
type LoanFilter struct {
	UserID string
	Status model.LoanStatus
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int
}

type LoanRepository struct {
	DB *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{DB: db}
}

func (r *LoanRepository) HasOutstanding(ctx context.Context, userID, bookID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Loan{}).
		Where("user_id = ? AND book_id = ? AND status IN ?", userID, bookID, model.OutstandingStatuses).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "count outstanding loans")
	}
	return n > 0, nil
}

// CreateClaim takes one copy of the book and inserts the loan in a single
// transaction. The decrement only applies while a copy is left, so two
// requests for the last copy cannot both succeed.
func (r *LoanRepository) CreateClaim(ctx context.Context, loan *model.Loan) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookModel.Book{}).
			Where("id = ? AND is_available = ? AND available_copies > 0", loan.BookID, true).
			UpdateColumns(map[string]any{
				"available_copies": gorm.Expr("available_copies - 1"),
				"is_available":     gorm.Expr("available_copies - 1 > 0"),
				"updated_at":       loan.LoanDate,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "claim copy")
		}
		if res.RowsAffected == 0 {
			return helper.BookUnavailable()
		}

		if err := tx.Create(loan).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return helper.DuplicateActiveLoan()
			}
			return errors.Wrap(err, "insert loan")
		}
		return nil
	})
}

// Return closes an outstanding loan owned by userID and puts the copy back.
// The increment is capped at total_copies.
func (r *LoanRepository) Return(ctx context.Context, userID string, loanID uuid.UUID, notes *string, at time.Time) (*model.Loan, error) {
	var out model.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		set := map[string]any{
			"status":      model.LoanReturned,
			"return_date": at,
			"updated_at":  at,
		}
		if notes != nil {
			set["notes"] = *notes
		}
		res := tx.Model(&model.Loan{}).
			Where("id = ? AND user_id = ? AND status IN ?", loanID, userID, model.OutstandingStatuses).
			UpdateColumns(set)
		if res.Error != nil {
			return errors.Wrap(res.Error, "close loan")
		}
		if res.RowsAffected == 0 {
			return helper.LoanNotFound()
		}

		if err := tx.Where("id = ?", loanID).Take(&out).Error; err != nil {
			return errors.Wrap(err, "reload loan")
		}

		err := tx.Model(&bookModel.Book{}).
			Where("id = ? AND available_copies < total_copies", out.BookID).
			UpdateColumns(map[string]any{
				"available_copies": gorm.Expr("available_copies + 1"),
				"is_available":     true,
				"updated_at":       at,
			}).Error
		return errors.Wrap(err, "release copy")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) scoped(ctx context.Context, f LoanFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&model.Loan{}).Where("user_id = ?", f.UserID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("loan_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("loan_date <= ?", *f.To)
	}
	return q
}

// List returns one page ordered newest first together with the total match count.
func (r *LoanRepository) List(ctx context.Context, f LoanFilter) ([]model.Loan, int64, error) {
	var total int64
	if err := r.scoped(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count loans")
	}

	rows := []model.Loan{}
	if total == 0 {
		return rows, 0, nil
	}
	err := r.scoped(ctx, f).
		Preload("Book").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list loans")
	}
	return rows, total, nil
}

// MarkOverdue flags active loans whose due date has passed.
func (r *LoanRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Loan{}).
		Where("status = ? AND due_date < ?", model.LoanActive, now).
		UpdateColumns(map[string]any{
			"status":     model.LoanOverdue,
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "mark overdue loans")
	}
	return res.RowsAffected, nil
}
