package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookModel "bookshelf_backend/internals/features/books/model"
	"bookshelf_backend/internals/features/loans/dto"
	"bookshelf_backend/internals/features/loans/model"
	"bookshelf_backend/internals/features/loans/repository"
	helper "bookshelf_backend/internals/helpers"
)

// DefaultLoanPeriod applies when the borrower does not pick a due date.
const DefaultLoanPeriod = 14 * 24 * time.Hour

type BookFinder interface {
	Find(ctx context.Context, id string) (*bookModel.Book, error)
}

type Ledger interface {
	HasOutstanding(ctx context.Context, userID, bookID string) (bool, error)
	CreateClaim(ctx context.Context, loan *model.Loan) error
	Return(ctx context.Context, userID string, loanID uuid.UUID, notes *string, at time.Time) (*model.Loan, error)
	List(ctx context.Context, f repository.LoanFilter) ([]model.Loan, int64, error)
}

type LoanService struct {
	books  BookFinder
	ledger Ledger
	period time.Duration
	now    func() time.Time
	log    *zap.Logger
}

type Option func(*LoanService)

func WithLoanPeriod(d time.Duration) Option {
	return func(s *LoanService) {
		if d > 0 {
			s.period = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *LoanService) { s.now = now }
}

func NewLoanService(books BookFinder, ledger Ledger, log *zap.Logger, opts ...Option) *LoanService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &LoanService{
		books:  books,
		ledger: ledger,
		period: DefaultLoanPeriod,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.Named("loans"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *LoanService) CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*model.Loan, error) {
	book, err := s.books.Find(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !book.CanLend() {
		return nil, helper.BookUnavailable()
	}

	dup, err := s.ledger.HasOutstanding(ctx, userID, book.ID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, helper.DuplicateActiveLoan()
	}

	now := s.now()
	due := now.Add(s.period)
	if req.DueDate != nil {
		due = req.DueDate.Time
	}

	loan := &model.Loan{
		ID:       uuid.New(),
		UserID:   userID,
		BookID:   book.ID,
		LoanDate: now,
		DueDate:  due,
		Status:   model.LoanActive,
	}
	// the checks above are advisory; the claim is what decides under contention
	if err := s.ledger.CreateClaim(ctx, loan); err != nil {
		return nil, err
	}
	s.log.Info("loan created",
		zap.String("loan_id", loan.ID.String()),
		zap.String("user_id", userID),
		zap.String("book_id", book.ID),
	)
	return loan, nil
}

func (s *LoanService) ReturnLoan(ctx context.Context, userID, loanID string, req dto.ReturnLoanRequest) (*model.Loan, error) {
	id, err := uuid.Parse(loanID)
	if err != nil {
		return nil, helper.LoanNotFound()
	}
	loan, err := s.ledger.Return(ctx, userID, id, req.Notes, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info("loan returned",
		zap.String("loan_id", loan.ID.String()),
		zap.String("user_id", userID),
		zap.String("book_id", loan.BookID),
	)
	return loan, nil
}

// List backs both the current and the history listing.
func (s *LoanService) List(ctx context.Context, userID string, q dto.LoanListQuery) (dto.LoanPage, error) {
	from, to, err := q.Range()
	if err != nil {
		return dto.LoanPage{}, err
	}
	rows, total, err := s.ledger.List(ctx, repository.LoanFilter{
		UserID: userID,
		Status: model.LoanStatus(q.Status),
		From:   from,
		To:     to,
		Offset: q.Offset(),
		Limit:  q.Limit,
	})
	if err != nil {
		return dto.LoanPage{}, err
	}
	return dto.LoanPage{
		Loans:      dto.FromModels(rows),
		Pagination: helper.BuildPagination(total, q.PageQuery),
	}, nil
}
