package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	bookModel "bookshelf_backend/internals/features/books/model"
	"bookshelf_backend/internals/features/reading/dto"
	"bookshelf_backend/internals/features/reading/model"
	helper "bookshelf_backend/internals/helpers"
)

type BookFinder interface {
	Find(ctx context.Context, id string) (*bookModel.Book, error)
}

type Store interface {
	Find(ctx context.Context, userID, bookID string, withBook bool) (*model.ReadingStatus, error)
	Create(ctx context.Context, row *model.ReadingStatus) error
	Save(ctx context.Context, row *model.ReadingStatus) error
	Delete(ctx context.Context, userID, bookID string) error
	List(ctx context.Context, userID string, offset, limit int) ([]model.ReadingStatus, int64, error)
}

type ReadingService struct {
	books BookFinder
	store Store
	now   func() time.Time
}

func NewReadingService(books BookFinder, store Store) *ReadingService {
	return &ReadingService{
		books: books,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Upsert creates or updates the caller's status for a book. The bool reports
// whether a new row was created.
func (s *ReadingService) Upsert(ctx context.Context, userID, bookID string, req dto.UpsertReadingStatusRequest) (*model.ReadingStatus, bool, error) {
	book, err := s.books.Find(ctx, bookID)
	if err != nil {
		return nil, false, err
	}
	now := s.now()

	row, err := s.store.Find(ctx, userID, book.ID, false)
	if err != nil {
		return nil, false, err
	}
	if row == nil {
		row = &model.ReadingStatus{
			ID:        uuid.New(),
			UserID:    userID,
			BookID:    book.ID,
			CreatedAt: now,
		}
		apply(row, req, book, now)
		err := s.store.Create(ctx, row)
		if err == nil {
			return row, true, nil
		}
		if !errors.Is(err, model.ErrAlreadyTracked) {
			return nil, false, err
		}
		// a concurrent first write won; fold this request into its row
		row, err = s.store.Find(ctx, userID, book.ID, false)
		if err != nil {
			return nil, false, err
		}
		if row == nil {
			return nil, false, helper.ReadingStatusNotFound()
		}
	}

	apply(row, req, book, now)
	if err := s.store.Save(ctx, row); err != nil {
		return nil, false, err
	}
	return row, false, nil
}

// apply merges req into row. Supplied values win; auto dates only fill a
// date that is still empty.
func apply(row *model.ReadingStatus, req dto.UpsertReadingStatusRequest, book *bookModel.Book, now time.Time) {
	row.Status = req.Status
	row.UpdatedAt = now

	pages, known := book.PageTotal()
	switch {
	case req.CurrentPage != nil:
		row.CurrentPage = *req.CurrentPage
		if known {
			row.ProgressPercentage = progressFromPage(row.CurrentPage, pages)
		}
	case req.ProgressPercentage != nil:
		row.ProgressPercentage = *req.ProgressPercentage
		if known {
			row.CurrentPage = pageFromProgress(row.ProgressPercentage, pages)
		}
	}

	if req.Rating != nil {
		row.Rating = req.Rating
	}
	if req.Review != nil {
		row.Review = req.Review
	}

	if req.StartDate != nil {
		row.StartDate = req.StartDate.Ptr()
	} else if req.Status == model.CurrentlyReading && row.StartDate == nil {
		t := now
		row.StartDate = &t
	}
	if req.FinishDate != nil {
		row.FinishDate = req.FinishDate.Ptr()
	} else if req.Status == model.Read && row.FinishDate == nil {
		t := now
		row.FinishDate = &t
	}
}

func (s *ReadingService) Get(ctx context.Context, userID, bookID string) (*dto.ReadingStatusResponse, error) {
	row, err := s.store.Find(ctx, userID, bookID, true)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, helper.ReadingStatusNotFound()
	}
	out := dto.FromModel(*row)
	return &out, nil
}

func (s *ReadingService) Remove(ctx context.Context, userID, bookID string) error {
	return s.store.Delete(ctx, userID, bookID)
}

func (s *ReadingService) List(ctx context.Context, userID string, q dto.ReadingListQuery) (dto.ReadingPage, error) {
	rows, total, err := s.store.List(ctx, userID, q.Offset(), q.Limit)
	if err != nil {
		return dto.ReadingPage{}, err
	}
	return dto.ReadingPage{
		Items:      dto.FromModels(rows),
		Pagination: helper.BuildPagination(total, q.PageQuery),
	}, nil
}
