package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	bookModel "bookshelf_backend/internals/features/books/model"
	"bookshelf_backend/internals/features/wishlist/dto"
	"bookshelf_backend/internals/features/wishlist/model"
	helper "bookshelf_backend/internals/helpers"
)

type BookFinder interface {
	Find(ctx context.Context, id string) (*bookModel.Book, error)
}

type Store interface {
	Exists(ctx context.Context, userID, bookID string) (bool, error)
	Create(ctx context.Context, e *model.WishlistEntry) error
	Update(ctx context.Context, userID, bookID string, priority *int, notes *string, at time.Time) (*model.WishlistEntry, error)
	Delete(ctx context.Context, userID, bookID string) error
	List(ctx context.Context, userID string, offset, limit int) ([]model.WishlistEntry, int64, error)
}

type WishlistService struct {
	books BookFinder
	store Store
	now   func() time.Time
}

func NewWishlistService(books BookFinder, store Store) *WishlistService {
	return &WishlistService{
		books: books,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *WishlistService) Add(ctx context.Context, userID string, req dto.AddWishlistRequest) (*model.WishlistEntry, error) {
	book, err := s.books.Find(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.Exists(ctx, userID, book.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, helper.DuplicateWishlistEntry()
	}

	now := s.now()
	e := &model.WishlistEntry{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    book.ID,
		Priority:  req.PriorityOrDefault(),
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *WishlistService) Update(ctx context.Context, userID, bookID string, req dto.UpdateWishlistRequest) (*model.WishlistEntry, error) {
	return s.store.Update(ctx, userID, bookID, req.Priority, req.Notes, s.now())
}

func (s *WishlistService) Remove(ctx context.Context, userID, bookID string) error {
	return s.store.Delete(ctx, userID, bookID)
}

func (s *WishlistService) List(ctx context.Context, userID string, q dto.WishlistListQuery) (dto.WishlistPage, error) {
	rows, total, err := s.store.List(ctx, userID, q.Offset(), q.Limit)
	if err != nil {
		return dto.WishlistPage{}, err
	}
	return dto.WishlistPage{
		Items:      dto.FromModels(rows),
		Pagination: helper.BuildPagination(total, q.PageQuery),
	}, nil
}
