package service

import (
	"context"

	"go.uber.org/zap"

	"bookshelf_backend/internals/features/books/dto"
	"bookshelf_backend/internals/features/books/model"
	"bookshelf_backend/internals/features/catalog/googlebooks"
	helper "bookshelf_backend/internals/helpers"
)

// Catalog is the slice of the catalog client the book store calls.
type Catalog interface {
	Search(ctx context.Context, p googlebooks.SearchParams) (*googlebooks.VolumesResponse, error)
	GetByID(ctx context.Context, id string) (*googlebooks.Volume, error)
}

type Store interface {
	FindByID(ctx context.Context, id string) (*model.Book, error)
	FindAvailability(ctx context.Context, ids []string) (map[string]model.Availability, error)
	InsertIgnore(ctx context.Context, b *model.Book) error
}

type BookService struct {
	catalog Catalog
	store   Store
	log     *zap.Logger
}

func NewBookService(catalog Catalog, store Store, log *zap.Logger) *BookService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookService{catalog: catalog, store: store, log: log.Named("books")}
}

// Search queries the catalog and overlays local copy counters on every hit
// that is already stored.
func (s *BookService) Search(ctx context.Context, q dto.BookSearchQuery) (dto.BookSearchResponse, error) {
	resp := dto.BookSearchResponse{
		Books:      []model.Book{},
		StartIndex: q.StartIndex,
		MaxResults: q.Limit(),
	}

	res, err := s.catalog.Search(ctx, q.Params())
	if err != nil {
		return resp, helper.CatalogUnavailable(err)
	}
	if len(res.Items) == 0 {
		return resp, nil
	}

	books := make([]model.Book, 0, len(res.Items))
	ids := make([]string, 0, len(res.Items))
	for _, v := range res.Items {
		b := googlebooks.ToBook(v)
		books = append(books, b)
		ids = append(ids, b.ID)
	}

	local, err := s.store.FindAvailability(ctx, ids)
	if err != nil {
		return resp, err
	}
	for i := range books {
		if a, ok := local[books[i].ID]; ok {
			books[i].ApplyAvailability(a)
		}
	}

	resp.Books = books
	resp.TotalItems = res.TotalItems
	return resp, nil
}

// GetByID prefers the stored row. Otherwise the catalog volume is mapped,
// stored best effort and returned whether or not the insert succeeded.
func (s *BookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	if b, err := s.store.FindByID(ctx, id); err != nil {
		return nil, err
	} else if b != nil {
		return b, nil
	}

	v, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, helper.CatalogUnavailable(err)
	}
	if v == nil {
		return nil, helper.BookNotFound(id)
	}

	b := googlebooks.ToBook(*v)
	if b.ID == "" {
		b.ID = id
	}
	if err := s.store.InsertIgnore(ctx, &b); err != nil {
		s.log.Warn("failed to save book", zap.String("book_id", b.ID), zap.Error(err))
	}
	return &b, nil
}

// Find looks at local storage only.
func (s *BookService) Find(ctx context.Context, id string) (*model.Book, error) {
	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, helper.BookNotFound(id)
	}
	return b, nil
}
