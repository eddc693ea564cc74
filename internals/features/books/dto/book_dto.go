package dto

import (
	"strings"

	bookModel "bookshelf_backend/internals/features/books/model"
	"bookshelf_backend/internals/features/catalog/googlebooks"
	helper "bookshelf_backend/internals/helpers"
)

const (
	DefaultMaxResults = 20
	DefaultOrderBy    = "relevance"
	DefaultPrintType  = "books"
)

/* =========================
   REQUEST
   ========================= */

// BookSearchQuery is bound from GET /books. MaxResults uses a pointer so an
// explicit 0 is rejected instead of silently defaulted.
type BookSearchQuery struct {
	Q            string `query:"q"`
	InTitle      string `query:"intitle"`
	InAuthor     string `query:"inauthor"`
	InPublisher  string `query:"inpublisher"`
	Subject      string `query:"subject"`
	ISBN         string `query:"isbn"`
	StartIndex   int    `query:"startIndex"   validate:"min=0"`
	MaxResults   *int   `query:"maxResults"   validate:"omitempty,min=1,max=40"`
	OrderBy      string `query:"orderBy"      validate:"omitempty,oneof=relevance newest"`
	PrintType    string `query:"printType"    validate:"omitempty,oneof=all books magazines"`
	Filter       string `query:"filter"       validate:"omitempty,oneof=partial full free-ebooks paid-ebooks ebooks"`
	LangRestrict string `query:"langRestrict"`
}

func (q *BookSearchQuery) Normalize() {
	q.Q = strings.TrimSpace(q.Q)
	q.InTitle = strings.TrimSpace(q.InTitle)
	q.InAuthor = strings.TrimSpace(q.InAuthor)
	q.InPublisher = strings.TrimSpace(q.InPublisher)
	q.Subject = strings.TrimSpace(q.Subject)
	q.ISBN = strings.TrimSpace(q.ISBN)
	if q.MaxResults == nil {
		n := DefaultMaxResults
		q.MaxResults = &n
	}
	if q.OrderBy == "" {
		q.OrderBy = DefaultOrderBy
	}
	if q.PrintType == "" {
		q.PrintType = DefaultPrintType
	}
}

func (q BookSearchQuery) hasTerms() bool {
	return q.Q != "" || q.InTitle != "" || q.InAuthor != "" ||
		q.InPublisher != "" || q.Subject != "" || q.ISBN != ""
}

// Validate runs the tag checks and requires at least one search term.
func (q BookSearchQuery) Validate() helper.ValidationResult {
	res := helper.Validate(q)
	if !q.hasTerms() {
		if res.Errors == nil {
			res.Errors = map[string]string{}
		}
		res.OK = false
		res.Errors["q"] = "at least one of q, intitle, inauthor, inpublisher, subject or isbn is required"
	}
	return res
}

func (q BookSearchQuery) Limit() int {
	if q.MaxResults == nil {
		return DefaultMaxResults
	}
	return *q.MaxResults
}

func (q BookSearchQuery) Params() googlebooks.SearchParams {
	return googlebooks.SearchParams{
		Q:            q.Q,
		InTitle:      q.InTitle,
		InAuthor:     q.InAuthor,
		InPublisher:  q.InPublisher,
		Subject:      q.Subject,
		ISBN:         q.ISBN,
		StartIndex:   q.StartIndex,
		MaxResults:   q.Limit(),
		OrderBy:      q.OrderBy,
		PrintType:    q.PrintType,
		Filter:       q.Filter,
		LangRestrict: strings.TrimSpace(q.LangRestrict),
	}
}

/* =========================
   RESPONSE
   ========================= */

type BookSearchResponse struct {
	Books      []bookModel.Book `json:"books"`
	TotalItems int              `json:"totalItems"`
	StartIndex int              `json:"startIndex"`
	MaxResults int              `json:"maxResults"`
}

// BookSummary is the short form embedded in loan, wishlist and reading rows.
type BookSummary struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Thumbnail       *string  `json:"thumbnail"`
	Description     *string  `json:"description,omitempty"`
	PageCount       *int     `json:"pageCount,omitempty"`
	IsAvailable     *bool    `json:"isAvailable,omitempty"`
	AvailableCopies *int     `json:"availableCopies,omitempty"`
}

func Summary(b *bookModel.Book) *BookSummary {
	if b == nil {
		return nil
	}
	authors := []string(b.Authors)
	if authors == nil {
		authors = []string{}
	}
	return &BookSummary{
		ID:        b.ID,
		Title:     b.Title,
		Authors:   authors,
		Thumbnail: b.Thumbnail,
	}
}

// WithStock adds the availability fields shown on wishlist rows.
func (s *BookSummary) WithStock(b *bookModel.Book) *BookSummary {
	if s == nil || b == nil {
		return s
	}
	avail, copies := b.IsAvailable, b.AvailableCopies
	s.Description = b.Description
	s.IsAvailable = &avail
	s.AvailableCopies = &copies
	return s
}

// WithPages adds the page count shown on reading rows.
func (s *BookSummary) WithPages(b *bookModel.Book) *BookSummary {
	if s == nil || b == nil {
		return s
	}
	s.PageCount = b.PageCount
	return s
}
