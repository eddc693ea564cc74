package helper

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MaxPage      = 1000000
)

// PageQuery is embedded by every list query DTO.
type PageQuery struct {
	Page  int `query:"page"  validate:"min=1,max=1000000"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// NewPageQuery holds the defaults. Seed a query with it before parsing so
// that omitted keys keep them and an explicit 0 still fails validation.
func NewPageQuery() PageQuery {
	return PageQuery{Page: DefaultPage, Limit: DefaultLimit}
}

// Offset never goes negative; pages past MaxPage are treated as MaxPage.
func (p PageQuery) Offset() int {
	page, limit := p.Page, p.Limit
	if page < 1 || limit < 1 {
		return 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return (page - 1) * limit
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// BuildPagination uses ceil(total/limit); an empty result has zero pages.
func BuildPagination(total int64, p PageQuery) Pagination {
	totalPages := 0
	if total > 0 && p.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
