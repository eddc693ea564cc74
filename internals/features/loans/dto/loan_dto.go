package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	bookDTO "bookshelf_backend/internals/features/books/dto"
	"bookshelf_backend/internals/features/loans/model"
	helper "bookshelf_backend/internals/helpers"
	"bookshelf_backend/internals/helpers/dbtime"
)

/* =========================
   REQUEST
   ========================= */

type CreateLoanRequest struct {
	BookID  string       `json:"bookId"  validate:"required,max=64"`
	DueDate *dbtime.Date `json:"dueDate"`
}

func (r *CreateLoanRequest) Normalize() {
	r.BookID = strings.TrimSpace(r.BookID)
}

type ReturnLoanRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

func (r *ReturnLoanRequest) Normalize() {
	if r.Notes != nil {
		v := strings.TrimSpace(*r.Notes)
		if v == "" {
			r.Notes = nil
		} else {
			r.Notes = &v
		}
	}
}

// LoanListQuery serves both GET /loans and GET /loans/history.
type LoanListQuery struct {
	helper.PageQuery
	Status    string `query:"status"    validate:"omitempty,oneof=active returned overdue"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// Range parses the loan date bounds. A day-only endDate covers the whole day.
func (q LoanListQuery) Range() (from, to *time.Time, err error) {
	start, err := dbtime.ParseOptional(q.StartDate)
	if err != nil {
		return nil, nil, helper.InvalidField("startDate", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	end, err := dbtime.ParseOptional(q.EndDate)
	if err != nil {
		return nil, nil, helper.InvalidField("endDate", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	from = start.Ptr()
	if end != nil {
		t := end.EndOfRange()
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, helper.InvalidField("endDate", "must not be before startDate")
	}
	return from, to, nil
}

/* =========================
   RESPONSE
   ========================= */

// LoanResponse is a loan row with its book summary, as listed.
type LoanResponse struct {
	ID           uuid.UUID            `json:"id"`
	BookID       string               `json:"bookId"`
	LoanDate     time.Time            `json:"loanDate"`
	DueDate      time.Time            `json:"dueDate"`
	ReturnDate   *time.Time           `json:"returnDate"`
	Status       model.LoanStatus     `json:"status"`
	RenewalCount int                  `json:"renewalCount"`
	Notes        *string              `json:"notes"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Book         *bookDTO.BookSummary `json:"book"`
}

func FromModel(l model.Loan) LoanResponse {
	return LoanResponse{
		ID:           l.ID,
		BookID:       l.BookID,
		LoanDate:     l.LoanDate,
		DueDate:      l.DueDate,
		ReturnDate:   l.ReturnDate,
		Status:       l.Status,
		RenewalCount: l.RenewalCount,
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
		Book:         bookDTO.Summary(l.Book),
	}
}

func FromModels(rows []model.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(rows))
	for _, l := range rows {
		out = append(out, FromModel(l))
	}
	return out
}

type LoanPage struct {
	Loans      []LoanResponse
	Pagination helper.Pagination
}

type LoanEnvelope struct {
	Loan    *model.Loan `json:"loan"`
	Message string      `json:"message"`
}

type LoanListResponse struct {
	Loans      []LoanResponse    `json:"loans"`
	Pagination helper.Pagination `json:"pagination"`
}

type LoanHistoryResponse struct {
	History    []LoanResponse    `json:"history"`
	Pagination helper.Pagination `json:"pagination"`
}
