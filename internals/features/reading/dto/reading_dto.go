package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	bookDTO "bookshelf_backend/internals/features/books/dto"
	"bookshelf_backend/internals/features/reading/model"
	helper "bookshelf_backend/internals/helpers"
	"bookshelf_backend/internals/helpers/dbtime"
)

/* =========================
   REQUEST
   ========================= */

type UpsertReadingStatusRequest struct {
	Status             model.Status `json:"status"             validate:"required,oneof=want_to_read currently_reading read did_not_finish"`
	CurrentPage        *int         `json:"currentPage"        validate:"omitempty,min=0"`
	ProgressPercentage *int         `json:"progressPercentage" validate:"omitempty,min=0,max=100"`
	Rating             *int         `json:"rating"             validate:"omitempty,min=1,max=5"`
	Review             *string      `json:"review"             validate:"omitempty,max=10000"`
	StartDate          *dbtime.Date `json:"startDate"`
	FinishDate         *dbtime.Date `json:"finishDate"`
}

func (r *UpsertReadingStatusRequest) Normalize() {
	r.Status = model.Status(strings.TrimSpace(string(r.Status)))
	if r.Review != nil {
		v := strings.TrimSpace(*r.Review)
		r.Review = &v
	}
}

type ReadingListQuery struct {
	helper.PageQuery
}

/* =========================
   RESPONSE
   ========================= */

type ReadingStatusResponse struct {
	ID                 uuid.UUID            `json:"id"`
	BookID             string               `json:"bookId"`
	Status             model.Status         `json:"status"`
	CurrentPage        int                  `json:"currentPage"`
	ProgressPercentage int                  `json:"progressPercentage"`
	Rating             *int                 `json:"rating"`
	Review             *string              `json:"review"`
	StartDate          *time.Time           `json:"startDate"`
	FinishDate         *time.Time           `json:"finishDate"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
	Book               *bookDTO.BookSummary `json:"book"`
}

func FromModel(r model.ReadingStatus) ReadingStatusResponse {
	return ReadingStatusResponse{
		ID:                 r.ID,
		BookID:             r.BookID,
		Status:             r.Status,
		CurrentPage:        r.CurrentPage,
		ProgressPercentage: r.ProgressPercentage,
		Rating:             r.Rating,
		Review:             r.Review,
		StartDate:          r.StartDate,
		FinishDate:         r.FinishDate,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		Book:               bookDTO.Summary(r.Book).WithPages(r.Book),
	}
}

func FromModels(rows []model.ReadingStatus) []ReadingStatusResponse {
	out := make([]ReadingStatusResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type ReadingPage struct {
	Items      []ReadingStatusResponse
	Pagination helper.Pagination
}

type ReadingListResponse struct {
	ReadingStatus []ReadingStatusResponse `json:"readingStatus"`
	Pagination    helper.Pagination       `json:"pagination"`
}

type ReadingEnvelope struct {
	ReadingStatus *model.ReadingStatus `json:"readingStatus"`
	Message       string               `json:"message"`
}
