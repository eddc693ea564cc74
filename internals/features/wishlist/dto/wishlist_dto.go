package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	bookDTO "bookshelf_backend/internals/features/books/dto"
	"bookshelf_backend/internals/features/wishlist/model"
	helper "bookshelf_backend/internals/helpers"
)

/* =========================
   REQUEST
   ========================= */

type AddWishlistRequest struct {
	BookID   string  `json:"bookId"   validate:"required,max=64"`
	Priority *int    `json:"priority" validate:"omitempty,min=1,max=5"`
	Notes    *string `json:"notes"    validate:"omitempty,max=2000"`
}

func (r *AddWishlistRequest) Normalize() {
	r.BookID = strings.TrimSpace(r.BookID)
	r.Notes = trimmed(r.Notes)
}

// PriorityOrDefault returns the requested priority or 1.
func (r AddWishlistRequest) PriorityOrDefault() int {
	if r.Priority == nil {
		return model.DefaultPriority
	}
	return *r.Priority
}

// UpdateWishlistRequest is a partial update; nil fields stay untouched.
type UpdateWishlistRequest struct {
	Priority *int    `json:"priority" validate:"omitempty,min=1,max=5"`
	Notes    *string `json:"notes"    validate:"omitempty,max=2000"`
}

func (r *UpdateWishlistRequest) Normalize() {
	if r.Notes != nil {
		v := strings.TrimSpace(*r.Notes)
		r.Notes = &v
	}
}

type WishlistListQuery struct {
	helper.PageQuery
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================
   RESPONSE
   ========================= */

type WishlistItemResponse struct {
	ID        uuid.UUID            `json:"id"`
	BookID    string               `json:"bookId"`
	Priority  int                  `json:"priority"`
	Notes     *string              `json:"notes"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Book      *bookDTO.BookSummary `json:"book"`
}

func FromModel(e model.WishlistEntry) WishlistItemResponse {
	return WishlistItemResponse{
		ID:        e.ID,
		BookID:    e.BookID,
		Priority:  e.Priority,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Book:      bookDTO.Summary(e.Book).WithStock(e.Book),
	}
}

func FromModels(rows []model.WishlistEntry) []WishlistItemResponse {
	out := make([]WishlistItemResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, FromModel(e))
	}
	return out
}

type WishlistPage struct {
	Items      []WishlistItemResponse
	Pagination helper.Pagination
}

type WishlistListResponse struct {
	Wishlist   []WishlistItemResponse `json:"wishlist"`
	Pagination helper.Pagination      `json:"pagination"`
}

type WishlistEnvelope struct {
	WishlistItem *model.WishlistEntry `json:"wishlistItem"`
	Message      string               `json:"message"`
}
