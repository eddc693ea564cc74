package model

import (
	"time"

	"gorm.io/datatypes"
)

// Book is keyed by the external catalog volume id. Descriptive columns come
// from the catalog; only the copy counters are owned here.
type Book struct {
	ID                  string                      `gorm:"column:id;primaryKey" json:"id"`
	Title               string                      `gorm:"column:title;not null" json:"title"`
	Authors             datatypes.JSONSlice[string] `gorm:"column:authors;not null" json:"authors"`
	Description         *string                     `gorm:"column:description" json:"description,omitempty"`
	PublishedDate       *string                     `gorm:"column:published_date" json:"publishedDate,omitempty"`
	Publisher           *string                     `gorm:"column:publisher" json:"publisher,omitempty"`
	PageCount           *int                        `gorm:"column:page_count" json:"pageCount,omitempty"`
	Categories          datatypes.JSONSlice[string] `gorm:"column:categories" json:"categories"`
	AverageRating       *float64                    `gorm:"column:average_rating" json:"averageRating,omitempty"`
	RatingsCount        *int                        `gorm:"column:ratings_count" json:"ratingsCount,omitempty"`
	Thumbnail           *string                     `gorm:"column:thumbnail" json:"thumbnail,omitempty"`
	Language            string                      `gorm:"column:language;not null" json:"language"`
	ISBN10              *string                     `gorm:"column:isbn_10" json:"isbn10,omitempty"`
	ISBN13              *string                     `gorm:"column:isbn_13" json:"isbn13,omitempty"`
	PreviewLink         *string                     `gorm:"column:preview_link" json:"previewLink,omitempty"`
	InfoLink            *string                     `gorm:"column:info_link" json:"infoLink,omitempty"`
	CanonicalVolumeLink *string                     `gorm:"column:canonical_volume_link" json:"canonicalVolumeLink,omitempty"`

	IsAvailable     bool `gorm:"column:is_available;not null" json:"isAvailable"`
	TotalCopies     int  `gorm:"column:total_copies;not null" json:"totalCopies"`
	AvailableCopies int  `gorm:"column:available_copies;not null" json:"availableCopies"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

func (Book) TableName() string { return "books" }

// Availability is the locally authoritative part of a book.
type Availability struct {
	IsAvailable     bool
	TotalCopies     int
	AvailableCopies int
}

func (b *Book) Availability() Availability {
	return Availability{
		IsAvailable:     b.IsAvailable,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

// ApplyAvailability overrides the counters with local state.
func (b *Book) ApplyAvailability(a Availability) {
	b.IsAvailable = a.IsAvailable
	b.TotalCopies = a.TotalCopies
	b.AvailableCopies = a.AvailableCopies
}

// CanLend reports whether a copy can be handed out right now.
func (b *Book) CanLend() bool {
	return b.IsAvailable && b.AvailableCopies > 0
}

// PageTotal returns the page count when it is known and positive.
func (b *Book) PageTotal() (int, bool) {
	if b.PageCount == nil || *b.PageCount <= 0 {
		return 0, false
	}
	return *b.PageCount, true
}
