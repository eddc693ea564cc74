package googlebooks

import (
	"strings"

	"gorm.io/datatypes"

	bookModel "bookshelf_backend/internals/features/books/model"
)

const defaultLanguage = "en"

// ToBook maps a catalog volume onto a book row with default copy counters
// (one copy, available). Local counters are applied by the book store.
func ToBook(v Volume) bookModel.Book {
	info := v.VolumeInfo
	b := bookModel.Book{
		ID:                  v.ID,
		Title:               info.Title,
		Authors:             nonNil(info.Authors),
		Description:         optString(info.Description),
		PublishedDate:       optString(info.PublishedDate),
		Publisher:           optString(info.Publisher),
		Categories:          nonNil(info.Categories),
		AverageRating:       info.AverageRating,
		RatingsCount:        info.RatingsCount,
		Language:            info.Language,
		PreviewLink:         optString(info.PreviewLink),
		InfoLink:            optString(info.InfoLink),
		CanonicalVolumeLink: optString(info.CanonicalVolumeLink),
		IsAvailable:         true,
		TotalCopies:         1,
		AvailableCopies:     1,
	}
	if b.Language == "" {
		b.Language = defaultLanguage
	}
	if info.PageCount > 0 {
		pc := info.PageCount
		b.PageCount = &pc
	}
	if info.ImageLinks != nil {
		thumb := info.ImageLinks.Thumbnail
		if thumb == "" {
			thumb = info.ImageLinks.SmallThumbnail
		}
		b.Thumbnail = optString(thumb)
	}
	b.ISBN10 = firstIdentifier(info.IndustryIdentifiers, "ISBN_10")
	b.ISBN13 = firstIdentifier(info.IndustryIdentifiers, "ISBN_13")
	return b
}

func firstIdentifier(ids []IndustryIdentifier, kind string) *string {
	for _, id := range ids {
		if id.Type == kind {
			return optString(id.Identifier)
		}
	}
	return nil
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(in []string) datatypes.JSONSlice[string] {
	if in == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](in)
}
