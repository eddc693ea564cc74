package helper

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind string

const (
	KindValidation            ErrorKind = "ValidationError"
	KindBookNotFound          ErrorKind = "BookNotFound"
	KindBookUnavailable       ErrorKind = "BookUnavailable"
	KindDuplicateActiveLoan   ErrorKind = "DuplicateActiveLoan"
	KindLoanNotFound          ErrorKind = "LoanNotFound"
	KindDuplicateWishlist     ErrorKind = "DuplicateWishlistEntry"
	KindWishlistEntryNotFound ErrorKind = "WishlistEntryNotFound"
	KindReadingStatusNotFound ErrorKind = "ReadingStatusNotFound"
	KindCatalogUnavailable    ErrorKind = "CatalogUnavailable"
)

var kindStatus = map[ErrorKind]int{
	KindValidation:            fiber.StatusUnprocessableEntity,
	KindBookNotFound:          fiber.StatusNotFound,
	KindBookUnavailable:       fiber.StatusConflict,
	KindDuplicateActiveLoan:   fiber.StatusConflict,
	KindLoanNotFound:          fiber.StatusNotFound,
	KindDuplicateWishlist:     fiber.StatusConflict,
	KindWishlistEntryNotFound: fiber.StatusNotFound,
	KindReadingStatusNotFound: fiber.StatusNotFound,
	KindCatalogUnavailable:    fiber.StatusBadGateway,
}

// AppError is the error every feature service returns for an expected
// failure. Title and Message become the {error, message} body.
type AppError struct {
	Kind    ErrorKind
	Title   string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any *AppError of the same kind, so errors.Is(err, ErrBookNotFound) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

func (e *AppError) Status() int {
	if s, ok := kindStatus[e.Kind]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

// Sentinels for errors.Is.
var (
	ErrValidation            = &AppError{Kind: KindValidation}
	ErrBookNotFound          = &AppError{Kind: KindBookNotFound}
	ErrBookUnavailable       = &AppError{Kind: KindBookUnavailable}
	ErrDuplicateActiveLoan   = &AppError{Kind: KindDuplicateActiveLoan}
	ErrLoanNotFound          = &AppError{Kind: KindLoanNotFound}
	ErrDuplicateWishlist     = &AppError{Kind: KindDuplicateWishlist}
	ErrWishlistEntryNotFound = &AppError{Kind: KindWishlistEntryNotFound}
	ErrReadingStatusNotFound = &AppError{Kind: KindReadingStatusNotFound}
	ErrCatalogUnavailable    = &AppError{Kind: KindCatalogUnavailable}
)

func ValidationFailed(fields map[string]string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Title:   "Validation failed",
		Message: "Request contains invalid fields",
		Fields:  fields,
	}
}

func BookNotFound(bookID string) *AppError {
	return &AppError{
		Kind:    KindBookNotFound,
		Title:   "Book not found",
		Message: fmt.Sprintf("Book with ID %s does not exist", bookID),
	}
}

func BookUnavailable() *AppError {
	return &AppError{
		Kind:    KindBookUnavailable,
		Title:   "Book not available",
		Message: "This book is currently not available for loan",
	}
}

func DuplicateActiveLoan() *AppError {
	return &AppError{
		Kind:    KindDuplicateActiveLoan,
		Title:   "Loan already exists",
		Message: "You already have an active loan for this book",
	}
}

func LoanNotFound() *AppError {
	return &AppError{
		Kind:    KindLoanNotFound,
		Title:   "Loan not found",
		Message: "Active loan not found or you don't have permission to return it",
	}
}

func DuplicateWishlistEntry() *AppError {
	return &AppError{
		Kind:    KindDuplicateWishlist,
		Title:   "Book already in wishlist",
		Message: "This book is already in your wishlist",
	}
}

func WishlistEntryNotFound() *AppError {
	return &AppError{
		Kind:    KindWishlistEntryNotFound,
		Title:   "Wishlist item not found",
		Message: "This book is not in your wishlist",
	}
}

func ReadingStatusNotFound() *AppError {
	return &AppError{
		Kind:    KindReadingStatusNotFound,
		Title:   "Reading status not found",
		Message: "No reading status found for this book",
	}
}

func CatalogUnavailable(err error) *AppError {
	msg := "The book catalog could not be reached"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Kind:    KindCatalogUnavailable,
		Title:   "Catalog unavailable",
		Message: msg,
		Err:     err,
	}
}

// AsAppError unwraps err into an *AppError when it carries one.
func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
