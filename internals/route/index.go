package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bookRoute "bookshelf_backend/internals/features/books/route"
	bookService "bookshelf_backend/internals/features/books/service"
	loanRoute "bookshelf_backend/internals/features/loans/route"
	loanService "bookshelf_backend/internals/features/loans/service"
	readingRoute "bookshelf_backend/internals/features/reading/route"
	readingService "bookshelf_backend/internals/features/reading/service"
	wishlistRoute "bookshelf_backend/internals/features/wishlist/route"
	wishlistService "bookshelf_backend/internals/features/wishlist/service"
	"bookshelf_backend/internals/middlewares/auth"
)

// Deps carries everything the HTTP surface needs. Services are built once in
// main and shared by all requests.
type Deps struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Verifier *auth.Verifier

	Books    *bookService.BookService
	Loans    *loanService.LoanService
	Wishlist *wishlistService.WishlistService
	Reading  *readingService.ReadingService
}

func SetupRoutes(app *fiber.App, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	health := newHealth(d.DB, time.Now())

	log.Info("setting up base routes")
	BaseRoutes(app, health)

	// ===================== PUBLIC =====================
	log.Info("mounting book routes")
	bookRoute.BookRoutes(app.Group("/books"), d.Books)

	// ===================== PRIVATE (USER) =====================
	guard := d.Verifier.Required()

	log.Info("mounting loan, wishlist and reading routes")
	loanRoute.LoanRoutes(app.Group("/loans", guard), d.Loans)
	wishlistRoute.WishlistRoutes(app.Group("/wishlist", guard), d.Wishlist)
	readingRoute.ReadingRoutes(app.Group("/reading", guard), d.Reading)
}
