package route

import (
	"github.com/gofiber/fiber/v2"

	"bookshelf_backend/internals/features/books/controller"
	"bookshelf_backend/internals/features/books/service"
)

// Mount with: route.BookRoutes(app.Group("/books"), bookSvc)
//
//	GET /books
//	GET /books/:id
func BookRoutes(r fiber.Router, svc *service.BookService) {
	ctl := controller.NewBookController(svc)

	r.Get("/", ctl.Search)
	r.Get("/:id", ctl.GetByID)
}
