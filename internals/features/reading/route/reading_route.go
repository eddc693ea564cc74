package route

import (
	"github.com/gofiber/fiber/v2"

	"bookshelf_backend/internals/features/reading/controller"
	"bookshelf_backend/internals/features/reading/service"
)

// Mount with: route.ReadingRoutes(app.Group("/reading", verifier.Required()), readingSvc)
//
//	GET    /reading
//	GET    /reading/:bookId
//	PUT    /reading/:bookId
//	DELETE /reading/:bookId
func ReadingRoutes(r fiber.Router, svc *service.ReadingService) {
	ctl := controller.NewReadingController(svc)

	r.Get("/", ctl.List)
	r.Get("/:bookId", ctl.Get)
	r.Put("/:bookId", ctl.Upsert)
	r.Delete("/:bookId", ctl.Remove)
}
