package route

import (
	"github.com/gofiber/fiber/v2"

	"bookshelf_backend/internals/features/wishlist/controller"
	"bookshelf_backend/internals/features/wishlist/service"
)

// Mount with: route.WishlistRoutes(app.Group("/wishlist", verifier.Required()), wishlistSvc)
//
//	GET    /wishlist
//	POST   /wishlist
//	PATCH  /wishlist/:bookId
//	DELETE /wishlist/:bookId
func WishlistRoutes(r fiber.Router, svc *service.WishlistService) {
	ctl := controller.NewWishlistController(svc)

	r.Get("/", ctl.List)
	r.Post("/", ctl.Add)
	r.Patch("/:bookId", ctl.Update)
	r.Delete("/:bookId", ctl.Remove)
}
