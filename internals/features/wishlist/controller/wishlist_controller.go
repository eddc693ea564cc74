package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookshelf_backend/internals/features/wishlist/dto"
	"bookshelf_backend/internals/features/wishlist/service"
	helper "bookshelf_backend/internals/helpers"
)

type WishlistController struct {
	Service *service.WishlistService
}

func NewWishlistController(svc *service.WishlistService) *WishlistController {
	return &WishlistController{Service: svc}
}

func bookParam(c *fiber.Ctx) (string, bool) {
	id := strings.TrimSpace(c.Params("bookId"))
	return id, id != ""
}

// GET /wishlist
func (ctrl *WishlistController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	q := dto.WishlistListQuery{PageQuery: helper.NewPageQuery()}
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonValidationError(c, map[string]string{"query": err.Error()})
	}
	if res := helper.Validate(q); !res.OK {
		return helper.JsonValidationError(c, res.Errors)
	}

	page, err := ctrl.Service.List(c.UserContext(), userID, q)
	if err != nil {
		return helper.FromError(c, "Failed to fetch wishlist", err)
	}
	return helper.JsonOK(c, dto.WishlistListResponse{Wishlist: page.Items, Pagination: page.Pagination})
}

// POST /wishlist
func (ctrl *WishlistController) Add(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.AddWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, map[string]string{"body": "invalid request body: " + err.Error()})
	}
	req.Normalize()
	if res := helper.Validate(req); !res.OK {
		return helper.JsonValidationError(c, res.Errors)
	}

	item, err := ctrl.Service.Add(c.UserContext(), userID, req)
	if err != nil {
		return helper.FromError(c, "Failed to add book to wishlist", err)
	}
	return helper.JsonCreated(c, dto.WishlistEnvelope{WishlistItem: item, Message: "Book added to wishlist successfully"})
}

// PATCH /wishlist/:bookId
func (ctrl *WishlistController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	bookID, ok := bookParam(c)
	if !ok {
		return helper.JsonValidationError(c, map[string]string{"bookId": "is required"})
	}

	var req dto.UpdateWishlistRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonValidationError(c, map[string]string{"body": "invalid request body: " + err.Error()})
		}
	}
	req.Normalize()
	if res := helper.Validate(req); !res.OK {
		return helper.JsonValidationError(c, res.Errors)
	}

	item, err := ctrl.Service.Update(c.UserContext(), userID, bookID, req)
	if err != nil {
		return helper.FromError(c, "Failed to update wishlist item", err)
	}
	return helper.JsonOK(c, dto.WishlistEnvelope{WishlistItem: item, Message: "Wishlist item updated successfully"})
}

// DELETE /wishlist/:bookId
func (ctrl *WishlistController) Remove(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	bookID, ok := bookParam(c)
	if !ok {
		return helper.JsonValidationError(c, map[string]string{"bookId": "is required"})
	}

	if err := ctrl.Service.Remove(c.UserContext(), userID, bookID); err != nil {
		return helper.FromError(c, "Failed to remove book from wishlist", err)
	}
	return helper.JsonOK(c, fiber.Map{"message": "Book removed from wishlist successfully"})
}
