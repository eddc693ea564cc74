package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookshelf_backend/internals/features/books/dto"
	"bookshelf_backend/internals/features/books/service"
	helper "bookshelf_backend/internals/helpers"
)

type BookController struct {
	Service *service.BookService
}

func NewBookController(svc *service.BookService) *BookController {
	return &BookController{Service: svc}
}

// GET /books
func (ctrl *BookController) Search(c *fiber.Ctx) error {
	var q dto.BookSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonValidationError(c, map[string]string{"query": err.Error()})
	}
	q.Normalize()
	if res := q.Validate(); !res.OK {
		return helper.JsonValidationError(c, res.Errors)
	}

	resp, err := ctrl.Service.Search(c.UserContext(), q)
	if err != nil {
		return helper.FromError(c, "Failed to fetch books", err)
	}
	return helper.JsonOK(c, resp)
}

// GET /books/:id
func (ctrl *BookController) GetByID(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return helper.JsonValidationError(c, map[string]string{"id": "is required"})
	}

	book, err := ctrl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		// clients read a missing book from the body; the status stays 200
		if ae, ok := helper.AsAppError(err); ok && ae.Kind == helper.KindBookNotFound {
			return helper.JsonError(c, fiber.StatusOK, ae.Title, ae.Message)
		}
		return helper.FromError(c, "Failed to fetch book", err)
	}
	return helper.JsonOK(c, book)
}
