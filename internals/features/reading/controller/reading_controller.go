package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookshelf_backend/internals/features/reading/dto"
	"bookshelf_backend/internals/features/reading/service"
	helper "bookshelf_backend/internals/helpers"
)

type ReadingController struct {
	Service *service.ReadingService
}

func NewReadingController(svc *service.ReadingService) *ReadingController {
	return &ReadingController{Service: svc}
}

// GET /reading
func (ctrl *ReadingController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	q := dto.ReadingListQuery{PageQuery: helper.NewPageQuery()}
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonValidationError(c, map[string]string{"query": err.Error()})
	}
	if res := helper.Validate(q); !res.OK {
		return helper.JsonValidationError(c, res.Errors)
	}

	page, err := ctrl.Service.List(c.UserContext(), userID, q)
	if err != nil {
		return helper.FromError(c, "Failed to fetch reading status", err)
	}
	return helper.JsonOK(c, dto.ReadingListResponse{ReadingStatus: page.Items, Pagination: page.Pagination})
}

// GET /reading/:bookId
func (ctrl *ReadingController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	out, err := ctrl.Service.Get(c.UserContext(), userID, strings.TrimSpace(c.Params("bookId")))
	if err != nil {
		return helper.FromError(c, "Failed to fetch reading status", err)
	}
	return helper.JsonOK(c, out)
}

// PUT /reading/:bookId
func (ctrl *ReadingController) Upsert(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	bookID := strings.TrimSpace(c.Params("bookId"))
	if bookID == "" {
		return helper.JsonValidationError(c, map[string]string{"bookId": "is required"})
	}

	var req dto.UpsertReadingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, map[string]string{"body": "invalid request body: " + err.Error()})
	}
	req.Normalize()
	if res := helper.Validate(req); !res.OK {
		return helper.JsonValidationError(c, res.Errors)
	}

	row, created, err := ctrl.Service.Upsert(c.UserContext(), userID, bookID, req)
	if err != nil {
		return helper.FromError(c, "Failed to update reading status", err)
	}
	msg := "Reading status updated successfully"
	if created {
		msg = "Reading status created successfully"
	}
	return helper.JsonOK(c, dto.ReadingEnvelope{ReadingStatus: row, Message: msg})
}

// DELETE /reading/:bookId
func (ctrl *ReadingController) Remove(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	if err := ctrl.Service.Remove(c.UserContext(), userID, strings.TrimSpace(c.Params("bookId"))); err != nil {
		return helper.FromError(c, "Failed to remove reading status", err)
	}
	return helper.JsonOK(c, fiber.Map{"message": "Reading status removed successfully"})
}
