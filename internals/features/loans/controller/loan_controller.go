package controller

import (
	"github.com/gofiber/fiber/v2"

	"bookshelf_backend/internals/features/loans/dto"
	"bookshelf_backend/internals/features/loans/service"
	helper "bookshelf_backend/internals/helpers"
)

type LoanController struct {
	Service *service.LoanService
}

func NewLoanController(svc *service.LoanService) *LoanController {
	return &LoanController{Service: svc}
}

func parseListQuery(c *fiber.Ctx) (dto.LoanListQuery, error) {
	q := dto.LoanListQuery{PageQuery: helper.NewPageQuery()}
	if err := c.QueryParser(&q); err != nil {
		return q, helper.InvalidField("query", err.Error())
	}
	return q, helper.Validate(q).Err()
}

// GET /loans
func (ctrl *LoanController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	q, err := parseListQuery(c)
	if err != nil {
		return helper.FromError(c, "Failed to fetch loans", err)
	}

	page, err := ctrl.Service.List(c.UserContext(), userID, q)
	if err != nil {
		return helper.FromError(c, "Failed to fetch loans", err)
	}
	return helper.JsonOK(c, dto.LoanListResponse{Loans: page.Loans, Pagination: page.Pagination})
}

// GET /loans/history
func (ctrl *LoanController) History(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	q, err := parseListQuery(c)
	if err != nil {
		return helper.FromError(c, "Failed to fetch loan history", err)
	}

	page, err := ctrl.Service.List(c.UserContext(), userID, q)
	if err != nil {
		return helper.FromError(c, "Failed to fetch loan history", err)
	}
	return helper.JsonOK(c, dto.LoanHistoryResponse{History: page.Loans, Pagination: page.Pagination})
}

// POST /loans
func (ctrl *LoanController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonValidationError(c, map[string]string{"body": "invalid request body: " + err.Error()})
	}
	req.Normalize()
	if res := helper.Validate(req); !res.OK {
		return helper.JsonValidationError(c, res.Errors)
	}

	loan, err := ctrl.Service.CreateLoan(c.UserContext(), userID, req)
	if err != nil {
		return helper.FromError(c, "Failed to create loan", err)
	}
	return helper.JsonCreated(c, dto.LoanEnvelope{Loan: loan, Message: "Loan created successfully"})
}

// PATCH /loans/:loanId/return
func (ctrl *LoanController) Return(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.ReturnLoanRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonValidationError(c, map[string]string{"body": "invalid request body: " + err.Error()})
		}
	}
	req.Normalize()
	if res := helper.Validate(req); !res.OK {
		return helper.JsonValidationError(c, res.Errors)
	}

	loan, err := ctrl.Service.ReturnLoan(c.UserContext(), userID, c.Params("loanId"), req)
	if err != nil {
		return helper.FromError(c, "Failed to return book", err)
	}
	return helper.JsonOK(c, dto.LoanEnvelope{Loan: loan, Message: "Book returned successfully"})
}
