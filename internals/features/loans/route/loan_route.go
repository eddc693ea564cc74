package route

import (
	"github.com/gofiber/fiber/v2"

	"bookshelf_backend/internals/features/loans/controller"
	"bookshelf_backend/internals/features/loans/service"
)

// Mount with: route.LoanRoutes(app.Group("/loans", verifier.Required()), loanSvc)
//
//	GET   /loans
//	GET   /loans/history
//	POST  /loans
//	PATCH /loans/:loanId/return
func LoanRoutes(r fiber.Router, svc *service.LoanService) {
	ctl := controller.NewLoanController(svc)

	r.Get("/", ctl.List)
	r.Get("/history", ctl.History)
	r.Post("/", ctl.Create)
	r.Patch("/:loanId/return", ctl.Return)
}
