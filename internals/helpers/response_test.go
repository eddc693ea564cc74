package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, h fiber.Handler) (int, string) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", h)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestFromError_AppError(t *testing.T) {
	wrapped := pkgerrors.Wrap(BookUnavailable(), "create loan")
	status, body := render(t, func(c *fiber.Ctx) error {
		return FromError(c, "Failed to create loan", wrapped)
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.JSONEq(t, `{"error":"Book not available","message":"This book is currently not available for loan"}`, body)
}

func TestFromError_Validation(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return FromError(c, "x", InvalidField("endDate", "must not be before startDate"))
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.JSONEq(t, `{"error":"Validation failed","message":"Request contains invalid fields","errors":{"endDate":"must not be before startDate"}}`, body)
}

func TestFromError_Unknown(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return FromError(c, "Failed to fetch loans", errors.New("connection reset"))
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Failed to fetch loans","message":"connection reset"}`, body)
}

func TestErrorHandler(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid session")
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"Unauthorized","message":"Unauthorized - invalid session"}`, body)

	status, _ = render(t, func(c *fiber.Ctx) error { return errors.New("boom") })
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestAppError_Is(t *testing.T) {
	err := pkgerrors.Wrap(LoanNotFound(), "return")
	assert.True(t, errors.Is(err, ErrLoanNotFound))
	assert.False(t, errors.Is(err, ErrBookNotFound))

	ae, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, ae.Status())
	assert.Equal(t, fiber.StatusBadGateway, CatalogUnavailable(nil).Status())
	assert.Equal(t, fiber.StatusInternalServerError, (&AppError{Kind: "Other"}).Status())
}
