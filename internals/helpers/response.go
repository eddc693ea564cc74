package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the only error body this API emits.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func JsonError(c *fiber.Ctx, status int, title, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(title) == "" {
		title = fiber.ErrInternalServerError.Message
	}
	return c.Status(status).JSON(ErrorResponse{Error: title, Message: message})
}

func JsonValidationError(c *fiber.Ctx, fields map[string]string) error {
	if fields == nil {
		fields = map[string]string{}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Error:   "Validation failed",
		Message: "Request contains invalid fields",
		Errors:  fields,
	})
}

// FromError renders any error returned by a service. Unknown errors keep the
// uniform shape with a caller supplied title, e.g. "Failed to create loan".
func FromError(c *fiber.Ctx, fallbackTitle string, err error) error {
	if ae, ok := AsAppError(err); ok {
		if ae.Kind == KindValidation {
			return JsonValidationError(c, ae.Fields)
		}
		return JsonError(c, ae.Status(), ae.Title, ae.Message)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fallbackTitle, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, fallbackTitle, err.Error())
}

// JsonOK writes an arbitrary success body with status 200.
func JsonOK(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

func JsonCreated(c *fiber.Ctx, body any) error {
	return c.Status(fiber.StatusCreated).JSON(body)
}

// ErrorHandler is installed as fiber.Config.ErrorHandler so that 401s from the
// auth guard, unknown routes and recovered panics share the error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	title := "Internal error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		switch code {
		case fiber.StatusUnauthorized:
			title = "Unauthorized"
		case fiber.StatusNotFound:
			title = "Not found"
		case fiber.StatusTooManyRequests:
			title = "Too many requests"
		default:
			if code < 500 {
				title = "Bad request"
			}
		}
	}
	return JsonError(c, code, title, err.Error())
}
