package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "bookshelf_backend/internals/databases"
)

type health struct {
	db      *gorm.DB
	started time.Time
}

func newHealth(db *gorm.DB, started time.Time) *health {
	return &health{db: db, started: started}
}

func BaseRoutes(app *fiber.App, h *health) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bookshelf API is running")
	})

	app.Get("/health", h.handle)
}

func (h *health) handle(c *fiber.Ctx) error {
	dbStatus := "Connected"
	serverStatus := "OK"
	httpStatus := fiber.StatusOK

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if h.db == nil || database.Ping(ctx, h.db) != nil {
		dbStatus = "Database connection error"
		serverStatus = "DOWN"
		httpStatus = fiber.StatusServiceUnavailable
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":        serverStatus,
		"database":      dbStatus,
		"serverTime":    time.Now().UTC().Format(time.RFC3339),
		"uptimeSeconds": int(time.Since(h.started).Seconds()),
	})
}
