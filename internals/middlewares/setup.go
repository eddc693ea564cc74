package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	httpLogger "bookshelf_backend/internals/middlewares/logger"
)

type Options struct {
	CorsOrigin         string
	RateLimitPerMinute int
}

// SetupMiddlewares installs the global chain. The access logger wraps
// recover so a recovered panic still gets its 500 logged.
func SetupMiddlewares(app *fiber.App, log *zap.Logger, o Options) {
	app.Use(httpLogger.RequestID())
	app.Use(httpLogger.LoggerMiddleware(log))
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware(o.CorsOrigin))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(GlobalRateLimiter(o.RateLimitPerMinute))
}
