package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bookshelf_backend/internals/configs"
	database "bookshelf_backend/internals/databases"
	bookRepo "bookshelf_backend/internals/features/books/repository"
	bookService "bookshelf_backend/internals/features/books/service"
	"bookshelf_backend/internals/features/catalog/googlebooks"
	loanRepo "bookshelf_backend/internals/features/loans/repository"
	"bookshelf_backend/internals/features/loans/scheduler"
	loanService "bookshelf_backend/internals/features/loans/service"
	readingRepo "bookshelf_backend/internals/features/reading/repository"
	readingService "bookshelf_backend/internals/features/reading/service"
	wishlistRepo "bookshelf_backend/internals/features/wishlist/repository"
	wishlistService "bookshelf_backend/internals/features/wishlist/service"
	helper "bookshelf_backend/internals/helpers"
	middlewares "bookshelf_backend/internals/middlewares"
	"bookshelf_backend/internals/middlewares/auth"
	routes "bookshelf_backend/internals/route"
)

var envFile string

func main() {
	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Personal library API: catalog search, loans, wishlist and reading log",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database tables and exit",
			RunE:  runMigrate,
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config, builds the logger and opens a tuned, migrated pool.
func bootstrap() (*configs.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := configs.LoadEnv(envFile)
	if err != nil {
		return nil, nil, nil, err
	}
	log := configs.NewLogger(cfg)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.TunePool(db, cfg); err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, log, db, nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	_, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	log.Info("migration finished")
	return database.Close(db)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	verifier, err := auth.NewVerifier(auth.VerifierOpts{
		Secret:     cfg.AuthJWTSecret,
		CookieName: cfg.AuthCookieName,
		Log:        log,
	})
	if err != nil {
		return err
	}

	catalog := googlebooks.NewClient(googlebooks.Options{
		BaseURL: cfg.CatalogBaseURL,
		APIKey:  cfg.GoogleBooksAPIKey,
		Timeout: cfg.CatalogTimeout,
		Log:     log,
	})
	loanStore := loanRepo.NewLoanRepository(db)
	books := bookService.NewBookService(catalog, bookRepo.NewBookRepository(db), log)

	deps := routes.Deps{
		DB:       db,
		Log:      log,
		Verifier: verifier,
		Books:    books,
		Loans:    loanService.NewLoanService(books, loanStore, log, loanService.WithLoanPeriod(cfg.LoanPeriod())),
		Wishlist: wishlistService.NewWishlistService(books, wishlistRepo.NewWishlistRepository(db)),
		Reading:  readingService.NewReadingService(books, readingRepo.NewReadingRepository(db)),
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	middlewares.SetupMiddlewares(app, log, middlewares.Options{
		CorsOrigin:         cfg.CorsOrigin,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	routes.SetupRoutes(app, deps)

	// the sweep only runs after the DB is ready
	var sweep *scheduler.OverdueSweep
	if cfg.OverdueSweepInterval > 0 {
		sweep = scheduler.NewOverdueSweep(loanStore, cfg.OverdueSweepInterval, log)
		if err := sweep.Start(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case <-quit:
		log.Info("shutting down")
	case serveErr = <-errCh:
		log.Error("server stopped", zap.Error(serveErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	if sweep != nil {
		sweep.Stop()
	}
	if err := database.Close(db); err != nil {
		log.Warn("close database", zap.Error(err))
	}
	return serveErr
}
