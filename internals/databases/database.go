package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bookshelf_backend/internals/configs"
	bookModel "bookshelf_backend/internals/features/books/model"
	loanModel "bookshelf_backend/internals/features/loans/model"
	readingModel "bookshelf_backend/internals/features/reading/model"
	wishlistModel "bookshelf_backend/internals/features/wishlist/model"
)

func dialector(cfg *configs.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case configs.DriverPostgres:
		return postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true, // PgBouncer transaction pooling
		}), nil
	case configs.DriverSQLite:
		return sqlite.Open(cfg.DatabaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

// ConnectDB opens the configured database. TranslateError is on so that
// unique violations surface as gorm.ErrDuplicatedKey on every dialect.
func ConnectDB(cfg *configs.Config, log *zap.Logger) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         configs.NewGormLogger(log, cfg.LogLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	log.Info("database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func TunePool(db *gorm.DB, cfg *configs.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates the tables owned by this service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&bookModel.Book{},
		&loanModel.Loan{},
		&wishlistModel.WishlistEntry{},
		&readingModel.ReadingStatus{},
	)
}
