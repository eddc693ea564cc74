package configs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	DatabaseURL    string
	DBDriver       string
	DBMaxOpenConns int
	DBMaxIdleConns int

	GoogleBooksAPIKey string
	CatalogBaseURL    string
	CatalogTimeout    time.Duration

	AuthJWTSecret  string
	AuthCookieName string

	CorsOrigin         string
	RateLimitPerMinute int

	LogLevel          string
	LogFile           string
	LogFileMaxSize    int
	LogFileMaxBackups int
	LogFileMaxAge     int

	LoanDefaultDays      int
	OverdueSweepInterval time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("CATALOG_BASE_URL", "https://www.googleapis.com/books/v1")
	v.SetDefault("CATALOG_TIMEOUT", 10*time.Second)
	v.SetDefault("AUTH_COOKIE_NAME", "session_token")
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 100)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_MAX_SIZE", 50)
	v.SetDefault("LOG_FILE_MAX_BACKUPS", 5)
	v.SetDefault("LOG_FILE_MAX_AGE", 30)
	v.SetDefault("LOAN_DEFAULT_DAYS", 14)
	v.SetDefault("OVERDUE_SWEEP_INTERVAL", time.Duration(0))
}

// LoadEnv reads an optional .env file and then the process environment.
// Values already present in the environment are never overridden by the file.
func LoadEnv(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("[INFO] %s not loaded, using system environment", envFile)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port: v.GetString("APP_PORT"),

		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBDriver:       strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DBMaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),

		GoogleBooksAPIKey: v.GetString("GOOGLE_BOOKS_API_KEY"),
		CatalogBaseURL:    strings.TrimRight(v.GetString("CATALOG_BASE_URL"), "/"),
		CatalogTimeout:    v.GetDuration("CATALOG_TIMEOUT"),

		AuthJWTSecret:  v.GetString("AUTH_JWT_SECRET"),
		AuthCookieName: v.GetString("AUTH_COOKIE_NAME"),

		CorsOrigin:         v.GetString("CORS_ORIGIN"),
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),

		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFile:           v.GetString("LOG_FILE"),
		LogFileMaxSize:    v.GetInt("LOG_FILE_MAX_SIZE"),
		LogFileMaxBackups: v.GetInt("LOG_FILE_MAX_BACKUPS"),
		LogFileMaxAge:     v.GetInt("LOG_FILE_MAX_AGE"),

		LoanDefaultDays:      v.GetInt("LOAN_DEFAULT_DAYS"),
		OverdueSweepInterval: v.GetDuration("OVERDUE_SWEEP_INTERVAL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.DatabaseURL) == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if strings.TrimSpace(c.AuthJWTSecret) == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.LoanDefaultDays <= 0 {
		return fmt.Errorf("LOAN_DEFAULT_DAYS must be positive")
	}
	return nil
}

// LoanPeriod is the due-date offset used when a loan request carries none.
func (c *Config) LoanPeriod() time.Duration {
	return time.Duration(c.LoanDefaultDays) * 24 * time.Hour
}
