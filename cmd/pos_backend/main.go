package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	paymentadapter "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/adapters/payment"
	portsrepo "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/repositories"
	portssvc "github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/ports/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/core/services"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/handlers"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/middleware"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/internal/repositories/database/pgsql"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/pkg/config"
	"github.com/Noorcom-Network-NNL/noorcom-pos-backend/pkg/database"
)

// @title Noorcom POS Backend API
// @version 1.0
// @description Double-entry ledger and payment reconciliation backend for Noorcom POS.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(newCORSMiddleware(cfg))
	rateLimitMiddleware, err := newRateLimitMiddleware(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(rateLimitMiddleware)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := buildServices(cfg, repos)

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires the repositories and payment gateway adapters into the
// service facades consumed by the HTTP layer.
func buildServices(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	gatewayClient := &http.Client{Timeout: 30 * time.Second}
	providers := []portssvc.PaymentProvider{
		paymentadapter.NewMpesaProvider(gatewayClient, paymentadapter.MpesaConfig{
			BaseURL:        cfg.MpesaBaseURL,
			ConsumerKey:    cfg.MpesaConsumerKey,
			ConsumerSecret: cfg.MpesaConsumerSecret,
			ShortCode:      cfg.MpesaShortCode,
			Passkey:        cfg.MpesaPasskey,
			CallbackURL:    cfg.MpesaCallbackURL,
		}),
		paymentadapter.NewPaypalProvider(gatewayClient, paymentadapter.PaypalConfig{
			BaseURL:      cfg.PaypalBaseURL,
			ClientID:     cfg.PaypalClientID,
			ClientSecret: cfg.PaypalClientSecret,
			CurrencyCode: cfg.PaypalCurrencyCode,
			ReturnURL:    cfg.PaypalReturnURL,
			CancelURL:    cfg.PaypalCancelURL,
		}),
	}

	return &portssvc.ServiceContainer{
		Account: services.NewAccountService(repos.AccountRepo),
		Journal: services.NewJournalService(repos.JournalRepo, repos.AccountRepo),
		Reporting: services.NewReportingService(
			repos.AccountRepo,
			repos.JournalRepo,
			repos.SalesRepo,
			repos.ExpenseRepo,
		),
		Payment: services.NewPaymentService(
			repos.PaymentRepo,
			providers,
			services.WithPendingTimeout(cfg.PaymentPendingTimeout),
		),
		Sales: services.NewSalesService(repos.SalesRepo, repos.ExpenseRepo),
	}
}

// newCORSMiddleware builds the CORS policy from the configured origins.
func newCORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	return cors.New(corsConfig)
}

// newRateLimitMiddleware builds a per-IP limiter from a formatted rate such as "100-M".
func newRateLimitMiddleware(formatted string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	return middleware.RateLimit(ipLimiter), nil
}

// runMigrations applies all pending "up" migrations from the migrations directory.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations,
	// using the pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
