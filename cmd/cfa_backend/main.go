package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	portssvc "github.com/vilaserena/care_finance_app/internal/core/ports/services"
	"github.com/vilaserena/care_finance_app/internal/core/services"
	"github.com/vilaserena/care_finance_app/internal/handlers"
	"github.com/vilaserena/care_finance_app/internal/middleware"
	"github.com/vilaserena/care_finance_app/internal/platform/cache"
	"github.com/vilaserena/care_finance_app/internal/platform/config"
	"github.com/vilaserena/care_finance_app/internal/repositories/database/pgsql"
	"github.com/vilaserena/care_finance_app/internal/utils/email"
	"github.com/vilaserena/care_finance_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title CFA Backend API
// @version 1.0
// @description Care facility finance backend: DRE reports, occupancy KPIs and batch fee readjustments.

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
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	runMigrations(cfg, logger)

	repos := pgsql.NewRepositoryProvider(dbPool)

	// The chart of accounts is loaded once at startup. A structurally invalid
	// chart would silently corrupt every report, so a broken one is fatal.
	categories, err := repos.CategoryRepo.ListCategories(context.Background())
	if err != nil {
		logger.Error("Failed to load chart of accounts", slog.String("error", err.Error()))
		os.Exit(1)
	}
	chart, err := domain.NewChartOfAccounts(categories, domain.DefaultFallbacks())
	if err != nil {
		logger.Error("Chart of accounts is invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Chart of accounts loaded", slog.Int("categories", len(categories)))

	containerOptions := []services.ContainerOption{
		services.WithContainerNotifier(email.NewSender(cfg, logger)),
	}

	if cfg.RedisURL != "" {
		reportCache, err := cache.NewRedisReportCache(cfg.RedisURL, 15*time.Minute, logger)
		if err != nil {
			logger.Error("Failed to initialize report cache", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer reportCache.Close()
		containerOptions = append(containerOptions, services.WithContainerReportCache(reportCache))
		logger.Info("Report cache enabled")
	}

	serviceContainer := services.NewServiceContainer(cfg, chart, repos, containerOptions...)

	scheduler := startSnapshotScheduler(cfg, serviceContainer.Snapshot, logger)
	defer scheduler.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations and exits on failure.
func runMigrations(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations.
	// Using pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}

// startSnapshotScheduler runs the monthly close job. The job always closes the
// previous calendar month, so the default schedule fires shortly after the
// month ends.
func startSnapshotScheduler(cfg *config.Config, snapshotService portssvc.SnapshotService, logger *slog.Logger) *cron.Cron {
	scheduler := cron.New()

	jobLogger := logger.With(slog.String("job", "monthly_close"))
	_, err := scheduler.AddFunc(cfg.SnapshotCron, func() {
		now := time.Now()
		// Last day of the previous month, safe for any fire date.
		previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
		month, year := int(previous.Month()), previous.Year()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ctx = middleware.ContextWithLogger(ctx, jobLogger)

		snapshot, err := snapshotService.CloseMonth(ctx, month, year)
		if err != nil {
			jobLogger.Error("Monthly close failed",
				slog.Int("month", month),
				slog.Int("year", year),
				slog.String("error", err.Error()))
			return
		}
		jobLogger.Info("Monthly close completed",
			slog.Int("month", snapshot.Month),
			slog.Int("year", snapshot.Year),
			slog.Int64("net_result", snapshot.NetResult))
	})
	if err != nil {
		logger.Error("Invalid snapshot cron expression",
			slog.String("cron", cfg.SnapshotCron),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	scheduler.Start()
	return scheduler
}
