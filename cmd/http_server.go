package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parceldesk/mailroom/internal"
	"github.com/parceldesk/mailroom/internal/audit"
	auditPostgres "github.com/parceldesk/mailroom/internal/audit/postgres"
	"github.com/parceldesk/mailroom/internal/auth"
	authPostgres "github.com/parceldesk/mailroom/internal/auth/postgres"
	"github.com/parceldesk/mailroom/internal/core/events"
	"github.com/parceldesk/mailroom/internal/insights"
	insightsPostgres "github.com/parceldesk/mailroom/internal/insights/postgres"
	"github.com/parceldesk/mailroom/internal/integration"
	integrationPostgres "github.com/parceldesk/mailroom/internal/integration/postgres"
	"github.com/parceldesk/mailroom/internal/mailitem"
	mailitemPostgres "github.com/parceldesk/mailroom/internal/mailitem/postgres"
	"github.com/parceldesk/mailroom/internal/notification"
	notificationPostgres "github.com/parceldesk/mailroom/internal/notification/postgres"
	"github.com/parceldesk/mailroom/internal/organization"
	organizationPostgres "github.com/parceldesk/mailroom/internal/organization/postgres"
	"github.com/parceldesk/mailroom/internal/pickup"
	pickupPostgres "github.com/parceldesk/mailroom/internal/pickup/postgres"
	"github.com/parceldesk/mailroom/internal/recipient"
	recipientPostgres "github.com/parceldesk/mailroom/internal/recipient/postgres"
	"github.com/parceldesk/mailroom/internal/transport/rest"
	"github.com/parceldesk/mailroom/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the same *sql.DB as sqlx so pool settings apply once
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	verifier := auth.NewVerifierFromConfig(config.Security, tokenGen)

	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, verifier)
	authHandler := auth.NewHandler(authService)

	recipientRepo := recipientPostgres.NewRecipientRepository(gormDB)
	recipientService := recipient.NewService(recipientRepo, lg)
	recipientHandler := recipient.NewHandler(recipientService)

	mailItemRepo := mailitemPostgres.NewMailItemRepository(gormDB)
	mailItemService := mailitem.NewService(mailItemRepo, recipientService, eventBus, lg)
	mailItemHandler := mailitem.NewHandler(mailItemService)

	pickupRepo := pickupPostgres.NewPickupRepository(gormDB)
	pickupService := pickup.NewService(pickupRepo, mailItemRepo, eventBus, lg)
	pickupHandler := pickup.NewHandler(pickupService)

	notificationRepo := notificationPostgres.NewNotificationRepository(gormDB)
	notificationService := notification.NewService(notificationRepo, mailItemRepo, eventBus, lg)
	notificationHandler := notification.NewHandler(notificationService)

	insightsRepo := insightsPostgres.NewInsightsRepository(gormDB)
	insightsService := insights.NewService(insightsRepo, lg)
	insightsHandler := insights.NewHandler(insightsService)

	organizationRepo := organizationPostgres.NewOrganizationRepository(gormDB)
	organizationService := organization.NewService(organizationRepo, eventBus, lg)
	organizationHandler := organization.NewHandler(organizationService)

	auditRepo := auditPostgres.NewAuditRepository(gormDB)
	auditService := audit.NewService(auditRepo, lg)
	auditService.RegisterSubscriptions(eventBus)
	auditHandler := audit.NewHandler(auditService)

	integrationRepo := integrationPostgres.NewIntegrationRepository(gormDB)
	integrationService := integration.NewService(integrationRepo, eventBus, lg)
	integrationHandler := integration.NewHandler(integrationService)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Auth:         authHandler,
			Organization: organizationHandler,
			Recipient:    recipientHandler,
			MailItem:     mailItemHandler,
			Pickup:       pickupHandler,
			Notification: notificationHandler,
			Insights:     insightsHandler,
			Audit:        auditHandler,
			Integration:  integrationHandler,
		},
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
