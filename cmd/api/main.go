package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferromax/backoffice-api/docs"
	"github.com/ferromax/backoffice-api/internal/auth"
	"github.com/ferromax/backoffice-api/internal/cache"
	"github.com/ferromax/backoffice-api/internal/config"
	"github.com/ferromax/backoffice-api/internal/database"
	"github.com/ferromax/backoffice-api/internal/erp"
	"github.com/ferromax/backoffice-api/internal/facebook"
	"github.com/ferromax/backoffice-api/internal/http/handler"
	"github.com/ferromax/backoffice-api/internal/http/middleware"
	"github.com/ferromax/backoffice-api/internal/http/router"
	"github.com/ferromax/backoffice-api/internal/jobs"
	"github.com/ferromax/backoffice-api/internal/logger"
	"github.com/ferromax/backoffice-api/internal/pdf"
	"github.com/ferromax/backoffice-api/internal/repository"
	"github.com/ferromax/backoffice-api/internal/service"
	"github.com/ferromax/backoffice-api/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title Ferromax Back-Office API
// @version 1.0
// @description Back-office API for lead intake, quotations, sales orders, inventory, documents and attendance

// @contact.name API Support
// @contact.email it@ferromax.ph

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token
// @Security BearerAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	if basicCfg.App.Environment == "development" || basicCfg.App.Environment == "local" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.App.Environment == "development" || cfg.App.Environment == "local" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Optional redis for the permission cache
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, permission cache falls back to in-process store", zap.Error(err))
			rdb = nil
		}
	}

	// Initialize ERP connection (optional, read-only)
	var erpClient *erp.Client
	if cfg.ERP.Enabled {
		erpClient, err = erp.NewClient(&cfg.ERP, log)
		if err != nil {
			// The ERP link is optional; the catalog sync just stays off
			log.Warn("ERP connection failed, continuing without it", zap.Error(err))
		}
	} else {
		log.Info("ERP not configured, skipping")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	clientRepo := repository.NewClientRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	historyRepo := repository.NewContactHistoryRepository(db)
	activityLogRepo := repository.NewActivityLogRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	salesOrderRepo := repository.NewSalesOrderRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	scheduleRepo := repository.NewWorkScheduleRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	marketingRepo := repository.NewMarketingRepository(db)

	// Auth plumbing
	jwtManager := auth.NewJWTManager(&cfg.Auth)
	sessionManager := auth.NewSessionManager(&cfg.Auth)
	permCache := cache.NewPermissionCache(rdb, roleRepo, cfg.Auth.PermissionCacheTTLDuration(), log)
	authMiddleware := auth.NewMiddleware(jwtManager, sessionManager, userRepo, permCache, log)

	// Initialize services
	renderer := pdf.NewQuotationRenderer(cfg.App.CompanyName, cfg.App.CompanyAddress)
	mailer := service.NewLogMailer(log)

	userService := service.NewUserService(userRepo, roleRepo, jwtManager, log)
	roleService := service.NewRoleService(roleRepo, permCache, log)
	companyService := service.NewCompanyService(companyRepo, log)
	inquiryService := service.NewInquiryService(db, inquiryRepo, leadRepo, companyRepo, log)
	leadService := service.NewLeadService(db, leadRepo, companyRepo, historyRepo, activityLogRepo, log)
	clientService := service.NewClientService(db, clientRepo, sequenceRepo, historyRepo, log)
	productService := service.NewProductService(db, productRepo, movementRepo, log)
	quotationService := service.NewQuotationService(db, quotationRepo, clientRepo, leadRepo, sequenceRepo, renderer, fileStorage, mailer, log)
	salesOrderService := service.NewSalesOrderService(db, salesOrderRepo, quotationRepo, sequenceRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, scheduleRepo, userRepo, log)
	documentService := service.NewDocumentService(documentRepo, fileStorage, log)
	dashboardService := service.NewDashboardService(leadRepo, inquiryRepo, quotationRepo, productRepo, attendanceRepo, log)
	erpSyncService := service.NewERPSyncService(erpClient, productRepo, log)

	var marketingService *service.MarketingService
	if cfg.Facebook.Enabled && cfg.Facebook.AccessToken != "" {
		fbClient := facebook.NewClient(&cfg.Facebook)
		marketingService = service.NewMarketingService(fbClient, marketingRepo, log)
	} else {
		log.Info("Facebook marketing sync not configured, skipping")
	}

	// Initialize middleware and handlers
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	authHandler := handler.NewAuthHandler(userService, sessionManager, permCache, log)
	inquiryHandler := handler.NewInquiryHandler(inquiryService, log)
	leadHandler := handler.NewLeadHandler(leadService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)
	clientHandler := handler.NewClientHandler(clientService, log)
	productHandler := handler.NewProductHandler(productService, log)
	quotationHandler := handler.NewQuotationHandler(quotationService, log)
	salesOrderHandler := handler.NewSalesOrderHandler(salesOrderService, log)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, log)
	documentHandler := handler.NewDocumentHandler(documentService, cfg.Storage.MaxUploadSizeMB, log)
	userHandler := handler.NewUserHandler(userService, log)
	roleHandler := handler.NewRoleHandler(roleService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	marketingHandler := handler.NewMarketingHandler(marketingService, log)
	erpHandler := handler.NewERPHandler(erpSyncService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		erpClient,
		authMiddleware,
		rateLimiter,
		authHandler,
		inquiryHandler,
		leadHandler,
		companyHandler,
		clientHandler,
		productHandler,
		quotationHandler,
		salesOrderHandler,
		attendanceHandler,
		documentHandler,
		userHandler,
		roleHandler,
		dashboardHandler,
		marketingHandler,
		erpHandler,
	)

	// Background jobs. An empty cron spec leaves the job unregistered.
	var scheduler *jobs.Scheduler
	startScheduler := func() *jobs.Scheduler {
		if scheduler == nil {
			scheduler = jobs.NewScheduler(log)
		}
		return scheduler
	}

	if marketingService != nil && cfg.Jobs.MarketingSyncSchedule != "" {
		if err := jobs.RegisterMarketingSyncJob(startScheduler(), marketingService, log, cfg.Jobs.MarketingSyncSchedule); err != nil {
			log.Error("Failed to register marketing sync job", zap.Error(err))
		}
	}
	if erpSyncService.Enabled() && cfg.Jobs.ERPSyncSchedule != "" {
		erpRun := func(ctx context.Context) error {
			_, err := erpSyncService.Sync(ctx)
			return err
		}
		if err := jobs.RegisterERPSyncJob(startScheduler(), erpRun, log, cfg.Jobs.ERPSyncSchedule); err != nil {
			log.Error("Failed to register ERP sync job", zap.Error(err))
		}
	}
	if scheduler != nil {
		scheduler.Start()
		log.Info("Scheduler started", zap.Strings("jobs", scheduler.GetJobNames()))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := erpClient.Close(); err != nil {
			log.Warn("Error closing ERP connection", zap.Error(err))
		}
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				log.Warn("Error closing redis connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
