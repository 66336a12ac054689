package router

import (
	"encoding/json"
	"net/http"

	"github.com/ferromax/backoffice-api/internal/auth"
	"github.com/ferromax/backoffice-api/internal/config"
	"github.com/ferromax/backoffice-api/internal/database"
	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/ferromax/backoffice-api/internal/erp"
	"github.com/ferromax/backoffice-api/internal/http/handler"
	"github.com/ferromax/backoffice-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/ferromax/backoffice-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	db                *gorm.DB
	erpClient         *erp.Client
	authMiddleware    *auth.Middleware
	rateLimiter       *middleware.RateLimiter
	authHandler       *handler.AuthHandler
	inquiryHandler    *handler.InquiryHandler
	leadHandler       *handler.LeadHandler
	companyHandler    *handler.CompanyHandler
	clientHandler     *handler.ClientHandler
	productHandler    *handler.ProductHandler
	quotationHandler  *handler.QuotationHandler
	salesOrderHandler *handler.SalesOrderHandler
	attendanceHandler *handler.AttendanceHandler
	documentHandler   *handler.DocumentHandler
	userHandler       *handler.UserHandler
	roleHandler       *handler.RoleHandler
	dashboardHandler  *handler.DashboardHandler
	marketingHandler  *handler.MarketingHandler
	erpHandler        *handler.ERPHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	erpClient *erp.Client,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	inquiryHandler *handler.InquiryHandler,
	leadHandler *handler.LeadHandler,
	companyHandler *handler.CompanyHandler,
	clientHandler *handler.ClientHandler,
	productHandler *handler.ProductHandler,
	quotationHandler *handler.QuotationHandler,
	salesOrderHandler *handler.SalesOrderHandler,
	attendanceHandler *handler.AttendanceHandler,
	documentHandler *handler.DocumentHandler,
	userHandler *handler.UserHandler,
	roleHandler *handler.RoleHandler,
	dashboardHandler *handler.DashboardHandler,
	marketingHandler *handler.MarketingHandler,
	erpHandler *handler.ERPHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		db:                db,
		erpClient:         erpClient,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		authHandler:       authHandler,
		inquiryHandler:    inquiryHandler,
		leadHandler:       leadHandler,
		companyHandler:    companyHandler,
		clientHandler:     clientHandler,
		productHandler:    productHandler,
		quotationHandler:  quotationHandler,
		salesOrderHandler: salesOrderHandler,
		attendanceHandler: attendanceHandler,
		documentHandler:   documentHandler,
		userHandler:       userHandler,
		roleHandler:       roleHandler,
		dashboardHandler:  dashboardHandler,
		marketingHandler:  marketingHandler,
		erpHandler:        erpHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// Check ERP when configured. An unhealthy ERP does not fail
		// readiness; the catalog sync just stalls.
		if rt.erpClient.IsEnabled() {
			checks["erp"] = rt.erpClient.HealthCheck(r.Context())
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Post("/auth/logout", rt.authHandler.Logout)
			r.Get("/auth/me", rt.authHandler.Me)

			// Inquiries
			r.Route("/inquiries", func(r chi.Router) {
				r.With(rt.authMiddleware.RequirePermission(domain.PermInquiriesRead)).Group(func(r chi.Router) {
					r.Get("/", rt.inquiryHandler.List)
					r.Get("/{id}", rt.inquiryHandler.GetByID)
				})
				r.With(rt.authMiddleware.RequirePermission(domain.PermInquiriesWrite)).Group(func(r chi.Router) {
					r.Post("/", rt.inquiryHandler.Create)
					r.Post("/customer-check", rt.inquiryHandler.CustomerCheck)
					r.Put("/{id}", rt.inquiryHandler.Update)
					r.Delete("/{id}", rt.inquiryHandler.Delete)
					r.Post("/{id}/quote", rt.inquiryHandler.Quote)
					r.Post("/{id}/approve", rt.inquiryHandler.Approve)
					r.Post("/{id}/schedule", rt.inquiryHandler.Schedule)
					r.Post("/{id}/fulfill", rt.inquiryHandler.Fulfill)
					r.Post("/{id}/cancel", rt.inquiryHandler.Cancel)
					r.Post("/{id}/convert", rt.inquiryHandler.ConvertToLead)
				})
			})

			// Leads
			r.Route("/leads", func(r chi.Router) {
				r.With(rt.authMiddleware.RequirePermission(domain.PermLeadsRead)).Group(func(r chi.Router) {
					r.Get("/", rt.leadHandler.List)
					r.Get("/{id}", rt.leadHandler.GetByID)
					r.Get("/{id}/contact-history", rt.leadHandler.ContactHistory)
					r.Get("/{id}/activity", rt.leadHandler.ActivityLog)
				})
				r.With(rt.authMiddleware.RequirePermission(domain.PermLeadsWrite)).Group(func(r chi.Router) {
					r.Post("/", rt.leadHandler.Create)
					r.Put("/{id}", rt.leadHandler.Update)
					r.Patch("/{id}/status", rt.leadHandler.UpdateStatus)
					r.Delete("/{id}", rt.leadHandler.Delete)
					r.Post("/{id}/contact-history", rt.leadHandler.AddContactHistory)
				})
			})

			// Companies share the lead permission scope
			r.Route("/companies", func(r chi.Router) {
				r.With(rt.authMiddleware.RequirePermission(domain.PermLeadsRead)).Group(func(r chi.Router) {
					r.Get("/", rt.companyHandler.List)
					r.Get("/{id}", rt.companyHandler.GetByID)
				})
				r.With(rt.authMiddleware.RequirePermission(domain.PermLeadsWrite)).
					Post("/", rt.companyHandler.Create)
			})

			// Clients
			r.Route("/clients", func(r chi.Router) {
				r.With(rt.authMiddleware.RequirePermission(domain.PermClientsRead)).Group(func(r chi.Router) {
					r.Get("/", rt.clientHandler.List)
					r.Get("/{id}", rt.clientHandler.GetByID)
					r.Get("/{id}/contact-history", rt.clientHandler.ContactHistory)
				})
				r.With(rt.authMiddleware.RequirePermission(domain.PermClientsWrite)).Group(func(r chi.Router) {
					r.Post("/", rt.clientHandler.Create)
					r.Put("/{id}", rt.clientHandler.Update)
					r.Delete("/{id}", rt.clientHandler.Deactivate)
				})
			})

			// Products & stock
			r.Route("/products", func(r chi.Router) {
				r.With(rt.authMiddleware.RequirePermission(domain.PermProductsRead)).Group(func(r chi.Router) {
					r.Get("/", rt.productHandler.List)
					r.Get("/{id}", rt.productHandler.GetByID)
					r.Get("/{id}/movements", rt.productHandler.Movements)
				})
				r.With(rt.authMiddleware.RequirePermission(domain.PermProductsWrite)).Group(func(r chi.Router) {
					r.Post("/", rt.productHandler.Create)
					r.Put("/{id}", rt.productHandler.Update)
					r.Post("/{id}/stock", rt.productHandler.AdjustStock)
				})
			})

			// Quotations
			r.Route("/quotations", func(r chi.Router) {
				r.With(rt.authMiddleware.RequirePermission(domain.PermQuotationsRead)).Group(func(r chi.Router) {
					r.Get("/", rt.quotationHandler.List)
					r.Get("/{id}", rt.quotationHandler.GetByID)
					r.Get("/{id}/pdf", rt.quotationHandler.PDF)
				})
				r.With(rt.authMiddleware.RequirePermission(domain.PermQuotationsWrite)).Group(func(r chi.Router) {
					r.Post("/", rt.quotationHandler.Create)
					r.Post("/{id}/send", rt.quotationHandler.Send)
					r.Post("/{id}/accept", rt.quotationHandler.Accept)
					r.Post("/{id}/reject", rt.quotationHandler.Reject)
				})
			})

			// Sales orders
			r.Route("/sales-orders", func(r chi.Router) {
				r.With(rt.authMiddleware.RequirePermission(domain.PermSalesOrdersRead)).Group(func(r chi.Router) {
					r.Get("/", rt.salesOrderHandler.List)
					r.Get("/{id}", rt.salesOrderHandler.GetByID)
				})
				r.With(rt.authMiddleware.RequirePermission(domain.PermSalesOrdersWrite)).Group(func(r chi.Router) {
					r.Post("/", rt.salesOrderHandler.Create)
					r.Patch("/{id}/status", rt.salesOrderHandler.UpdateStatus)
				})
			})

			// Attendance. Clocking actions are open to any authenticated
			// user; the overview and schedule admin need permissions.
			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", rt.attendanceHandler.ClockIn)
				r.Post("/clock-out", rt.attendanceHandler.ClockOut)
				r.Post("/break/start", rt.attendanceHandler.StartBreak)
				r.Post("/break/end", rt.attendanceHandler.EndBreak)
				r.Get("/today", rt.attendanceHandler.Today)
				r.Get("/dtr", rt.attendanceHandler.DTR)
				r.Get("/schedule", rt.attendanceHandler.GetSchedule)

				r.With(rt.authMiddleware.RequirePermission(domain.PermAttendanceRead)).
					Get("/overview", rt.attendanceHandler.DailyOverview)
				r.With(rt.authMiddleware.RequirePermission(domain.PermAttendanceWrite)).
					Put("/schedule", rt.attendanceHandler.UpdateSchedule)
			})

			// Documents
			r.Route("/documents", func(r chi.Router) {
				r.With(rt.authMiddleware.RequirePermission(domain.PermDocumentsRead)).Group(func(r chi.Router) {
					r.Get("/", rt.documentHandler.List)
					r.Get("/categories", rt.documentHandler.ListCategories)
					r.Get("/{id}", rt.documentHandler.GetByID)
					r.Get("/{id}/download", rt.documentHandler.Download)
				})
				r.With(rt.authMiddleware.RequirePermission(domain.PermDocumentsWrite)).Group(func(r chi.Router) {
					r.Post("/", rt.documentHandler.Upload)
					r.Delete("/{id}", rt.documentHandler.Delete)
					r.Post("/categories", rt.documentHandler.CreateCategory)
					r.Delete("/categories/{id}", rt.documentHandler.DeleteCategory)
				})
			})

			// User administration
			r.Put("/users/me/password", rt.userHandler.ChangePassword)
			r.Route("/users", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequirePermission(domain.PermUsersManage))
				r.Get("/", rt.userHandler.List)
				r.Post("/", rt.userHandler.Create)
				r.Get("/{id}", rt.userHandler.GetByID)
				r.Put("/{id}", rt.userHandler.Update)
			})

			// Roles & permissions
			r.Route("/roles", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequirePermission(domain.PermUsersManage))
				r.Get("/", rt.roleHandler.List)
				r.Post("/", rt.roleHandler.Create)
				r.Get("/{id}", rt.roleHandler.GetByID)
				r.Put("/{id}/permissions", rt.roleHandler.ReplacePermissions)
			})
			r.With(rt.authMiddleware.RequirePermission(domain.PermUsersManage)).
				Get("/permissions", rt.roleHandler.ListPermissions)

			// Dashboard
			r.With(rt.authMiddleware.RequirePermission(domain.PermDashboardView)).
				Get("/dashboard/stats", rt.dashboardHandler.Stats)

			// Marketing insights
			r.Route("/marketing", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequirePermission(domain.PermMarketingSync))
				r.Post("/sync", rt.marketingHandler.Sync)
				r.Get("/insights", rt.marketingHandler.Insights)
			})

			// ERP catalog sync
			r.With(rt.authMiddleware.RequirePermission(domain.PermProductsWrite)).
				Post("/erp/sync", rt.erpHandler.Sync)
		})
	})

	return r
}
