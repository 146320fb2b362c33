package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/domain/reports"
	"stockyard/internal/infrastructure/http/v1/handlers"
	"stockyard/internal/infrastructure/http/v1/middleware"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/internal/infrastructure/storage/postgres/catalog_repo"
	"stockyard/internal/infrastructure/storage/postgres/ledger_repo"
	"stockyard/internal/infrastructure/storage/postgres/report_repo"
	"stockyard/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager drives all transactional work
	TxManager *postgres.TxManager

	// Audit records movement audit entries; may be nil
	Audit *postgres.AuditService

	// Logger for request logging
	Logger *logger.Logger

	// TokenValidator for bearer token validation
	TokenValidator middleware.TokenValidator
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	movementRepo := ledger_repo.NewMovementRepo(cfg.TxManager, cfg.Audit)
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)

	// Services. The ledger writes stock through the product repo's
	// quantity path; the product catalog asks the ledger before deletes.
	categoryService := category.NewService(categoryRepo, cfg.TxManager)
	ledgerService := ledger.NewService(movementRepo, productRepo, cfg.TxManager)
	productService := product.NewService(productRepo, cfg.TxManager, categoryService, ledgerService)
	reportService := reports.NewService(reportRepo)

	if cfg.Audit != nil {
		registerCatalogAudit(cfg.Audit, categoryService, productService)
	}

	baseHandler := handlers.NewBaseHandler()
	categoryHandler := handlers.NewCategoryHandler(baseHandler, categoryService)
	productHandler := handlers.NewProductHandler(baseHandler, productService)
	movementHandler := handlers.NewMovementHandler(baseHandler, ledgerService)
	reportsHandler := handlers.NewReportsHandler(baseHandler, reportService)

	// API v1 (JWT protected)
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Auth(cfg.TokenValidator))
	{
		RegisterCatalogRoutes(apiV1.Group("/categories"), categoryHandler)

		productGroup := apiV1.Group("/products")
		{
			productGroup.GET("", productHandler.List)
			productGroup.POST("", productHandler.Create)
			productGroup.GET("/code/:code", productHandler.GetByCode)
			productGroup.GET("/:id", productHandler.Get)
			productGroup.PUT("/:id", productHandler.Update)
			productGroup.DELETE("/:id", productHandler.Delete)
			productGroup.POST("/:id/active", productHandler.SetActive)
			productGroup.GET("/:id/movements", movementHandler.ListByProduct)
		}

		movementGroup := apiV1.Group("/movements")
		{
			movementGroup.POST("", movementHandler.Record)
			movementGroup.GET("", movementHandler.List)
			movementGroup.GET("/:id", movementHandler.Get)
		}

		reportsGroup := apiV1.Group("/reports")
		{
			reportsGroup.GET("/stock", reportsHandler.GetStock)
			reportsGroup.GET("/movements-summary", reportsHandler.GetMovementsSummary)
		}
	}

	return router
}

// registerCatalogAudit attaches audit hooks to the catalog services.
// The hooks run inside the mutation's transaction, so audit entries
// commit or roll back with the change itself.
func registerCatalogAudit(audit *postgres.AuditService, categories *category.Service, products *product.Service) {
	categories.Hooks().On(domain.AfterCreate, func(ctx context.Context, c *category.Category) error {
		return audit.LogChange(ctx, "category", c.ID, postgres.AuditActionCreate, map[string]any{"name": c.Name})
	})
	categories.Hooks().On(domain.AfterUpdate, func(ctx context.Context, c *category.Category) error {
		return audit.LogChange(ctx, "category", c.ID, postgres.AuditActionUpdate, map[string]any{"name": c.Name})
	})
	categories.Hooks().On(domain.AfterDelete, func(ctx context.Context, c *category.Category) error {
		return audit.LogChange(ctx, "category", c.ID, postgres.AuditActionDelete, map[string]any{"name": c.Name})
	})

	products.Hooks().On(domain.AfterCreate, func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionCreate, map[string]any{"code": p.Code, "name": p.Name})
	})
	products.Hooks().On(domain.AfterUpdate, func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionUpdate, map[string]any{"code": p.Code, "name": p.Name})
	})
	products.Hooks().On(domain.AfterDelete, func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionDelete, map[string]any{"code": p.Code, "name": p.Name})
	})
}
