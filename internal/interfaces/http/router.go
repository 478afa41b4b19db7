package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockflow/internal/application/analytics"
	"github.com/jhoicas/stockflow/internal/application/auth"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/application/maintenance"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	ProductUC        *usecase.ProductUseCase
	Ledger           *inventory.LedgerUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	ReportUC         *analytics.ReportUseCase
	DashboardUC      *analytics.DashboardUseCase
	MaintenanceUC    *maintenance.MaintenanceUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
	Currency         string
	DefaultThreshold int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	writers := RequireRole(entity.RoleAdmin, entity.RoleOperator)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", writers, categoryHandler.Create)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", writers, supplierHandler.Create)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writers, productHandler.Create)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Libro de movimientos
	movements := protected.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.ReportUC, deps.Replenishment)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Get("/:id", inventoryHandler.GetMovement)
	movements.Post("/", writers, inventoryHandler.RegisterMovement)
	movements.Delete("/:id", adminOnly, inventoryHandler.DeleteMovement)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.DashboardUC)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/statistics", reportHandler.Statistics)
	reports.Get("/top-moved", reportHandler.TopMoved)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/stock.pdf", reportHandler.StockPDF)
	reports.Get("/replenishment", inventoryHandler.GetReplenishmentList)

	if deps.MaintenanceUC != nil {
		maint := protected.Group("/maintenance", adminOnly)
		maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
		maint.Post("/backup", maintenanceHandler.Backup)
		maint.Post("/export/:table", maintenanceHandler.Export)
		maint.Post("/migrate", maintenanceHandler.Migrate)
	}

	viewHandler := NewViewHandler(ViewDeps{
		ProductUC:        deps.ProductUC,
		CategoryUC:       deps.CategoryUC,
		SupplierUC:       deps.SupplierUC,
		ReportUC:         deps.ReportUC,
		DashboardUC:      deps.DashboardUC,
		Replenishment:    deps.Replenishment,
		Currency:         deps.Currency,
		DefaultThreshold: deps.DefaultThreshold,
	})
	protected.Get("/views/:view", viewHandler.Get)
}
