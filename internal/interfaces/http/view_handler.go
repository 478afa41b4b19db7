package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockflow/internal/application/analytics"
	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/application/maintenance"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// View identificador de una pantalla del cliente. Conjunto cerrado.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewProducts  View = "products"
	ViewInventory View = "inventory"
	ViewSuppliers View = "suppliers"
	ViewReports   View = "reports"
	ViewSettings  View = "settings"
)

// Views lista ordenada de pantallas disponibles.
var Views = []View{ViewDashboard, ViewProducts, ViewInventory, ViewSuppliers, ViewReports, ViewSettings}

// ViewDeps casos de uso que alimentan las pantallas. Todas leen estado solo a través de ellos.
type ViewDeps struct {
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	ReportUC         *analytics.ReportUseCase
	DashboardUC      *analytics.DashboardUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	Currency         string
	DefaultThreshold int
}

type viewLoader func(c *fiber.Ctx) (any, error)

// ViewHandler resuelve GET /api/views/:view contra un mapa cerrado de pantallas.
type ViewHandler struct {
	deps    ViewDeps
	loaders map[View]viewLoader
}

// NewViewHandler construye el handler con una entrada por cada View.
func NewViewHandler(deps ViewDeps) *ViewHandler {
	h := &ViewHandler{deps: deps}
	h.loaders = map[View]viewLoader{
		ViewDashboard: h.dashboard,
		ViewProducts:  h.products,
		ViewInventory: h.inventory,
		ViewSuppliers: h.suppliers,
		ViewReports:   h.reports,
		ViewSettings:  h.settings,
	}
	return h
}

// Get godoc
// @Summary      Datos de una pantalla
// @Tags         views
// @Security     Bearer
// @Produce      json
// @Param        view  path  string  true  "dashboard, products, inventory, suppliers, reports o settings"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/views/{view} [get]
func (h *ViewHandler) Get(c *fiber.Ctx) error {
	view := View(c.Params("view"))
	load, ok := h.loaders[view]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_VIEW", Message: "pantalla desconocida: " + string(view)})
	}
	data, err := load(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"view": view, "data": data})
}

func (h *ViewHandler) dashboard(c *fiber.Ctx) (any, error) {
	return h.deps.DashboardUC.GetSummary(c.Context())
}

func (h *ViewHandler) products(c *fiber.Ctx) (any, error) {
	ctx := c.Context()
	products, err := h.deps.ProductUC.List(ctx, c.Query("search"))
	if err != nil {
		return nil, err
	}
	categories, err := h.deps.CategoryUC.List(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := h.deps.SupplierUC.List(ctx)
	if err != nil {
		return nil, err
	}
	return fiber.Map{"products": products, "categories": categories, "suppliers": suppliers}, nil
}

func (h *ViewHandler) inventory(c *fiber.Ctx) (any, error) {
	var filter dto.MovementFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return nil, domain.NewValidationError("query", "parámetros inválidos")
	}
	movements, err := h.deps.ReportUC.ListMovements(c.Context(), filter)
	if err != nil {
		return nil, err
	}
	lowStock, err := h.deps.ReportUC.LowStock(c.Context())
	if err != nil {
		return nil, err
	}
	return fiber.Map{"movements": movements, "low_stock": lowStock}, nil
}

func (h *ViewHandler) suppliers(c *fiber.Ctx) (any, error) {
	suppliers, err := h.deps.SupplierUC.List(c.Context())
	if err != nil {
		return nil, err
	}
	return fiber.Map{"suppliers": suppliers}, nil
}

// reports carga las tres secciones en paralelo; el primer error cancela el resto.
func (h *ViewHandler) reports(c *fiber.Ctx) (any, error) {
	g, ctx := errgroup.WithContext(c.Context())

	var (
		stats         *dto.StatisticsDTO
		topMoved      []dto.TopMovedProductDTO
		replenishment []dto.ReplenishmentSuggestionDTO
	)
	g.Go(func() error {
		var err error
		stats, err = h.deps.ReportUC.Statistics(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		topMoved, err = h.deps.ReportUC.TopMovedProducts(ctx, 0, 0)
		return err
	})
	g.Go(func() error {
		var err error
		replenishment, err = h.deps.Replenishment.GenerateReplenishmentList(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fiber.Map{"statistics": stats, "top_moved": topMoved, "replenishment": replenishment}, nil
}

func (h *ViewHandler) settings(_ *fiber.Ctx) (any, error) {
	return fiber.Map{
		"currency":              h.deps.Currency,
		"default_min_threshold": h.deps.DefaultThreshold,
		"movement_kinds": []entity.MovementKind{
			entity.MovementEntry, entity.MovementExit, entity.MovementAdjustment, entity.MovementInventoryCount,
		},
		"roles":             []string{entity.RoleAdmin, entity.RoleOperator, entity.RoleViewer},
		"exportable_tables": maintenance.ExportTables,
		"views":             Views,
	}, nil
}
