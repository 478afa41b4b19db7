package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockflow/internal/application/analytics"
)

// ReportHandler maneja los reportes y el tablero.
type ReportHandler struct {
	reports   *analytics.ReportUseCase
	dashboard *analytics.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *analytics.ReportUseCase, dashboard *analytics.DashboardUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, dashboard: dashboard}
}

// LowStock godoc
// @Summary      Productos en alerta
// @Description  Productos con cantidad menor o igual a su umbral, de menor a mayor cantidad.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statistics godoc
// @Summary      Estadísticas del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatisticsDTO
// @Router       /api/reports/statistics [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.reports.Statistics(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopMoved godoc
// @Summary      Productos más movidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "por defecto 10"
// @Param        days   query  int  false  "ventana en días, por defecto 30"
// @Success      200  {array}  dto.TopMovedProductDTO
// @Router       /api/reports/top-moved [get]
func (h *ReportHandler) TopMoved(c *fiber.Ctx) error {
	out, err := h.reports.TopMovedProducts(c.Context(), c.QueryInt("limit", 0), c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del tablero
// @Description  Estadísticas, alertas de stock y top 5 de productos movidos en los últimos 30 días.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockPDF godoc
// @Summary      Descargar reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	pdf, err := h.reports.StockReportPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock_%s.pdf"`, time.Now().Format("20060102")))
	return c.Send(pdf)
}
