package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockflow/internal/application/maintenance"
)

// MaintenanceHandler expone respaldo, exportación y migraciones (solo admin).
type MaintenanceHandler struct {
	uc *maintenance.MaintenanceUseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.MaintenanceUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Backup godoc
// @Summary      Crear respaldo
// @Description  Archivo tar.zst con todas las tablas tomado en una sola transacción.
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  map[string]string
// @Router       /api/maintenance/backup [post]
func (h *MaintenanceHandler) Backup(c *fiber.Ctx) error {
	path, err := h.uc.Backup(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": path})
}

// Export godoc
// @Summary      Exportar tabla a CSV
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Param        table  path  string  true  "categories, suppliers, products o movements"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/maintenance/export/{table} [post]
func (h *MaintenanceHandler) Export(c *fiber.Ctx) error {
	path, err := h.uc.ExportCSV(c.Context(), c.Params("table"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": path})
}

// Migrate godoc
// @Summary      Aplicar migraciones pendientes
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/maintenance/migrate [post]
func (h *MaintenanceHandler) Migrate(c *fiber.Ctx) error {
	applied, err := h.uc.Migrate(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	if applied == nil {
		applied = []string{}
	}
	return c.JSON(fiber.Map{"applied": applied})
}
