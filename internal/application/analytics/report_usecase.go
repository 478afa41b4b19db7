package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

const (
	// DefaultMovementLimit filas del historial cuando no se indica límite.
	DefaultMovementLimit = 100
	// MaxMovementLimit tope del historial por consulta.
	MaxMovementLimit = 1000

	defaultTopLimit      = 10
	defaultTopWindowDays = 30
	dateLayout           = "2006-01-02"
)

// ReportUseCase consultas de solo lectura sobre el inventario.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	pdf         StockReportPDFGenerator
	currency    string
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se exponen reportes PDF.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	pdf StockReportPDFGenerator,
	currency string,
) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, productRepo: productRepo, pdf: pdf, currency: currency}
}

// LowStock productos con cantidad <= umbral, ascendente por cantidad.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.reportRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.ToProductResponses(list), nil
}

// Statistics indicadores globales del inventario.
func (uc *ReportUseCase) Statistics(ctx context.Context) (*dto.StatisticsDTO, error) {
	stats, err := uc.reportRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	out := toStatisticsDTO(stats, uc.currency)
	return &out, nil
}

// ListMovements historial filtrado, más reciente primero.
// From y To (YYYY-MM-DD) incluyen el día completo.
func (uc *ReportUseCase) ListMovements(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	filter, err := ParseMovementFilter(in, time.Local)
	if err != nil {
		return nil, err
	}
	list, err := uc.reportRepo.ListMovements(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}

// TopMovedProducts productos con más movimientos en los últimos windowDays días.
func (uc *ReportUseCase) TopMovedProducts(ctx context.Context, limit, windowDays int) ([]dto.TopMovedProductDTO, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > MaxMovementLimit {
		limit = MaxMovementLimit
	}
	if windowDays <= 0 {
		windowDays = defaultTopWindowDays
	}
	since := time.Now().AddDate(0, 0, -windowDays)
	list, err := uc.reportRepo.GetTopMovedProducts(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	return toTopMovedDTOs(list), nil
}

// StockReportPDF genera el reporte de inventario (indicadores, alertas y productos) en PDF.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte pdf: generador no configurado")
	}
	stats, err := uc.reportRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	low, err := uc.reportRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListViews(ctx, "")
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateStockReportPDF(ctx, &StockReport{
		GeneratedAt: time.Now(),
		Currency:    uc.currency,
		Statistics:  *stats,
		LowStock:    low,
		Products:    products,
	})
}

// ParseMovementFilter valida y convierte los filtros de la query string.
// product_id debe ser un UUID. Límite: 100 por defecto, máximo 1000.
func ParseMovementFilter(in dto.MovementFilterRequest, loc *time.Location) (repository.MovementFilter, error) {
	f := repository.MovementFilter{
		ProductID: strings.TrimSpace(in.ProductID),
		Actor:     strings.TrimSpace(in.Actor),
		Limit:     in.Limit,
	}
	if f.Limit <= 0 {
		f.Limit = DefaultMovementLimit
	}
	if f.Limit > MaxMovementLimit {
		f.Limit = MaxMovementLimit
	}
	if f.ProductID != "" {
		if _, err := uuid.Parse(f.ProductID); err != nil {
			return f, domain.NewValidationError("product_id", "identificador de producto inválido")
		}
	}
	if k := strings.TrimSpace(in.Kind); k != "" {
		kind := entity.MovementKind(k)
		if !kind.IsUserKind() && !kind.IsReversal() {
			return f, domain.NewValidationError("kind", fmt.Sprintf("tipo de movimiento inválido: %q", k))
		}
		f.Kind = kind
	}
	if in.From != "" {
		from, err := time.ParseInLocation(dateLayout, in.From, loc)
		if err != nil {
			return f, domain.NewValidationError("from", "fecha inválida, formato YYYY-MM-DD")
		}
		f.From = &from
	}
	if in.To != "" {
		to, err := time.ParseInLocation(dateLayout, in.To, loc)
		if err != nil {
			return f, domain.NewValidationError("to", "fecha inválida, formato YYYY-MM-DD")
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, domain.NewValidationError("from", "la fecha inicial es posterior a la final")
	}
	return f, nil
}

func toStatisticsDTO(s *entity.Statistics, currency string) dto.StatisticsDTO {
	return dto.StatisticsDTO{
		TotalProducts:   s.TotalProducts,
		TotalValue:      s.TotalValue.Round(2),
		LowStockCount:   s.LowStockCount,
		OutOfStockCount: s.OutOfStockCount,
		SupplierCount:   s.SupplierCount,
		CategoryCount:   s.CategoryCount,
		Currency:        currency,
	}
}

func toTopMovedDTOs(list []*entity.TopMovedProduct) []dto.TopMovedProductDTO {
	out := make([]dto.TopMovedProductDTO, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TopMovedProductDTO{
			ProductID:     t.ProductID,
			Reference:     t.Reference,
			Name:          t.Name,
			CategoryName:  deref(t.CategoryName),
			MovementCount: t.MovementCount,
			TotalEntries:  t.TotalEntries,
			TotalExits:    t.TotalExits,
			Balance:       t.Balance,
		})
	}
	return out
}

func toMovementResponse(m *entity.MovementView) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductReference: deref(m.ProductReference),
		ProductName:      deref(m.ProductName),
		CategoryName:     deref(m.CategoryName),
		Kind:             string(m.Kind),
		Quantity:         m.Quantity,
		QuantityBefore:   m.QuantityBefore,
		QuantityAfter:    m.QuantityAfter,
		Reason:           m.Reason,
		Actor:            m.Actor,
		DocumentRef:      m.DocumentRef,
		CreatedAt:        m.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
