package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentWindowDays ventana de historial de salidas usada para priorizar.
const ReplenishmentWindowDays = 90

// ReplenishmentUseCase genera la lista de reposición a partir de los productos en alerta.
// Combina el stock actual con el historial de salidas para priorizar los productos críticos.
type ReplenishmentUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(reportRepo repository.ReportRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{reportRepo: reportRepo}
}

// IdealStock cantidad objetivo tras reponer: ⌈umbral × 1.5⌉.
func IdealStock(threshold int) int {
	return (threshold*3 + 1) / 2
}

// GenerateReplenishmentList devuelve los productos con stock <= umbral con la cantidad
// sugerida de pedido y un ranking de prioridad basado en volumen de salidas y margen.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Productos en alerta
	items, err := uc.reportRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Salidas de los últimos 90 días; sin historial no impide sugerir
	since := time.Now().AddDate(0, 0, -ReplenishmentWindowDays)
	moved, _ := uc.reportRepo.GetTopMovedProducts(ctx, since, 1000)
	exitsByID := make(map[string]int, len(moved))
	for _, m := range moved {
		exitsByID[m.ProductID] = m.TotalExits
	}

	// 3. Construir los DTOs enriquecidos
	hundred := decimal.NewFromInt(100)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, item := range items {
		ideal := IdealStock(item.MinThreshold)
		qty := ideal - item.Quantity
		if qty < 0 {
			qty = 0
		}

		var marginPct decimal.Decimal
		if item.SalePrice.GreaterThan(decimal.Zero) {
			marginPct = item.SalePrice.Sub(item.PurchasePrice).Div(item.SalePrice).Mul(hundred).Round(2)
		}
		supplier := ""
		if item.SupplierName != nil {
			supplier = *item.SupplierName
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          item.ID,
			Reference:          item.Reference,
			ProductName:        item.Name,
			SupplierName:       supplier,
			CurrentStock:       item.Quantity,
			MinThreshold:       item.MinThreshold,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           item.PurchasePrice,
			EstimatedOrderCost: item.PurchasePrice.Mul(decimal.NewFromInt(int64(qty))),
			UnitMarginPct:      marginPct,
			ExitsLast90Days:    exitsByID[item.ID],
		})
	}

	// 4. Ordenar: primero agotados, luego más salidas, luego mayor margen,
	//    finalmente mayor déficit bajo el umbral.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		if a.ExitsLast90Days != b.ExitsLast90Days {
			return a.ExitsLast90Days > b.ExitsLast90Days
		}
		if !a.UnitMarginPct.Equal(b.UnitMarginPct) {
			return a.UnitMarginPct.GreaterThan(b.UnitMarginPct)
		}
		return a.MinThreshold-a.CurrentStock > b.MinThreshold-b.CurrentStock
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
