// Package analytics contiene los casos de uso de reportes del inventario y el resumen del tablero.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

const (
	dashboardTopProducts = 5  // productos en el widget "más movidos"
	dashboardWindowDays  = 30 // ventana del widget
)

// DashboardUseCase genera el resumen del tablero: indicadores, alertas y productos más movidos.
//
// Fuente de datos: ReportRepository (consultas read-only).
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	currency   string
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository, currency string) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, currency: currency}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. GetStatistics              → indicadores
//  2. ListLowStock               → alertas de stock
//  3. GetTopMovedProducts(30d)   → top 5
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -dashboardWindowDays)

	type statsResult struct {
		stats *entity.Statistics
		err   error
	}
	type lowResult struct {
		items []*entity.ProductView
		err   error
	}
	type topResult struct {
		items []*entity.TopMovedProduct
		err   error
	}

	statsCh := make(chan statsResult, 1)
	lowCh := make(chan lowResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		s, err := uc.reportRepo.GetStatistics(ctx)
		statsCh <- statsResult{s, err}
	}()
	go func() {
		items, err := uc.reportRepo.ListLowStock(ctx)
		lowCh <- lowResult{items, err}
	}()
	go func() {
		items, err := uc.reportRepo.GetTopMovedProducts(ctx, since, dashboardTopProducts)
		topCh <- topResult{items, err}
	}()

	stats := <-statsCh
	low := <-lowCh
	top := <-topCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: indicadores: %w", stats.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: alertas de stock: %w", low.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: productos más movidos: %w", top.err)
	}

	return &dto.DashboardSummaryDTO{
		Statistics:  toStatisticsDTO(stats.stats, uc.currency),
		LowStock:    usecase.ToProductResponses(low.items),
		TopMoved:    toTopMovedDTOs(top.items),
		WindowDays:  dashboardWindowDays,
		GeneratedAt: now,
	}, nil
}
