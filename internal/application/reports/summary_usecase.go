// Package reports contiene los casos de uso de reportes de ventas.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

const summaryTopProducts = 5 // productos en el ranking del resumen

// SummaryUseCase genera el resumen de ventas de un período.
//
// Fuente de datos: ReportRepository (consultas read-only). El alcance por
// tienda se resuelve con las mismas reglas que las lecturas de listados.
type SummaryUseCase struct {
	reportRepo repository.ReportRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(reportRepo repository.ReportRepository) *SummaryUseCase {
	return &SummaryUseCase{reportRepo: reportRepo}
}

// GetSummary construye el SalesSummaryDTO del rango [startDate, endDate].
// Un vendedor siempre obtiene su tienda; un admin puede acotar con storeID
// o dejarlo vacío para agregar todas las tiendas.
//
// Dos consultas en paralelo:
//  1. GetSalesMetrics  → SaleCount + UnitsSold + Revenue
//  2. GetTopProducts   → TopProducts (top 5 por ingresos)
func (uc *SummaryUseCase) GetSummary(
	ctx context.Context,
	caller access.Caller,
	storeID string,
	startDate, endDate time.Time,
) (*dto.SalesSummaryDTO, error) {
	scope, err := caller.Scope()
	if err != nil {
		return nil, err
	}
	if scope != entity.AllStores {
		storeID = scope
	}
	if endDate.Before(startDate) {
		startDate, endDate = endDate, startDate
	}

	type metricsResult struct {
		metrics *repository.SalesMetricsResult
		err     error
	}
	type topResult struct {
		top []repository.TopProductResult
		err error
	}

	metricsCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		m, err := uc.reportRepo.GetSalesMetrics(ctx, storeID, startDate, endDate)
		metricsCh <- metricsResult{metrics: m, err: err}
	}()
	go func() {
		t, err := uc.reportRepo.GetTopProducts(ctx, storeID, startDate, endDate, summaryTopProducts)
		topCh <- topResult{top: t, err: err}
	}()

	mr := <-metricsCh
	if mr.err != nil {
		return nil, fmt.Errorf("reports: métricas de ventas: %w", mr.err)
	}
	tr := <-topCh
	if tr.err != nil {
		return nil, fmt.Errorf("reports: top productos: %w", tr.err)
	}

	top := make([]dto.TopProductDTO, 0, len(tr.top))
	for _, t := range tr.top {
		top = append(top, dto.TopProductDTO{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			UnitsSold:   t.UnitsSold,
			Revenue:     t.Revenue,
		})
	}

	return &dto.SalesSummaryDTO{
		StoreID:     storeID,
		StartDate:   startDate,
		EndDate:     endDate,
		SaleCount:   mr.metrics.SaleCount,
		UnitsSold:   mr.metrics.UnitsSold,
		Revenue:     mr.metrics.Revenue,
		TopProducts: top,
	}, nil
}
