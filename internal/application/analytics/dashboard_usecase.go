package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

const (
	defaultSalesTopN  = 20
	maxSalesTopN      = 200
	defaultLowStockFt = 0 // por defecto solo backorder (cantidad < 0)
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase arma el tablero del negocio: valorización de inventario,
// productos en backorder o bajo umbral, y resumen de ventas del período.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetDashboard consulta valorización, bajo stock y ventas en paralelo
// (consultas independientes) y agrega el valor total de inventario.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, from, to time.Time, lowStockThreshold float64, topN int) (*dto.DashboardResponse, error) {
	if topN <= 0 {
		topN = defaultSalesTopN
	}
	if topN > maxSalesTopN {
		topN = maxSalesTopN
	}
	if lowStockThreshold < 0 {
		lowStockThreshold = defaultLowStockFt
	}

	type valuationResult struct {
		rows []repository.StockValuationRow
		err  error
	}
	type lowStockResult struct {
		rows []repository.LowStockRow
		err  error
	}
	type salesResult struct {
		rows []repository.SalesSummaryRow
		err  error
	}

	valChan := make(chan valuationResult, 1)
	lowChan := make(chan lowStockResult, 1)
	salesChan := make(chan salesResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.StockValuation(ctx)
		valChan <- valuationResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.LowStock(ctx, lowStockThreshold)
		lowChan <- lowStockResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.SalesSummary(ctx, from, to, topN)
		salesChan <- salesResult{rows, err}
	}()

	valRes := <-valChan
	lowRes := <-lowChan
	salesRes := <-salesChan

	if valRes.err != nil {
		return nil, fmt.Errorf("analytics: valorización: %w", valRes.err)
	}
	if lowRes.err != nil {
		return nil, fmt.Errorf("analytics: bajo stock: %w", lowRes.err)
	}
	if salesRes.err != nil {
		return nil, fmt.Errorf("analytics: ventas: %w", salesRes.err)
	}

	resp := &dto.DashboardResponse{
		InventoryValue: decimal.Zero,
		Valuation:      make([]dto.StockValuationDTO, 0, len(valRes.rows)),
		LowStock:       make([]dto.LowStockDTO, 0, len(lowRes.rows)),
		Sales:          make([]dto.SalesSummaryDTO, 0, len(salesRes.rows)),
	}

	for _, r := range valRes.rows {
		resp.InventoryValue = resp.InventoryValue.Add(r.Value)
		resp.Valuation = append(resp.Valuation, dto.StockValuationDTO{
			ProductID: r.ProductID,
			SKU:       r.SKU,
			Name:      r.Name,
			Quantity:  r.Quantity,
			Pallets:   r.Pallets,
			Layers:    r.Layers,
			UnitCost:  r.UnitCost,
			Value:     r.Value,
		})
	}
	for _, r := range lowRes.rows {
		resp.LowStock = append(resp.LowStock, dto.LowStockDTO{
			ProductID: r.ProductID,
			SKU:       r.SKU,
			Name:      r.Name,
			Quantity:  r.Quantity,
			Pallets:   r.Pallets,
			Layers:    r.Layers,
			Backorder: r.Backorder,
		})
	}
	for _, r := range salesRes.rows {
		resp.Sales = append(resp.Sales, dto.SalesSummaryDTO{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			Name:         r.Name,
			UnitsSold:    r.UnitsSold,
			GrossRevenue: r.GrossRevenue,
			GrossProfit:  r.GrossProfit,
			MarginPct:    marginPct(r.GrossRevenue, r.GrossProfit),
		})
	}
	return resp, nil
}

// marginPct margen bruto como porcentaje del ingreso; cero si no hubo ingreso.
func marginPct(revenue, profit decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Mul(hundred).DivRound(revenue, 2)
}
