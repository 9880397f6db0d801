package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockValuationRow valor de inventario por producto (cantidad * costo promedio).
type StockValuationRow struct {
	ProductID string
	SKU       string
	Name      string
	Quantity  float64
	Pallets   int64
	Layers    float64
	UnitCost  decimal.Decimal
	Value     decimal.Decimal
}

// LowStockRow producto por debajo de cero o de su punto de reorden.
type LowStockRow struct {
	ProductID string
	SKU       string
	Name      string
	Quantity  float64
	Pallets   int64
	Layers    float64
	Backorder bool // quantity < 0
}

// SalesSummaryRow ventas agregadas por producto en un período.
type SalesSummaryRow struct {
	ProductID    string
	SKU          string
	Name         string
	UnitsSold    float64 // pies² vendidos
	GrossRevenue decimal.Decimal
	GrossProfit  decimal.Decimal
}

// AnalyticsRepository consultas agregadas para el dashboard.
type AnalyticsRepository interface {
	StockValuation(ctx context.Context) ([]StockValuationRow, error)
	LowStock(ctx context.Context, threshold float64) ([]LowStockRow, error)
	SalesSummary(ctx context.Context, from, to time.Time, limit int) ([]SalesSummaryRow, error)
}
