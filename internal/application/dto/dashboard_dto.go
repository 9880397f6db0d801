package dto

import "github.com/shopspring/decimal"

// StockValuationDTO valor de inventario de un producto.
type StockValuationDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  float64         `json:"quantity"`
	Pallets   int64           `json:"pallets"`
	Layers    float64         `json:"layers"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Value     decimal.Decimal `json:"value"`
}

// LowStockDTO producto en backorder o bajo el umbral de alerta.
type LowStockDTO struct {
	ProductID string  `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Pallets   int64   `json:"pallets"`
	Layers    float64 `json:"layers"`
	Backorder bool    `json:"backorder"`
}

// SalesSummaryDTO ventas de un producto en el período consultado.
type SalesSummaryDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	UnitsSold    float64         `json:"units_sold"`
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}

// DashboardResponse agregados para el tablero de analítica.
type DashboardResponse struct {
	InventoryValue decimal.Decimal     `json:"inventory_value"`
	Valuation      []StockValuationDTO `json:"valuation"`
	LowStock       []LowStockDTO       `json:"low_stock"`
	Sales          []SalesSummaryDTO   `json:"sales"`
}
