package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// FeetPerLayer y LayersPerPallet son las constantes de empaque del producto
// y deben ser > 0.
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	ManufacturerID  string          `json:"manufacturer_id"`
	Price           decimal.Decimal `json:"price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	UnitMeasure     string          `json:"unit_measure,omitempty"`
	FeetPerLayer    float64         `json:"feet_per_layer"`
	LayersPerPallet float64         `json:"layers_per_pallet"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	ManufacturerID  *string          `json:"manufacturer_id,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	TaxRate         *decimal.Decimal `json:"tax_rate,omitempty"`
	UnitMeasure     *string          `json:"unit_measure,omitempty"`
	FeetPerLayer    *float64         `json:"feet_per_layer,omitempty"`
	LayersPerPallet *float64         `json:"layers_per_pallet,omitempty"`
}

// ProductResponse representación de un producto en la API.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	ManufacturerID  string          `json:"manufacturer_id"`
	Price           decimal.Decimal `json:"price"`
	Cost            decimal.Decimal `json:"cost"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	UnitMeasure     string          `json:"unit_measure"`
	FeetPerLayer    float64         `json:"feet_per_layer"`
	LayersPerPallet float64         `json:"layers_per_pallet"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
