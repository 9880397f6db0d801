package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/suministra/suministra-api/internal/domain/entity"
)

// Seller datos del negocio que emite la cuenta de venta. Vienen de
// configuración; el sistema opera para un solo negocio.
type Seller struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
	Email   string
}

// InvoiceLine renglón ya resuelto para el PDF: nombre de producto y
// desglose empacado junto a los valores monetarios congelados en la orden.
type InvoiceLine struct {
	ProductName string
	SKU         string
	Quantity    float64
	Pallets     int64
	Layers      float64
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	LineTotal   decimal.Decimal
}

// InvoicePDFGenerator puerto de generación del PDF de una orden de venta.
type InvoicePDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.CustomerOrder, seller Seller, customer *entity.Customer, lines []InvoiceLine) ([]byte, error)
}
