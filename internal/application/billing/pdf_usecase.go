package billing

import (
	"context"
	"fmt"

	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/packing"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

// PDFUseCase genera la cuenta de venta (PDF) de una orden de cliente.
type PDFUseCase struct {
	orderRepo    repository.CustomerOrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
	seller       Seller
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	orderRepo repository.CustomerOrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
	seller Seller,
) *PDFUseCase {
	return &PDFUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
		seller:       seller,
	}
}

// DownloadOrderPDF recupera la orden con sus renglones, resuelve nombre y
// desglose empacado de cada producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden o su cliente no existen.
//   - domain.ErrInvalidInput     si la orden está cancelada.
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if order.Status == entity.CustomerOrderCanceled {
		return nil, "", fmt.Errorf("%w: la orden %s está cancelada", domain.ErrInvalidInput, order.Number)
	}

	customer, err := uc.customerRepo.GetByID(order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	items, err := uc.orderRepo.GetItems(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener renglones: %w", err)
	}

	lines := make([]InvoiceLine, 0, len(items))
	for _, it := range items {
		line := InvoiceLine{
			ProductName: it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			LineTotal:   it.LineTotal,
		}
		// El nombre y el desglose empacado son informativos: si el producto
		// fue borrado después de la venta, la línea sale solo con cantidades.
		if product, err := uc.productRepo.GetByID(it.ProductID); err == nil && product != nil {
			line.ProductName = product.Name
			line.SKU = product.SKU
			spec := packing.Spec{FeetPerLayer: product.FeetPerLayer, LayersPerPallet: product.LayersPerPallet}
			if packed, err := packing.QuantityToPacked(it.Quantity, spec); err == nil {
				line.Pallets = packed.Pallets
				line.Layers = packed.Layers
			}
		}
		lines = append(lines, line)
	}

	pdfBytes, err = uc.generator.GenerateOrderPDF(ctx, order, uc.seller, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden_%s.pdf", order.Number), nil
}
