package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/suministra/suministra-api/internal/application/billing"
	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/application/orders"
	"github.com/suministra/suministra-api/internal/domain"
)

// CustomerOrderHandler maneja órdenes de la tienda y su cuenta de venta en PDF (protegido).
type CustomerOrderHandler struct {
	uc    *orders.CustomerOrderUseCase
	pdfUC *billing.PDFUseCase
}

// NewCustomerOrderHandler construye el handler.
func NewCustomerOrderHandler(uc *orders.CustomerOrderUseCase, pdfUC *billing.PDFUseCase) *CustomerOrderHandler {
	return &CustomerOrderHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Colocar orden de cliente (descuenta inventario)
// @Tags         customer-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerOrderRequest  true  "Orden de cliente"
// @Success      201   {object}  dto.CustomerOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customer-orders [post]
func (h *CustomerOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Place(c.UserContext(), GetEmployeeID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyOrder):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la orden necesita al menos un renglón"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "renglones inválidos: producto y cantidad > 0 son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente o producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de cliente con renglones
// @Tags         customer-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.CustomerOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customer-orders/{id} [get]
func (h *CustomerOrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de cliente
// @Tags         customer-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PLACED | BACKORDER | CANCELED"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.CustomerOrderResponse
// @Router       /api/customer-orders [get]
func (h *CustomerOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar la cuenta de venta en PDF
// @Tags         customer-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customer-orders/{id}/pdf [get]
func (h *CustomerOrderHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadOrderPDF(c.UserContext(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
