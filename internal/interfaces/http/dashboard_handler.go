package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/suministra/suministra-api/internal/application/analytics"
	"github.com/suministra/suministra-api/internal/application/dto"
)

// DashboardHandler expone los agregados del tablero (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Tablero: valorización, bajo stock y ventas del período
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from       query  string   false  "Fecha inicio YYYY-MM-DD (default: hace 30 días)"
// @Param        to         query  string   false  "Fecha fin YYYY-MM-DD (default: hoy)"
// @Param        threshold  query  number   false  "Umbral de bajo stock en pies²"  default(0)
// @Param        top        query  int      false  "Top N productos por ventas"     default(20)
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
		}
		// Inclusivo: el período cierra al final del día indicado
		to = t.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser anterior a to"})
	}

	threshold := c.QueryFloat("threshold", 0)
	topN := c.QueryInt("top", 20)

	out, err := h.uc.GetDashboard(c.UserContext(), from, to, threshold, topN)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
