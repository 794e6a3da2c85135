package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stocktrack-api/internal/application/analytics"
)

// AnalyticsHandler expone el dashboard y las métricas agregadas de inventario.
type AnalyticsHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Dashboard de inventario
// @Description  Totales, valor del inventario, últimos movimientos y
// @Description  productos en estado crítico.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Analytics godoc
// @Summary      Métricas agregadas de inventario
// @Description  Distribución por categoría, valor por categoría, tendencia de
// @Description  movimientos de la ventana, top por valor y stock bajo.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana de la tendencia en días"  default(30)
// @Success      200   {object}  dto.AnalyticsResponse
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) Analytics(c *fiber.Ctx) error {
	days := c.QueryInt("days", analytics.DefaultTrendWindowDays)
	if days <= 0 {
		days = analytics.DefaultTrendWindowDays
	}
	out, err := h.uc.GetAnalytics(c.Context(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
