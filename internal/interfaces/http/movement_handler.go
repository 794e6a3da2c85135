package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stocktrack-api/internal/application/dto"
	"github.com/tu-usuario/stocktrack-api/internal/application/ledger"
	"github.com/tu-usuario/stocktrack-api/internal/domain"
	"github.com/tu-usuario/stocktrack-api/internal/infrastructure/metrics"
)

// MovementHandler maneja el registro y consulta de movimientos de stock.
type MovementHandler struct {
	uc *ledger.RegisterMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.RegisterMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica una entrada o salida sobre el producto de forma atómica
// @Description  y agrega la transición al historial inmutable.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterMovement(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.InsufficientStockTotal.Inc()
		}
		return respondError(c, err)
	}
	metrics.MovementsTotal.WithLabelValues(out.Type).Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id     path   int  true   "ID del producto"
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {array}   dto.MovementResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	limit := c.QueryInt("limit", 50)
	out, err := h.uc.ListByProduct(c.Context(), id, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
