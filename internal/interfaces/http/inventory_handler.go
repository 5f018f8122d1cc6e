package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/inventory"
)

// InventoryHandler ajustes manuales de kardex, conciliación y reposición (protegido).
type InventoryHandler struct {
	movements     *inventory.MovementUseCase
	reconcile     *inventory.ReconcileUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.MovementUseCase,
	reconcile *inventory.ReconcileUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, reconcile: reconcile, replenishment: replenishment}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, kind (Entrada|Salida), quantity, unit_cost (entradas)"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.movements.RegisterAdjustment(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// EditMovement godoc
// @Summary      Corregir un movimiento
// @Description  Revierte el efecto anterior y aplica el nuevo en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.EditMovementRequest  true  "quantity, kind, note"
// @Success      200   {object}  dto.MovementResultResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [put]
func (h *InventoryHandler) EditMovement(c *fiber.Ctx) error {
	var in dto.EditMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.movements.EditMovement(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements últimos movimientos de todos los productos (?limit=).
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.movements.ListRecent(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconciliation godoc
// @Summary      Conciliar stock contra kardex
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/inventory/reconciliation [get]
func (h *InventoryHandler) Reconciliation(c *fiber.Ctx) error {
	out, err := h.reconcile.Reconcile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Sugerencias de reposición
// @Description  Productos en stock bajo o agotado con la cantidad sugerida de pedido.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestion
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.Generate(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
