package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/expense"
	"github.com/jhoicas/sauna-pos/internal/domain"
)

const dayLayout = "2006-01-02"

// ExpenseHandler egresos con su detalle (protegido).
type ExpenseHandler struct {
	uc *expense.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expense.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar egreso
// @Description  El total debe coincidir con la suma del detalle. Cabecera y detalle se guardan juntos o nada.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "date, total_amount, details"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateComplete(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Egresos por rango de fechas
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (2006-01-02, inclusive)"
// @Param        to    query  string  true  "Hasta (2006-01-02, inclusive)"
// @Success      200  {object}  dto.ExpenseListResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var in dto.ExpenseListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	from, err := parseDay(in.From)
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseDay(in.To)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByDateRange(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update reemplaza cabecera y detalle conservando el id.
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.uc.DeleteComplete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if !deleted {
		return writeError(c, domain.NotFound("egreso no encontrado"))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseDay interpreta YYYY-MM-DD en hora local.
func parseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, domain.Validation("fecha inválida, formato YYYY-MM-DD: " + s)
	}
	return d, nil
}
