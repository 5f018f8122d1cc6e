package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sauna-pos/internal/application/cash"
	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/domain"
)

// CashHandler cuadre de caja y sesiones (protegido).
type CashHandler struct {
	uc *cash.CashUseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *cash.CashUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// DaySummary godoc
// @Summary      Cuadre de caja del día
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "Día (2006-01-02)"
// @Success      200  {object}  dto.DaySummaryResponse
// @Router       /api/cash/summary/{date} [get]
func (h *CashHandler) DaySummary(c *fiber.Ctx) error {
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Day(c.UserContext(), day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DaySummaryPDF godoc
// @Summary      Cuadre de caja del día en PDF
// @Tags         cash
// @Security     Bearer
// @Produce      application/pdf
// @Param        date  path  string  true  "Día (2006-01-02)"
// @Success      200  {file}  binary
// @Router       /api/cash/summary/{date}/pdf [get]
func (h *CashHandler) DaySummaryPDF(c *fiber.Ctx) error {
	date := c.Params("date")
	day, err := parseDay(date)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.uc.DayPDF(c.UserContext(), day)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cuadre-`+date+`.pdf"`)
	return c.Send(pdf)
}

// MonthSummary suma los cuadres diarios de un mes.
func (h *CashHandler) MonthSummary(c *fiber.Ctx) error {
	year, err1 := strconv.Atoi(c.Params("year"))
	month, err2 := strconv.Atoi(c.Params("month"))
	if err1 != nil || err2 != nil {
		return writeError(c, domain.Validation("año y mes deben ser numéricos"))
	}
	out, err := h.uc.Month(c.UserContext(), year, month)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// OpenSession godoc
// @Summary      Abrir caja
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "business_day, opening_float"
// @Success      201   {object}  dto.CashSessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash/sessions [post]
func (h *CashHandler) OpenSession(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	day, err := parseDay(in.BusinessDay)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.OpenSession(c.UserContext(), GetUserID(c), day, in.OpeningFloat)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CloseSession arqueo: compara el efectivo contado con el esperado.
func (h *CashHandler) CloseSession(c *fiber.Ctx) error {
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CloseSessionRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CloseSession(c.UserContext(), GetUserID(c), day, in.CountedCash)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *CashHandler) GetSession(c *fiber.Ctx) error {
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetSession(c.UserContext(), day)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
