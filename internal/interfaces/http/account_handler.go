package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sauna-pos/internal/application/account"
	"github.com/jhoicas/sauna-pos/internal/application/dto"
)

// AccountHandler cuentas de clientes y sus líneas (protegido).
type AccountHandler struct {
	uc *account.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *account.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir cuenta
// @Description  El descuento de la promoción (si hay) se aplica al abrir; el total arranca en -descuento.
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "client_id, promotion_id"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cuentas
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        open_only  query  bool    false  "Solo abiertas"
// @Param        client_id  query  string  false  "Filtrar por cliente"
// @Success      200  {object}  dto.AccountListResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	var in dto.AccountListRequest
	if err := bindPage(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get devuelve la cuenta con sus líneas y pagos.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar cuenta
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true   "ID de la cuenta"
// @Param        body  body  dto.CloseAccountRequest  false  "closed_at, payments"
// @Success      200   {object}  dto.AccountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/close [post]
func (h *AccountHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseAccountRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.Close(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel anula una cuenta abierta devolviendo el stock de sus productos.
func (h *AccountHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recompute recalcula los totales desde las líneas persistidas.
func (h *AccountHandler) Recompute(c *fiber.Ctx) error {
	out, err := h.uc.RecomputeTotals(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *AccountHandler) AddService(c *fiber.Ctx) error {
	var in dto.ServiceLineRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddService(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AccountHandler) UpdateService(c *fiber.Ctx) error {
	var in dto.UpdateServiceLineRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateService(c.UserContext(), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *AccountHandler) RemoveService(c *fiber.Ctx) error {
	out, err := h.uc.RemoveService(c.UserContext(), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddProduct godoc
// @Summary      Agregar producto a la cuenta
// @Description  Descuenta stock y registra la Salida en el kardex en la misma transacción.
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la cuenta"
// @Param        body  body  dto.ProductLineRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.AccountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/products [post]
func (h *AccountHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.ProductLineRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddProduct(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *AccountHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductLineRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateProduct(c.UserContext(), c.Params("id"), c.Params("lineId"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *AccountHandler) ReturnProduct(c *fiber.Ctx) error {
	var in dto.ReturnProductRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ReturnProduct(c.UserContext(), c.Params("id"), c.Params("lineId"), GetUserID(c), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *AccountHandler) RemoveProduct(c *fiber.Ctx) error {
	out, err := h.uc.RemoveProduct(c.UserContext(), c.Params("id"), c.Params("lineId"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
