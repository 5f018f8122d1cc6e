package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindJSON parsea el cuerpo y aplica las etiquetas validate.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation("cuerpo inválido")
	}
	return validateStruct(out)
}

// bindQuery parsea la query string y aplica las etiquetas validate.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Validation("parámetros inválidos")
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
		}
		return domain.Validation("campos inválidos: " + strings.Join(fields, ", "))
	}
	return domain.Validation(err.Error())
}

// writeError traduce el tipo de error del núcleo a status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	msg := domain.MessageOf(err)
	switch domain.KindOf(err) {
	case domain.ErrInvalidInput:
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case domain.ErrNotFound:
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case domain.ErrInsufficientStock:
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case domain.ErrConflict:
		status, code = fiber.StatusConflict, "CONFLICT"
	case domain.ErrUnauthorized, domain.ErrUserNotFound:
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case domain.ErrForbidden:
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	default:
		// el detalle de persistencia queda en el log, no en la respuesta
		requestLogger(c).Error().Err(err).Msg("error interno")
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

type pager interface{ DefaultPage() }

// bindPage como bindQuery pero aplica la paginación por defecto antes de validar.
func bindPage(c *fiber.Ctx, out pager) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Validation("parámetros inválidos")
	}
	out.DefaultPage()
	return validateStruct(out)
}
