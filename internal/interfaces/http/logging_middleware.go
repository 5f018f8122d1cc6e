package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/sauna-pos/pkg/logger"
)

const localLogger = "logger"

// RequestLogger asigna un request id, deja un logger hijo en Locals y registra cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = logger.OrNop(log)
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, reqID)

		zl := log.With().Str("request_id", reqID).Logger()
		c.Locals(localLogger, logger.FromZerolog(zl))

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta antes de leer el status
			_ = c.App().Config().ErrorHandler(c, err)
		}
		status := c.Response().StatusCode()
		ev := zl.Info()
		if status >= fiber.StatusInternalServerError {
			ev = zl.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = zl.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

// requestLogger devuelve el logger de la petición o uno nulo.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	l, _ := c.Locals(localLogger).(*logger.Logger)
	return logger.OrNop(l)
}
