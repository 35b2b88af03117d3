package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/metrics"
	"github.com/jhoicas/inventory-dashboard/pkg/logger"
)

// HeaderRequestID cabecera de correlación; se genera si el cliente no la envía.
const HeaderRequestID = "X-Request-ID"

// LocalRequestID clave de c.Locals con el request id.
const LocalRequestID = "request_id"

// RequestLogger registra cada petición (método, ruta, estado, latencia, request id)
// y alimenta las métricas HTTP.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(LocalRequestID, rid)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		latency := time.Since(start)
		metrics.ObserveHTTP(c.Method(), c.Route().Path, status, latency)

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		if handlerErr, ok := c.Locals(LocalError).(error); ok {
			ev = ev.Err(handlerErr)
		} else if err != nil {
			ev = ev.Err(err)
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Msg("http request")
		return err
	}
}

// GetRequestID devuelve el request id de la petición.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
