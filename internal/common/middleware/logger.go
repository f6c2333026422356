package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger пишет по строке на запрос: статус, время ответа, метод и путь.
// Ответы 5xx идут уровнем error, 4xx уровнем warn.
func Logger(logger *log.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		kv := []any{
			"status", status,
			"latency", time.Since(start).Round(time.Microsecond),
			"method", c.Method(),
			"path", c.Path(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", append(kv, "err", err)...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", kv...)
		default:
			logger.Info("request", kv...)
		}
		return err
	}
}
