// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"fittrack/pkg/logger"
)

// RequestContextKey - ключ Locals, под которым хранится контекст
// запроса с идентификатором.
const RequestContextKey = "requestContext"

// HeaderRequestID - заголовок входящего идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestContextMiddleware снабжает каждый запрос контекстом с
// request_id: берется из заголовка либо генерируется.
func NewRequestContextMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		reqCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Locals(RequestContextKey, reqCtx)
		return ctx.Next()
	}
}
