// Package http содержит компоненты HTTP сервера трекера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"

	"fittrack/internal/tracker/adapters/http/middleware"
	"fittrack/internal/tracker/adapters/http/users"
	"fittrack/internal/tracker/ports/api"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(app *fiber.App, staticDir string, userService api.UserUseCase, logService api.LogUseCase) {
	handler := users.NewHandler(userService, logService)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestContextMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API трекера.
	apiRoutes := app.Group("/api")
	apiRoutes.Post("/users", handler.CreateUser)
	apiRoutes.Get("/users", handler.ListUsers)
	apiRoutes.Post("/users/:id/exercises", handler.AddExercise)
	apiRoutes.Get("/users/:id/logs", handler.GetLogs)

	// Стартовая страница и статика.
	app.Get("/", func(ctx fiber.Ctx) error {
		return ctx.SendFile(staticDir + "/index.html")
	})
	app.Use("/", static.New(staticDir))

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
