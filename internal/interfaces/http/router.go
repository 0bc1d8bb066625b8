package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	Logger     *logger.Logger
	BasePath   string // ej. /api/v1
	JWTSecret  string // vacío = escrituras sin autenticación
}

// Router registra middleware y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	app.Use(AccessLog(deps.Logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group(deps.BasePath)

	// Escrituras protegidas solo si hay secret configurado.
	var writeGuard, hardDeleteGuard []fiber.Handler
	if deps.JWTSecret != "" {
		writeGuard = []fiber.Handler{AuthMiddleware(deps.JWTSecret)}
		requireAdmin := RequireRole(jwt.RoleAdmin)
		hardDeleteGuard = []fiber.Handler{func(c *fiber.Ctx) error {
			if !isHardDelete(c) {
				return c.Next()
			}
			return requireAdmin(c)
		}}
	}

	categories := api.Group("/categories")
	h := NewCategoryHandler(deps.CategoryUC, deps.Logger, deps.BasePath)
	categories.Get("/", h.List)
	categories.Get("/deleted", h.ListDeleted)
	categories.Get("/by-name/:name", h.GetByName)
	categories.Get("/:id", h.GetByID)
	categories.Post("/", with(writeGuard, h.Create)...)
	categories.Put("/:id", with(writeGuard, h.Update)...)
	categories.Delete("/:id", with(append(writeGuard, hardDeleteGuard...), h.Delete)...)
}

func with(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}
