package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/racunko-api/internal/application/auth"
	"github.com/jhoicas/racunko-api/internal/application/billing"
	"github.com/jhoicas/racunko-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CustomerUC *billing.CustomerUseCase
	Documents  []*billing.DocumentUseCase // uno por tipo
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify", authHandler.Verify)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC.Secret()))

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/export", customerHandler.Export)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Documentos: mismas rutas para cada tipo
	for _, uc := range deps.Documents {
		kind := uc.Kind()
		h := NewDocumentHandler(uc, log.WithComponent(kind.Code))
		g := protected.Group("/" + kind.Path)
		g.Get("/", h.List)
		g.Post("/", h.Create)
		g.Get("/export", h.Export)
		g.Get("/:id", h.GetByID)
		g.Put("/:id", h.Update)
		g.Delete("/:id", h.Delete)
		g.Put("/:id/status", h.UpdateStatus)
		g.Get("/:id/pdf", h.PDF)
		g.Post("/:id/send", h.Send)
		g.Get("/:id/eslog", h.ESLOG) // 400 para tipos sin e-SLOG
	}
}
