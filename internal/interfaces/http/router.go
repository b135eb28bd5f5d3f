package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	MovementUC *inventory.MovementUseCase
	HistoryUC  *usecase.HistoryUseCase
	FAQUC      *usecase.FAQUseCase
	UserUC     *usecase.UserUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// FAQs: lectura pública, mutaciones solo admin
	faqHandler := NewFAQHandler(deps.FAQUC)
	api.Get("/faqs", faqHandler.List)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	canMutateCatalog := RequireRole(entity.RoleAdmin, entity.RoleSeller)

	faqs := protected.Group("/faqs", adminOnly)
	faqs.Post("/", faqHandler.Create)
	faqs.Put("/:id", faqHandler.Update)
	faqs.Delete("/:id", faqHandler.Delete)

	// Products (protegido; mutaciones admin/seller)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementUC)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", canMutateCatalog, productHandler.Create)
	products.Put("/:id", canMutateCatalog, productHandler.Update)
	products.Delete("/:id", canMutateCatalog, productHandler.Delete)

	// Movimientos de stock (protegido; admin/seller)
	invGroup := protected.Group("/inventory", canMutateCatalog)
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)
	invGroup.Delete("/movements/:id", inventoryHandler.ReverseMovement)

	// Historial (protegido; listado global y reporte solo admin)
	histGroup := protected.Group("/history")
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	histGroup.Get("/product/:productID", historyHandler.ListByProduct)
	histGroup.Get("/report", adminOnly, historyHandler.Report)
	histGroup.Get("/", adminOnly, historyHandler.List)

	// Users (protegido; listado solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)
	users.Put("/:id/role", adminOnly, userHandler.UpdateRole)
}
