package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/access"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/ledger"
	"github.com/jhoicas/ventas-api/internal/application/reports"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	StoreUC   *usecase.StoreUseCase
	ProductUC *usecase.ProductUseCase
	UserUC    *usecase.UserUseCase
	LedgerUC  *ledger.UseCase
	ReceiptUC *ledger.ReceiptUseCase
	SummaryUC *reports.SummaryUseCase
	Reader    *access.ScopedReader
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Stores (protegido; mutaciones solo admin)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC, deps.Reader)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Post("/", adminOnly, storeHandler.Create)
	stores.Put("/:id", adminOnly, storeHandler.Update)
	stores.Delete("/:id", adminOnly, storeHandler.Delete)

	// Products (protegido, alcance por tienda del caller)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Reader)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales (protegido, libro de ventas)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.LedgerUC, deps.ReceiptUC, deps.Reader)
	sales.Post("/", saleHandler.Record)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Revise)
	sales.Delete("/:id", saleHandler.Delete)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.SummaryUC)
	reportsGroup.Get("/summary", reportHandler.Summary)

	// Users (protegido, solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
