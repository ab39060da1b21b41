package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/auth"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/orders"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/report"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/stock"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/usecase"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
	"github.com/AimaKoraki/Inventory-management-system/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	UserUC     *usecase.UserUseCase
	OrderUC    *orders.OrderUseCase
	LedgerUC   *stock.LedgerUseCase
	ReportUC   *report.ReportUseCase
	AuthUC     *auth.AuthUseCase
	Validator  *validator.Validator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Validator)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock (protegido, anidado bajo products + rango global)
	stockHandler := NewStockHandler(deps.LedgerUC, deps.Validator)
	products.Post("/:id/stock/adjustment", stockHandler.Adjust)
	products.Post("/:id/stock/sale", stockHandler.Sale)
	products.Get("/:id/stock/movements", stockHandler.MovementsForProduct)
	products.Get("/:id/stock/level", stockHandler.StockLevel)
	protected.Get("/stock/movements", stockHandler.MovementsByDateRange)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.Validator)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Purchase orders (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Validator)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Put("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Post("/:id/receive", orderHandler.ReceiveFull)
	ordersGroup.Post("/:id/items/:itemId/receive", orderHandler.ReceiveItem)

	// Reports y dashboard (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/movements", reportHandler.Movements)
	reports.Get("/order-summary", reportHandler.OrderSummary)
	protected.Get("/dashboard", reportHandler.Dashboard)

	// Users (solo admin; el cambio de contraseña propio queda fuera del gate)
	userHandler := NewUserHandler(deps.UserUC, deps.Validator)
	protected.Put("/me/password", userHandler.ChangePassword)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
}
