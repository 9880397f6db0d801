package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suministra/suministra-api/internal/application/analytics"
	"github.com/suministra/suministra-api/internal/application/auth"
	"github.com/suministra/suministra-api/internal/application/billing"
	"github.com/suministra/suministra-api/internal/application/inventory"
	"github.com/suministra/suministra-api/internal/application/orders"
	"github.com/suministra/suministra-api/internal/application/usecase"
	"github.com/suministra/suministra-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProductUC      *usecase.ProductUseCase
	ManufacturerUC *usecase.ManufacturerUseCase
	CustomerUC     *usecase.CustomerUseCase
	AdjustStock    *inventory.AdjustStockUseCase
	PurchaseOrders *orders.PurchaseOrderUseCase
	CustomerOrders *orders.CustomerOrderUseCase
	DashboardUC    *analytics.DashboardUseCase
	OrderPDF       *billing.PDFUseCase
	JWTSecret      string
}

// Router registra las rutas de la API. Las mutaciones de catálogo y la
// recepción de mercancía llevan RBAC; las lecturas solo piden token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	adminOnly := RequireRole(entity.RoleAdmin)
	adminOrBodega := RequireRole(entity.RoleAdmin, entity.RoleBodega)
	adminOrVentas := RequireRole(entity.RoleAdmin, entity.RoleVentas)

	// Products (protegido; mutaciones solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Manufacturers (protegido; mutaciones solo admin)
	manufacturers := protected.Group("/manufacturers")
	manufacturerHandler := NewManufacturerHandler(deps.ManufacturerUC)
	manufacturers.Post("/", adminOnly, manufacturerHandler.Create)
	manufacturers.Get("/", manufacturerHandler.List)
	manufacturers.Get("/:id", manufacturerHandler.GetByID)
	manufacturers.Put("/:id", adminOnly, manufacturerHandler.Update)
	manufacturers.Delete("/:id", adminOnly, manufacturerHandler.Delete)

	// Customers (protegido; ventas puede crear y editar)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", adminOrVentas, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", adminOrVentas, customerHandler.Update)

	// Inventory (protegido; ajustes solo admin o bodega)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStock)
	invGroup.Post("/adjustments", adminOrBodega, inventoryHandler.Adjust)
	invGroup.Get("/stock/:productId", inventoryHandler.GetStock)
	invGroup.Get("/movements/:productId", inventoryHandler.ListMovements)

	// Purchase orders (protegido; recibir solo admin o bodega)
	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseOrders)
	purchases.Post("/", adminOrBodega, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/receive", adminOrBodega, purchaseHandler.Receive)

	// Customer orders (protegido; colocar solo admin o ventas)
	customerOrders := protected.Group("/customer-orders")
	customerOrderHandler := NewCustomerOrderHandler(deps.CustomerOrders, deps.OrderPDF)
	customerOrders.Post("/", adminOrVentas, customerOrderHandler.Create)
	customerOrders.Get("/", customerOrderHandler.List)
	customerOrders.Get("/:id", customerOrderHandler.GetByID)
	customerOrders.Get("/:id/pdf", customerOrderHandler.DownloadPDF)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Get)
}
