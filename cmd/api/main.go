package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/suministra/suministra-api/internal/application/analytics"
	"github.com/suministra/suministra-api/internal/application/auth"
	"github.com/suministra/suministra-api/internal/application/billing"
	"github.com/suministra/suministra-api/internal/application/inventory"
	"github.com/suministra/suministra-api/internal/application/orders"
	"github.com/suministra/suministra-api/internal/application/usecase"
	inframail "github.com/suministra/suministra-api/internal/infrastructure/mail"
	infrapdf "github.com/suministra/suministra-api/internal/infrastructure/pdf"
	"github.com/suministra/suministra-api/internal/infrastructure/postgres"
	httpRouter "github.com/suministra/suministra-api/internal/interfaces/http"
	"github.com/suministra/suministra-api/pkg/config"
	"github.com/suministra/suministra-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas fuera de transacción)
	productRepo := postgres.NewProductRepository(pool)
	manufacturerRepo := postgres.NewManufacturerRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	purchaseOrderRepo := postgres.NewPurchaseOrderRepository(pool)
	customerOrderRepo := postgres.NewCustomerOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones transaccionales (deshabilitadas si SMTP_HOST está vacío)
	mailer := inframail.NewGomailSender(inframail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	// Casos de uso
	authUC := auth.NewUseCase(employeeRepo, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})
	productUC := usecase.NewProductUseCase(productRepo, manufacturerRepo)
	manufacturerUC := usecase.NewManufacturerUseCase(manufacturerRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo, stockRepo, movementRepo)
	purchaseOrderUC := orders.NewPurchaseOrderUseCase(txRunner, purchaseOrderRepo, manufacturerRepo, productRepo, mailer)
	customerOrderUC := orders.NewCustomerOrderUseCase(txRunner, customerOrderRepo, customerRepo, productRepo, mailer)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// PDF: cuenta de venta de las órdenes de cliente
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderPDFUC := billing.NewPDFUseCase(customerOrderRepo, customerRepo, productRepo, pdfGenerator, billing.Seller{
		Name:    cfg.Seller.Name,
		TaxID:   cfg.Seller.TaxID,
		Address: cfg.Seller.Address,
		Phone:   cfg.Seller.Phone,
		Email:   cfg.Seller.Email,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Suministra API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		ManufacturerUC: manufacturerUC,
		CustomerUC:     customerUC,
		AdjustStock:    adjustStockUC,
		PurchaseOrders: purchaseOrderUC,
		CustomerOrders: customerOrderUC,
		DashboardUC:    dashboardUC,
		OrderPDF:       orderPDFUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
