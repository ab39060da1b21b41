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

	"github.com/AimaKoraki/Inventory-management-system/internal/application/auth"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/orders"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/report"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/stock"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/usecase"
	infrapdf "github.com/AimaKoraki/Inventory-management-system/internal/infrastructure/pdf"
	"github.com/AimaKoraki/Inventory-management-system/internal/infrastructure/postgres"
	httpRouter "github.com/AimaKoraki/Inventory-management-system/internal/interfaces/http"
	"github.com/AimaKoraki/Inventory-management-system/pkg/config"
	"github.com/AimaKoraki/Inventory-management-system/pkg/logger"
	"github.com/AimaKoraki/Inventory-management-system/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := stock.NewLedgerUseCase(txRunner, productRepo, movementRepo)
	orderUC := orders.NewOrderUseCase(txRunner, orderRepo, supplierRepo, ledgerUC)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo, orderRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	pdfRenderer := infrapdf.NewMarotoReportRenderer()
	reportUC := report.NewReportUseCase(productRepo, supplierRepo, orderRepo, movementRepo, pdfRenderer)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
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
		Title:    "Inventory Management API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		SupplierUC: supplierUC,
		UserUC:     userUC,
		OrderUC:    orderUC,
		LedgerUC:   ledgerUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		Validator:  validator.New(),
		JWTSecret:  cfg.JWT.Secret,
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
