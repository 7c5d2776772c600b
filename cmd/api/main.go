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
	"github.com/shopspring/decimal"

	appanalytics "github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/analytics"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/auth"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/billing"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/usecase"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	infrapdf "github.com/Roquverse/flow-invoice-nexus-sub000/internal/infrastructure/pdf"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Roquverse/flow-invoice-nexus-sub000/internal/interfaces/http"
	"github.com/Roquverse/flow-invoice-nexus-sub000/pkg/config"
	"github.com/Roquverse/flow-invoice-nexus-sub000/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	billingCfg := billing.Config{
		LenientNumbers:  cfg.Billing.LenientNumbers,
		DefaultCurrency: cfg.Billing.DefaultCurrency,
		DefaultTaxRate:  decimal.NewFromInt(int64(cfg.Billing.DefaultTaxRate)),
	}
	allocator := document.NewNumberAllocator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := billing.NewClientUseCase(clientRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, clientRepo, allocator, billingCfg)
	quoteUC := billing.NewQuoteUseCase(txRunner, quoteRepo, clientRepo, allocator, billingCfg)
	receiptUC := billing.NewReceiptUseCase(txRunner, receiptRepo, invoiceRepo, quoteRepo, clientRepo, allocator, billingCfg)
	businessUC := usecase.NewBusinessUseCase(businessRepo, billingCfg.DefaultCurrency, billingCfg.DefaultTaxRate)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(pdfGenerator, invoiceRepo, quoteRepo, receiptRepo, clientRepo, businessRepo)

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
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    clientUC,
		InvoiceUC:   invoiceUC,
		QuoteUC:     quoteUC,
		ReceiptUC:   receiptUC,
		PDFUC:       pdfUC,
		BusinessUC:  businessUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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
