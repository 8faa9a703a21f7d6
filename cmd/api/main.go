package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/aydinlift/partsdesk-api/internal/application/render"
	"github.com/aydinlift/partsdesk-api/internal/application/service"
	"github.com/aydinlift/partsdesk-api/internal/config"
	"github.com/aydinlift/partsdesk-api/internal/infrastructure/database"
	"github.com/aydinlift/partsdesk-api/internal/infrastructure/repository"
	"github.com/aydinlift/partsdesk-api/internal/logger"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/handler"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/routes"
	"github.com/aydinlift/partsdesk-api/pkg/email"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Setup(cfg.App.Env, cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := database.SeedSampleProducts(db); err != nil {
		log.Warn().Err(err).Msg("failed to seed sample products")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUser,
		SMTPPassword: cfg.Email.SMTPPass,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromAddress,
	})

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	reportService := service.NewReportService(reportRepo)
	exportService := service.NewExportService(catalogService, reportService)

	renderer := render.NewHTMLRenderer()

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:  handler.NewProductHandler(catalogService, exportService),
		Customer: handler.NewCustomerHandler(customerService),
		Invoice:  handler.NewInvoiceHandler(invoiceService, productRepo, renderer, emailService, cfg.Invoice),
		Report:   handler.NewReportHandler(reportService, exportService),
	}

	// Setup routes and start the server
	router := routes.Setup(handlers, cfg)

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
