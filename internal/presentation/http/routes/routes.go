package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aydinlift/partsdesk-api/internal/config"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/handler"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Invoice  *handler.InvoiceHandler
	Report   *handler.ReportHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerProductRoutes(v1, h)
		registerCustomerRoutes(v1, h)
		registerInvoiceRoutes(v1, h)
		registerReportRoutes(v1, h)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/suggest", h.Product.Suggest)
		products.GET("/code/:code", h.Product.GetByCode)
		products.GET("/export", h.Product.Export)
		products.POST("/import", h.Product.Import)
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	invoices := v1.Group("/invoices")
	{
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:number", h.Invoice.Get)
		invoices.DELETE("/:number", h.Invoice.Delete)
		invoices.GET("/:number/document", h.Invoice.Document)
		invoices.POST("/:number/email", h.Invoice.Email)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/monthly", h.Report.Monthly)
		reports.GET("/products", h.Report.Products)
		reports.GET("/customers", h.Report.Customers)
		reports.GET("/export", h.Report.Export)
	}
}
