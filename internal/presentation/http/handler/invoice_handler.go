package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aydinlift/partsdesk-api/internal/application/render"
	"github.com/aydinlift/partsdesk-api/internal/application/service"
	"github.com/aydinlift/partsdesk-api/internal/config"
	"github.com/aydinlift/partsdesk-api/internal/domain/repository"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/dto/request"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/dto/response"
	"github.com/aydinlift/partsdesk-api/pkg/email"
)

// InvoiceHandler handles invoice-related HTTP requests. Each create request
// builds a fresh cart engine, replays the requested items through it and
// persists the finalized aggregate; totals are never taken from the client.
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	productRepo    repository.ProductRepository
	renderer       render.Renderer
	emailService   *email.EmailService
	invoiceCfg     config.InvoiceConfig
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoiceService *service.InvoiceService,
	productRepo repository.ProductRepository,
	renderer render.Renderer,
	emailService *email.EmailService,
	invoiceCfg config.InvoiceConfig,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		productRepo:    productRepo,
		renderer:       renderer,
		emailService:   emailService,
		invoiceCfg:     invoiceCfg,
	}
}

// Create handles building and saving an invoice in one request
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	engine := service.NewCartEngine(h.productRepo, h.invoiceCfg.TaxRate)

	for _, item := range req.Items {
		if err := engine.AddLineByCode(ctx, item.Code); err != nil {
			response.Error(c, err)
			return
		}

		lines := engine.Lines()
		idx := -1
		for i := range lines {
			if lines[i].ProductCode == item.Code {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		if err := engine.SetLineQuantity(idx, item.Quantity); err != nil {
			response.Error(c, err)
			return
		}
		if item.UnitPrice != nil {
			if err := engine.SetLineUnitPrice(idx, *item.UnitPrice); err != nil {
				response.Error(c, err)
				return
			}
		}
	}

	if req.Discount != nil {
		if _, err := engine.SetDiscount(req.Discount.Mode, req.Discount.Value); err != nil {
			response.Error(c, err)
			return
		}
	}

	engine.SetCustomer(req.Customer.Name, req.Customer.Address, req.Customer.TaxNumber)
	deliveryPerson := req.DeliveryPerson
	if deliveryPerson == "" {
		deliveryPerson = h.invoiceCfg.DeliveryPerson
	}
	engine.SetDeliveryPerson(deliveryPerson)
	engine.SetReceiverPerson(req.ReceiverPerson)

	invoice, err := engine.Finalize()
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.invoiceService.Save(ctx, invoice); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice saved successfully", invoice)
}

// List handles listing invoice headers within a date range
func (h *InvoiceHandler) List(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	invoices, err := h.invoiceService.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved successfully", invoices)
}

// Get handles loading a full invoice by its number
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Delete handles deleting an invoice and its line items
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoiceService.DeleteByNumber(c.Request.Context(), c.Param("number")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *InvoiceHandler) companyInfo() render.CompanyInfo {
	return render.CompanyInfo{
		Name:    h.invoiceCfg.CompanyName,
		Address: h.invoiceCfg.CompanyAddress,
		Phone:   h.invoiceCfg.CompanyPhone,
		TaxInfo: h.invoiceCfg.CompanyTaxInfo,
	}
}

// Document renders a saved invoice as a printable HTML page
func (h *InvoiceHandler) Document(c *gin.Context) {
	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	html, err := h.renderer.RenderHTML(invoice, h.companyInfo())
	if err != nil {
		response.InternalServerError(c, "Could not render invoice document")
		return
	}

	c.Data(200, "text/html; charset=utf-8", []byte(html))
}

// Email renders a saved invoice and mails it to the requested address
func (h *InvoiceHandler) Email(c *gin.Context) {
	var req request.EmailInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if !h.emailService.Configured() {
		response.ErrorWithCode(c, 503, "Email delivery is not configured")
		return
	}

	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	html, err := h.renderer.RenderHTML(invoice, h.companyInfo())
	if err != nil {
		response.InternalServerError(c, "Could not render invoice document")
		return
	}

	if err := h.emailService.SendInvoiceDocument(req.To, invoice.InvoiceNumber, html); err != nil {
		response.InternalServerError(c, "Could not send invoice email")
		return
	}

	response.OK(c, "Invoice emailed successfully", gin.H{
		"invoice_number": invoice.InvoiceNumber,
		"to":             req.To,
	})
}
