package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aydinlift/partsdesk-api/internal/application/service"
	"github.com/aydinlift/partsdesk-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
	exportService *service.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, exportService *service.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// Summary handles the headline figures for a date range
func (h *ReportHandler) Summary(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.reportService.Summary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", stats)
}

// Daily handles the per-day sales breakdown
func (h *ReportHandler) Daily(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	daily, err := h.reportService.DailySales(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", daily)
}

// Monthly handles the per-month breakdown for one year
func (h *ReportHandler) Monthly(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(c, "Invalid year")
		return
	}

	monthly, err := h.reportService.MonthlySales(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", monthly)
}

// Products handles the per-product sales analysis
func (h *ReportHandler) Products(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	products, err := h.reportService.ProductSales(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", products)
}

// Customers handles the per-customer sales analysis
func (h *ReportHandler) Customers(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	customers, err := h.reportService.CustomerSales(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", customers)
}

// Export streams the full report for a range as an xlsx workbook
func (h *ReportHandler) Export(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	buf, err := h.exportService.ExportSalesReport(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("satis_raporu_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
