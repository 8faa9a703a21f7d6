package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SummaryStats aggregates headline figures for a date range
type SummaryStats struct {
	TotalInvoices      int64           `json:"total_invoices"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	AverageInvoice     decimal.Decimal `json:"average_invoice"`
	TopProduct         string          `json:"top_product"`
	TopProductQuantity int64           `json:"top_product_quantity"`
}

// DailySales is revenue and invoice count for one calendar day
type DailySales struct {
	Date         string          `json:"date"`
	InvoiceCount int64           `json:"invoice_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// MonthlySales is revenue and invoice count for one month of a year
type MonthlySales struct {
	Month        int             `json:"month"`
	InvoiceCount int64           `json:"invoice_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// ProductSales aggregates sold quantity and revenue per product snapshot
type ProductSales struct {
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
	AveragePrice decimal.Decimal `json:"average_price"`
	InvoiceCount int64           `json:"invoice_count"`
}

// CustomerSales aggregates revenue per customer name snapshot
type CustomerSales struct {
	CustomerName   string          `json:"customer_name"`
	InvoiceCount   int64           `json:"invoice_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	AverageInvoice decimal.Decimal `json:"average_invoice"`
}

// ReportRepository exposes read-only aggregate queries over invoices and
// invoice_items. These are derived views for the reporting surface, not part
// of the invoice invariants. All ranges are half-open [start, end).
type ReportRepository interface {
	Summary(ctx context.Context, start, end time.Time) (*SummaryStats, error)
	DailySales(ctx context.Context, start, end time.Time) ([]DailySales, error)
	MonthlySales(ctx context.Context, year int) ([]MonthlySales, error)
	ProductSales(ctx context.Context, start, end time.Time) ([]ProductSales, error)
	CustomerSales(ctx context.Context, start, end time.Time) ([]CustomerSales, error)
}
