package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domainRepo "github.com/aydinlift/partsdesk-api/internal/domain/repository"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Summary(ctx context.Context, start, end time.Time) (*domainRepo.SummaryStats, error) {
	var totals struct {
		TotalInvoices int64
		TotalRevenue  decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as total_invoices,
			COALESCE(SUM(total_amount), 0) as total_revenue
		FROM invoices
		WHERE invoice_date >= ? AND invoice_date < ?
	`, start, end).Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	stats := &domainRepo.SummaryStats{
		TotalInvoices: totals.TotalInvoices,
		TotalRevenue:  totals.TotalRevenue,
	}
	if totals.TotalInvoices > 0 {
		stats.AverageInvoice = totals.TotalRevenue.
			Div(decimal.NewFromInt(totals.TotalInvoices)).Round(2)
	}

	var top struct {
		ProductName string
		Quantity    int64
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			ii.product_name as product_name,
			COALESCE(SUM(ii.quantity), 0) as quantity
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.invoice_date >= ? AND i.invoice_date < ?
		GROUP BY ii.product_name
		ORDER BY quantity DESC
		LIMIT 1
	`, start, end).Scan(&top).Error
	if err != nil {
		return nil, err
	}
	stats.TopProduct = top.ProductName
	stats.TopProductQuantity = top.Quantity

	return stats, nil
}

func (r *reportRepository) DailySales(ctx context.Context, start, end time.Time) ([]domainRepo.DailySales, error) {
	var results []domainRepo.DailySales

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(invoice_date) as date,
			COUNT(*) as invoice_count,
			COALESCE(SUM(total_amount), 0) as revenue
		FROM invoices
		WHERE invoice_date >= ? AND invoice_date < ?
		GROUP BY DATE(invoice_date)
		ORDER BY date ASC
	`, start, end).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

// MonthlySales aggregates month by month in application code rather than with
// a dialect-specific date function, the same way daily analytics walk days.
func (r *reportRepository) MonthlySales(ctx context.Context, year int) ([]domainRepo.MonthlySales, error) {
	results := make([]domainRepo.MonthlySales, 0, 12)

	for month := 1; month <= 12; month++ {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)

		var row struct {
			InvoiceCount int64
			Revenue      decimal.Decimal
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT
				COUNT(*) as invoice_count,
				COALESCE(SUM(total_amount), 0) as revenue
			FROM invoices
			WHERE invoice_date >= ? AND invoice_date < ?
		`, start, end).Scan(&row).Error
		if err != nil {
			return nil, err
		}

		if row.InvoiceCount == 0 {
			continue
		}
		results = append(results, domainRepo.MonthlySales{
			Month:        month,
			InvoiceCount: row.InvoiceCount,
			Revenue:      row.Revenue,
		})
	}

	return results, nil
}

func (r *reportRepository) ProductSales(ctx context.Context, start, end time.Time) ([]domainRepo.ProductSales, error) {
	var results []domainRepo.ProductSales

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ii.product_code as product_code,
			ii.product_name as product_name,
			COALESCE(SUM(ii.quantity), 0) as quantity,
			COALESCE(SUM(ii.total_price), 0) as revenue,
			COUNT(DISTINCT ii.invoice_id) as invoice_count
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.invoice_date >= ? AND i.invoice_date < ?
		GROUP BY ii.product_code, ii.product_name
		ORDER BY revenue DESC
	`, start, end).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for i := range results {
		if results[i].Quantity > 0 {
			results[i].AveragePrice = results[i].Revenue.
				Div(decimal.NewFromInt(results[i].Quantity)).Round(2)
		}
	}

	return results, nil
}

func (r *reportRepository) CustomerSales(ctx context.Context, start, end time.Time) ([]domainRepo.CustomerSales, error) {
	var results []domainRepo.CustomerSales

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			customer_name as customer_name,
			COUNT(*) as invoice_count,
			COALESCE(SUM(total_amount), 0) as revenue
		FROM invoices
		WHERE invoice_date >= ? AND invoice_date < ?
		GROUP BY customer_name
		ORDER BY revenue DESC
	`, start, end).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for i := range results {
		if results[i].InvoiceCount > 0 {
			results[i].AverageInvoice = results[i].Revenue.
				Div(decimal.NewFromInt(results[i].InvoiceCount)).Round(2)
		}
	}

	return results, nil
}
