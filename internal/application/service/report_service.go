package service

import (
	"context"
	"time"

	"github.com/aydinlift/partsdesk-api/internal/domain/repository"
)

// SalesReport bundles every aggregate view for one date range.
type SalesReport struct {
	Start     time.Time                  `json:"start"`
	End       time.Time                  `json:"end"`
	Summary   *repository.SummaryStats   `json:"summary"`
	Daily     []repository.DailySales    `json:"daily"`
	Products  []repository.ProductSales  `json:"products"`
	Customers []repository.CustomerSales `json:"customers"`
}

// ReportService serves read-only aggregate views over saved invoices.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

func (s *ReportService) Summary(ctx context.Context, start, end time.Time) (*repository.SummaryStats, error) {
	return s.reportRepo.Summary(ctx, start, end)
}

func (s *ReportService) DailySales(ctx context.Context, start, end time.Time) ([]repository.DailySales, error) {
	return s.reportRepo.DailySales(ctx, start, end)
}

func (s *ReportService) MonthlySales(ctx context.Context, year int) ([]repository.MonthlySales, error) {
	return s.reportRepo.MonthlySales(ctx, year)
}

func (s *ReportService) ProductSales(ctx context.Context, start, end time.Time) ([]repository.ProductSales, error) {
	return s.reportRepo.ProductSales(ctx, start, end)
}

func (s *ReportService) CustomerSales(ctx context.Context, start, end time.Time) ([]repository.CustomerSales, error) {
	return s.reportRepo.CustomerSales(ctx, start, end)
}

// FullReport assembles the summary and every breakdown in one call, as
// consumed by the spreadsheet export.
func (s *ReportService) FullReport(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	summary, err := s.reportRepo.Summary(ctx, start, end)
	if err != nil {
		return nil, err
	}
	daily, err := s.reportRepo.DailySales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	products, err := s.reportRepo.ProductSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	customers, err := s.reportRepo.CustomerSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &SalesReport{
		Start:     start,
		End:       end,
		Summary:   summary,
		Daily:     daily,
		Products:  products,
		Customers: customers,
	}, nil
}
