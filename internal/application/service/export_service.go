package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/pkg/apperror"
	"github.com/aydinlift/partsdesk-api/pkg/money"
)

var productExportHeaders = []string{"Kod", "Ürün Adı", "Açıklama", "Birim Fiyat", "Kategori", "Marka"}

// ExportService renders catalog and report data as xlsx workbooks and reads
// product catalogs back in from uploaded workbooks.
type ExportService struct {
	catalog *CatalogService
	reports *ReportService
}

// NewExportService creates a new export service
func NewExportService(catalog *CatalogService, reports *ReportService) *ExportService {
	return &ExportService{catalog: catalog, reports: reports}
}

// ExportProducts writes the full catalog to a single-sheet workbook.
func (s *ExportService) ExportProducts(ctx context.Context) (*bytes.Buffer, error) {
	products, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ürünler"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range productExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, p := range products {
		values := []interface{}{p.Code, p.Name, p.Description, p.UnitPrice.InexactFloat64(), p.Category, p.Brand}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "C", "C", 40)
	f.SetColWidth(sheet, "D", "F", 16)

	return f.WriteToBuffer()
}

// ImportProducts reads a workbook in the export layout and upserts catalog
// rows by code. Rows with an empty code or an unparsable price are skipped
// and counted, not fatal.
func (s *ExportService) ImportProducts(ctx context.Context, r io.Reader) (imported, skipped int, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, 0, apperror.NewBadRequestError("could not read workbook: " + err.Error())
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, 0, apperror.NewBadRequestError("could not read sheet: " + err.Error())
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		get := func(col int) string {
			if col < len(row) {
				return strings.TrimSpace(row[col])
			}
			return ""
		}

		code := get(0)
		if code == "" {
			skipped++
			continue
		}
		price, perr := money.Parse(get(3))
		if perr != nil || price.IsNegative() {
			skipped++
			continue
		}

		product := &entity.Product{
			Code:        code,
			Name:        get(1),
			Description: get(2),
			UnitPrice:   money.Round2(price),
			Category:    get(4),
			Brand:       get(5),
		}

		existing, gerr := s.catalog.productRepo.GetByCode(ctx, code)
		if gerr != nil {
			return imported, skipped, gerr
		}
		if existing != nil {
			existing.Name = product.Name
			existing.Description = product.Description
			existing.UnitPrice = product.UnitPrice
			existing.Category = product.Category
			existing.Brand = product.Brand
			if uerr := s.catalog.productRepo.Update(ctx, existing); uerr != nil {
				return imported, skipped, uerr
			}
		} else {
			if cerr := s.catalog.productRepo.Create(ctx, product); cerr != nil {
				return imported, skipped, cerr
			}
		}
		imported++
	}

	log.Info().Int("imported", imported).Int("skipped", skipped).Msg("product import finished")
	return imported, skipped, nil
}

// ExportSalesReport renders the full report for a range as a workbook with
// one sheet per breakdown.
func (s *ExportService) ExportSalesReport(ctx context.Context, start, end time.Time) (*bytes.Buffer, error) {
	report, err := s.reports.FullReport(ctx, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	writeRow := func(sheet string, row int, values ...interface{}) {
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	// Summary sheet
	const summary = "Özet"
	f.SetSheetName(f.GetSheetName(0), summary)
	writeRow(summary, 1, "Dönem", fmt.Sprintf("%s - %s",
		start.Format("02.01.2006"), end.AddDate(0, 0, -1).Format("02.01.2006")))
	writeRow(summary, 2, "Fatura Sayısı", report.Summary.TotalInvoices)
	writeRow(summary, 3, "Toplam Ciro", report.Summary.TotalRevenue.InexactFloat64())
	writeRow(summary, 4, "Ortalama Fatura", report.Summary.AverageInvoice.InexactFloat64())
	writeRow(summary, 5, "En Çok Satan Ürün", report.Summary.TopProduct)
	writeRow(summary, 6, "Adet", report.Summary.TopProductQuantity)
	f.SetColWidth(summary, "A", "B", 24)

	// Daily sheet
	const daily = "Günlük"
	f.NewSheet(daily)
	writeRow(daily, 1, "Tarih", "Fatura Sayısı", "Ciro")
	for i, d := range report.Daily {
		writeRow(daily, i+2, d.Date, d.InvoiceCount, d.Revenue.InexactFloat64())
	}
	f.SetColWidth(daily, "A", "C", 18)

	// Product sheet
	const products = "Ürün Analizi"
	f.NewSheet(products)
	writeRow(products, 1, "Kod", "Ürün", "Adet", "Ciro", "Ortalama Fiyat", "Fatura Sayısı")
	for i, p := range report.Products {
		writeRow(products, i+2, p.ProductCode, p.ProductName, p.Quantity,
			p.Revenue.InexactFloat64(), p.AveragePrice.InexactFloat64(), p.InvoiceCount)
	}
	f.SetColWidth(products, "A", "B", 24)
	f.SetColWidth(products, "C", "F", 16)

	// Customer sheet
	const customers = "Müşteri Analizi"
	f.NewSheet(customers)
	writeRow(customers, 1, "Müşteri", "Fatura Sayısı", "Ciro", "Ortalama Fatura")
	for i, c := range report.Customers {
		writeRow(customers, i+2, c.CustomerName, c.InvoiceCount,
			c.Revenue.InexactFloat64(), c.AverageInvoice.InexactFloat64())
	}
	f.SetColWidth(customers, "A", "A", 30)
	f.SetColWidth(customers, "B", "D", 18)

	return f.WriteToBuffer()
}
