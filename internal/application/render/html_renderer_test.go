package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRenderHTML(t *testing.T) {
	invoice := &entity.Invoice{
		InvoiceNumber:   "20260831-001",
		CustomerName:    "Acme Forklift",
		CustomerAddress: "Sanayi Sitesi No:4, İzmir",
		DeliveryPerson:  "Mehmet",
		Subtotal:        dec("150.00"),
		DiscountAmount:  dec("15.00"),
		TaxRate:         dec("0.20"),
		TaxAmount:       dec("27.00"),
		TotalAmount:     dec("162.00"),
		InvoiceDate:     time.Date(2026, 8, 31, 14, 0, 0, 0, time.Local),
		Items: []entity.InvoiceItem{
			{ProductCode: "FLT-001", ProductName: "Hidrolik Filtre", Quantity: 2, UnitPrice: dec("50.00"), TotalPrice: dec("100.00")},
			{ProductCode: "FLT-002", ProductName: "Yağ Filtresi", Quantity: 1, UnitPrice: dec("50.00"), TotalPrice: dec("50.00")},
		},
	}

	html, err := NewHTMLRenderer().RenderHTML(invoice, CompanyInfo{
		Name:    "Aydın Lift",
		Address: "İzmir",
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"20260831-001",
		"Acme Forklift",
		"Hidrolik Filtre",
		"31.08.2026",
		"150.00 ₺",
		"-15.00 ₺",
		"27.00 ₺",
		"162.00 ₺",
		"%20",
		"Teslim Eden: Mehmet",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestRenderHTMLOmitsZeroDiscount(t *testing.T) {
	invoice := &entity.Invoice{
		InvoiceNumber: "20260831-002",
		CustomerName:  "Beta Makina",
		Subtotal:      dec("100.00"),
		TaxRate:       dec("0.20"),
		TaxAmount:     dec("20.00"),
		TotalAmount:   dec("120.00"),
		InvoiceDate:   time.Now(),
		Items: []entity.InvoiceItem{
			{ProductCode: "X", ProductName: "Widget", Quantity: 1, UnitPrice: dec("100.00"), TotalPrice: dec("100.00")},
		},
	}

	html, err := NewHTMLRenderer().RenderHTML(invoice, CompanyInfo{Name: "Aydın Lift"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "İndirim") {
		t.Error("zero discount should not render a discount row")
	}
}
