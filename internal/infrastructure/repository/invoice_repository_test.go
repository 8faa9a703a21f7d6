package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/pkg/apperror"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Product{},
		&entity.Customer{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleInvoice(number string, date time.Time) *entity.Invoice {
	return &entity.Invoice{
		InvoiceNumber:   number,
		CustomerName:    "Acme Forklift",
		CustomerAddress: "Sanayi Sitesi No:4, İzmir",
		DeliveryPerson:  "Mehmet",
		ReceiverPerson:  "Ali",
		Subtotal:        dec("150.00"),
		DiscountAmount:  dec("15.00"),
		TaxRate:         dec("0.20"),
		TaxAmount:       dec("27.00"),
		TotalAmount:     dec("162.00"),
		InvoiceDate:     date,
		Items: []entity.InvoiceItem{
			{ProductCode: "FLT-001", ProductName: "Hidrolik Filtre", Quantity: 2, UnitPrice: dec("50.00"), TotalPrice: dec("100.00")},
			{ProductCode: "FLT-002", ProductName: "Yağ Filtresi", Quantity: 1, UnitPrice: dec("50.00"), TotalPrice: dec("50.00")},
		},
	}
}

func TestSaveRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	saved := sampleInvoice("20260831-001", time.Now())
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.GetByNumber(ctx, "20260831-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded == nil {
		t.Fatal("invoice not found after save")
	}

	for _, cmp := range []struct {
		name string
		got  decimal.Decimal
		want decimal.Decimal
	}{
		{"subtotal", loaded.Subtotal, saved.Subtotal},
		{"discount_amount", loaded.DiscountAmount, saved.DiscountAmount},
		{"tax_amount", loaded.TaxAmount, saved.TaxAmount},
		{"total_amount", loaded.TotalAmount, saved.TotalAmount},
	} {
		if !cmp.got.Equal(cmp.want) {
			t.Errorf("%s = %s, want %s", cmp.name, cmp.got, cmp.want)
		}
	}

	if len(loaded.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(loaded.Items))
	}
	// Insertion order survives the round trip.
	for i, want := range []string{"FLT-001", "FLT-002"} {
		item := loaded.Items[i]
		if item.ProductCode != want {
			t.Errorf("item %d code = %s, want %s", i, item.ProductCode, want)
		}
		if item.LineNo != i+1 {
			t.Errorf("item %d line_no = %d, want %d", i, item.LineNo, i+1)
		}
	}
	if !loaded.Items[0].TotalPrice.Equal(dec("100.00")) {
		t.Errorf("item 0 total = %s, want 100.00", loaded.Items[0].TotalPrice)
	}
}

func TestSaveUpsertsCustomerByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	first := sampleInvoice("20260831-001", time.Now())
	if err := repo.Save(ctx, first); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&entity.Customer{}).Count(&count)
	if count != 1 {
		t.Fatalf("customers = %d, want 1", count)
	}
	if first.CustomerID == nil {
		t.Fatal("customer id not stamped onto invoice")
	}

	// Same name with a new address updates the existing row in place.
	second := sampleInvoice("20260831-002", time.Now())
	second.CustomerAddress = "Yeni Mahalle No:7, Ankara"
	if err := repo.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	db.Model(&entity.Customer{}).Count(&count)
	if count != 1 {
		t.Fatalf("customers after second save = %d, want 1", count)
	}

	var customer entity.Customer
	if err := db.First(&customer, "name = ?", "Acme Forklift").Error; err != nil {
		t.Fatal(err)
	}
	if customer.Address != "Yeni Mahalle No:7, Ankara" {
		t.Errorf("address = %q, not updated", customer.Address)
	}
}

func TestSaveKeepsStoredTaxNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	if err := db.Create(&entity.Customer{
		Name:      "Acme Forklift",
		Address:   "Sanayi Sitesi No:4, İzmir",
		TaxNumber: "1234567890",
	}).Error; err != nil {
		t.Fatal(err)
	}

	// An invoice without a tax number leaves the stored one alone.
	if err := repo.Save(ctx, sampleInvoice("20260831-001", time.Now())); err != nil {
		t.Fatal(err)
	}

	var customer entity.Customer
	if err := db.First(&customer, "name = ?", "Acme Forklift").Error; err != nil {
		t.Fatal(err)
	}
	if customer.TaxNumber != "1234567890" {
		t.Errorf("stored tax number = %q, want 1234567890", customer.TaxNumber)
	}

	// A non-empty tax number on the invoice replaces the stored one.
	second := sampleInvoice("20260831-002", time.Now())
	second.CustomerTaxNumber = "9876543210"
	if err := repo.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	if err := db.First(&customer, "name = ?", "Acme Forklift").Error; err != nil {
		t.Fatal(err)
	}
	if customer.TaxNumber != "9876543210" {
		t.Errorf("stored tax number = %q, want 9876543210", customer.TaxNumber)
	}
}

func TestSaveDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	if err := repo.Save(ctx, sampleInvoice("20260831-001", time.Now())); err != nil {
		t.Fatal(err)
	}

	err := repo.Save(ctx, sampleInvoice("20260831-001", time.Now()))
	if !errors.Is(err, apperror.ErrDuplicateInvoiceNumber) {
		t.Fatalf("expected ErrDuplicateInvoiceNumber, got %v", err)
	}
}

func TestDeleteByNumberCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	saved := sampleInvoice("20260831-001", time.Now())
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteByNumber(ctx, "20260831-001"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	loaded, err := repo.GetByNumber(ctx, "20260831-001")
	if err != nil {
		t.Fatal(err)
	}
	if loaded != nil {
		t.Error("invoice still found after delete")
	}

	var itemCount int64
	db.Model(&entity.InvoiceItem{}).Where("invoice_id = ?", saved.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("orphaned invoice_items rows: %d", itemCount)
	}
}

func TestDeleteByNumberMissing(t *testing.T) {
	repo := NewInvoiceRepository(newTestDB(t))

	err := repo.DeleteByNumber(context.Background(), "20260831-099")
	if !errors.Is(err, apperror.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestListByDateRangeHalfOpen(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	day := func(d int, hour int) time.Time {
		return time.Date(2026, 8, d, hour, 0, 0, 0, time.UTC)
	}
	numbers := []string{"20260829-001", "20260830-001", "20260830-002", "20260831-001"}
	dates := []time.Time{day(29, 10), day(30, 9), day(30, 16), day(31, 8)}
	for i := range numbers {
		if err := repo.Save(ctx, sampleInvoice(numbers[i], dates[i])); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// [Aug 30, Aug 31) picks up both Aug 30 invoices and nothing else.
	invoices, err := repo.ListByDateRange(ctx, day(30, 0), day(31, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(invoices) != 2 {
		t.Fatalf("invoices = %d, want 2", len(invoices))
	}
	// Newest first.
	if !invoices[0].InvoiceDate.After(invoices[1].InvoiceDate) {
		t.Errorf("results not ordered newest first: %v, %v",
			invoices[0].InvoiceDate, invoices[1].InvoiceDate)
	}
	for _, inv := range invoices {
		if len(inv.Items) != 0 {
			t.Errorf("date range listing should not load items")
		}
	}
}

func TestCountByDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	noon := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	for i, number := range []string{"20260831-001", "20260831-002"} {
		if err := repo.Save(ctx, sampleInvoice(number, noon.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Save(ctx, sampleInvoice("20260830-001", noon.AddDate(0, 0, -1))); err != nil {
		t.Fatal(err)
	}

	count, err := repo.CountByDay(ctx, noon)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	count, err = repo.CountByDay(ctx, noon.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count for empty day = %d, want 0", count)
	}
}
