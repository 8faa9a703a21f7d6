package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/internal/domain/enum"
	domainRepo "github.com/aydinlift/partsdesk-api/internal/domain/repository"
	"github.com/aydinlift/partsdesk-api/pkg/apperror"
)

type fakeProductRepo struct {
	byCode map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byCode: make(map[string]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.byCode[p.Code] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.byCode[code], nil
}
func (r *fakeProductRepo) Search(ctx context.Context, fragment string, limit int) ([]entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error    { return nil }
func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }
func (r *fakeProductRepo) GetAll(ctx context.Context) ([]entity.Product, error)   { return nil, nil }
func (r *fakeProductRepo) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(code, name, price string) *entity.Product {
	return &entity.Product{Code: code, Name: name, UnitPrice: dec(price)}
}

func newTestEngine(t *testing.T, products ...*entity.Product) *CartEngine {
	t.Helper()
	return NewCartEngine(newFakeProductRepo(products...), dec("0.20"))
}

func TestAddLineByCodeMergesDuplicates(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "10.00"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := engine.AddLineByCode(ctx, "X"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	lines := engine.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", lines[0].Quantity)
	}
	if got := lines[0].TotalPrice.StringFixed(2); got != "30.00" {
		t.Errorf("total_price = %s, want 30.00", got)
	}
}

func TestAddLineByCodeUnknownProduct(t *testing.T) {
	engine := newTestEngine(t)

	err := engine.AddLineByCode(context.Background(), "MISSING")
	if !errors.Is(err, apperror.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(engine.Lines()) != 0 {
		t.Errorf("no line should be added on lookup failure")
	}
}

func TestLineAndInvoiceTotals(t *testing.T) {
	engine := newTestEngine(t,
		testProduct("A", "Part A", "12.34"),
		testProduct("B", "Part B", "5.00"),
	)
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if err := engine.AddLineByCode(ctx, "B"); err != nil {
		t.Fatal(err)
	}
	if err := engine.SetLineQuantity(0, 3); err != nil {
		t.Fatal(err)
	}

	lines := engine.Lines()
	if got := lines[0].TotalPrice.StringFixed(2); got != "37.02" {
		t.Errorf("line 0 total = %s, want 37.02", got)
	}
	if got := engine.Subtotal().StringFixed(2); got != "42.02" {
		t.Errorf("subtotal = %s, want 42.02", got)
	}
}

func TestPercentageDiscount(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "100.00"))
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	if err := engine.SetLineQuantity(0, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.SetDiscount(enum.DiscountModePercentage, "10"); err != nil {
		t.Fatal(err)
	}

	if got := engine.Subtotal().StringFixed(2); got != "1000.00" {
		t.Fatalf("subtotal = %s, want 1000.00", got)
	}
	if got := engine.DiscountAmount().StringFixed(2); got != "100.00" {
		t.Errorf("discount = %s, want 100.00", got)
	}
	if got := engine.TaxAmount().StringFixed(2); got != "180.00" {
		t.Errorf("tax = %s, want 180.00", got)
	}
	if got := engine.TotalAmount().StringFixed(2); got != "1080.00" {
		t.Errorf("total = %s, want 1080.00", got)
	}
}

func TestFixedDiscountClampedToSubtotal(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "50.00"))
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "X"); err != nil {
		t.Fatal(err)
	}

	clamped, err := engine.SetDiscount(enum.DiscountModeFixed, "999.00")
	if err != nil {
		t.Fatal(err)
	}
	if !clamped {
		t.Errorf("expected clamp warning for discount above subtotal")
	}

	if got := engine.DiscountAmount().StringFixed(2); got != "50.00" {
		t.Errorf("discount = %s, want 50.00", got)
	}
	if got := engine.TaxAmount().StringFixed(2); got != "0.00" {
		t.Errorf("tax = %s, want 0.00", got)
	}
	if got := engine.TotalAmount().StringFixed(2); got != "0.00" {
		t.Errorf("total = %s, want 0.00", got)
	}
}

func TestPercentageDiscountClampedToHundred(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "50.00"))
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "X"); err != nil {
		t.Fatal(err)
	}

	clamped, err := engine.SetDiscount(enum.DiscountModePercentage, "150")
	if err != nil {
		t.Fatal(err)
	}
	if !clamped {
		t.Errorf("expected clamp warning for percentage above 100")
	}

	if got := engine.DiscountAmount().StringFixed(2); got != "50.00" {
		t.Errorf("discount = %s, want 50.00", got)
	}
	if got := engine.TaxAmount().StringFixed(2); got != "0.00" {
		t.Errorf("tax = %s, want 0.00", got)
	}
	if got := engine.TotalAmount().StringFixed(2); got != "0.00" {
		t.Errorf("total = %s, want 0.00", got)
	}
}

func TestDiscountBoundsHoldAfterCartShrinks(t *testing.T) {
	engine := newTestEngine(t,
		testProduct("A", "Part A", "100.00"),
		testProduct("B", "Part B", "30.00"),
	)
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if err := engine.AddLineByCode(ctx, "B"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.SetDiscount(enum.DiscountModeFixed, "120.00"); err != nil {
		t.Fatal(err)
	}

	// Removing the big line drops the subtotal below the fixed discount.
	engine.RemoveLine(0)

	if engine.DiscountAmount().GreaterThan(engine.Subtotal()) {
		t.Errorf("discount %s exceeds subtotal %s",
			engine.DiscountAmount().StringFixed(2), engine.Subtotal().StringFixed(2))
	}
	if got := engine.DiscountAmount().StringFixed(2); got != "30.00" {
		t.Errorf("discount = %s, want 30.00", got)
	}
}

func TestDiscountModeSwitchReinterpretsRawInput(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "100.00"))
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	if err := engine.SetLineQuantity(0, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.SetDiscount(enum.DiscountModePercentage, "10"); err != nil {
		t.Fatal(err)
	}
	if got := engine.DiscountAmount().StringFixed(2); got != "100.00" {
		t.Fatalf("percentage discount = %s, want 100.00", got)
	}

	// "10" percent becomes 10 lira, not an equivalent percentage.
	engine.SetDiscountMode(enum.DiscountModeFixed)
	if got := engine.DiscountAmount().StringFixed(2); got != "10.00" {
		t.Errorf("fixed discount = %s, want 10.00", got)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "33.33"))
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	if err := engine.SetLineQuantity(0, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.SetDiscount(enum.DiscountModePercentage, "3"); err != nil {
		t.Fatal(err)
	}

	first := []string{
		engine.Subtotal().StringFixed(2),
		engine.DiscountAmount().StringFixed(2),
		engine.TaxAmount().StringFixed(2),
		engine.TotalAmount().StringFixed(2),
	}
	engine.recomputeTotals()
	engine.recomputeTotals()
	second := []string{
		engine.Subtotal().StringFixed(2),
		engine.DiscountAmount().StringFixed(2),
		engine.TaxAmount().StringFixed(2),
		engine.TotalAmount().StringFixed(2),
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("recompute changed value %d: %s -> %s", i, first[i], second[i])
		}
	}
}

func TestSetLineUnitPriceInvalidKeepsLastValue(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "10.00"))
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	if err := engine.SetLineUnitPrice(0, "12,50"); err != nil {
		t.Fatal(err)
	}

	err := engine.SetLineUnitPrice(0, "abc")
	if !errors.Is(err, apperror.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if got := engine.Lines()[0].UnitPrice.StringFixed(2); got != "12.50" {
		t.Errorf("unit price = %s, want 12.50 (last valid value)", got)
	}
}

func TestSetLineQuantityZeroRemovesLine(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "10.00"))
	ctx := context.Background()

	if err := engine.AddLineByCode(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	if err := engine.SetLineQuantity(0, 0); err != nil {
		t.Fatal(err)
	}

	if len(engine.Lines()) != 0 {
		t.Errorf("line should be removed on zero quantity")
	}
	if engine.State() != CartStateEmpty {
		t.Errorf("state = %d, want empty", engine.State())
	}
	if got := engine.Subtotal().StringFixed(2); got != "0.00" {
		t.Errorf("subtotal = %s, want 0.00", got)
	}
}

func TestFinalizeEmptyCart(t *testing.T) {
	engine := newTestEngine(t)
	engine.SetCustomer("Acme", "", "")

	if _, err := engine.Finalize(); !errors.Is(err, apperror.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestFinalizeMissingCustomer(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "10.00"))

	if err := engine.AddLineByCode(context.Background(), "X"); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.Finalize(); !errors.Is(err, apperror.ErrMissingCustomer) {
		t.Fatalf("expected ErrMissingCustomer, got %v", err)
	}
}

func TestFinalizeStripsPlaceholderLines(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "10.00"))
	ctx := context.Background()

	engine.InsertBlankLine()
	if err := engine.AddLineByCode(ctx, "X"); err != nil {
		t.Fatal(err)
	}
	engine.InsertBlankLine()
	engine.SetCustomer("Acme", "İzmir", "")

	invoice, err := engine.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if len(invoice.Items) != 1 {
		t.Fatalf("expected 1 item after stripping placeholders, got %d", len(invoice.Items))
	}
	if invoice.Items[0].ProductCode != "X" {
		t.Errorf("kept item code = %s, want X", invoice.Items[0].ProductCode)
	}
	if got := invoice.TotalAmount.StringFixed(2); got != "12.00" {
		t.Errorf("total = %s, want 12.00", got)
	}
}

func TestFinalizeOnlyPlaceholders(t *testing.T) {
	engine := newTestEngine(t)
	engine.InsertBlankLine()
	engine.SetCustomer("Acme", "", "")

	if _, err := engine.Finalize(); !errors.Is(err, apperror.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSetLineCodeFillsPlaceholder(t *testing.T) {
	engine := newTestEngine(t, testProduct("X", "Widget", "10.00"))
	ctx := context.Background()

	engine.InsertBlankLine()
	if err := engine.SetLineQuantity(0, 2); err != nil {
		t.Fatal(err)
	}
	if err := engine.SetLineCode(ctx, 0, "X"); err != nil {
		t.Fatal(err)
	}

	line := engine.Lines()[0]
	if line.ProductCode != "X" || line.ProductName != "Widget" {
		t.Errorf("line not resolved: %+v", line)
	}
	if got := line.TotalPrice.StringFixed(2); got != "20.00" {
		t.Errorf("total = %s, want 20.00 (quantity preserved)", got)
	}
}
