package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/internal/domain/enum"
	"github.com/aydinlift/partsdesk-api/internal/domain/repository"
	"github.com/aydinlift/partsdesk-api/pkg/apperror"
	"github.com/aydinlift/partsdesk-api/pkg/money"
)

// CartState tracks where the in-progress invoice is in its lifecycle.
type CartState int

const (
	CartStateEmpty CartState = iota
	CartStateBuilding
	CartStateReadyToSave
)

// CartEngine owns the authoritative in-memory invoice aggregate. Every
// mutation recomputes totals, so observers always see a consistent view.
// The engine is single-writer: one engine serves one invoice being built.
type CartEngine struct {
	products repository.ProductRepository

	state CartState
	lines []entity.InvoiceItem

	// rawDiscount is the last parsed discount input; the effective
	// discount amount is re-derived from it under the current mode on
	// every recompute, so mode switches reinterpret rather than convert.
	rawDiscount  decimal.Decimal
	discountMode enum.DiscountMode

	customerName      string
	customerAddress   string
	customerTaxNumber string
	deliveryPerson    string
	receiverPerson    string

	taxRate        decimal.Decimal
	subtotal       decimal.Decimal
	discountAmount decimal.Decimal
	taxAmount      decimal.Decimal
	totalAmount    decimal.Decimal
}

// NewCartEngine creates an empty cart with the given tax rate.
func NewCartEngine(products repository.ProductRepository, taxRate decimal.Decimal) *CartEngine {
	e := &CartEngine{
		products:     products,
		taxRate:      taxRate,
		discountMode: enum.DiscountModePercentage,
	}
	e.recomputeTotals()
	return e
}

// Reset discards the unsaved cart and returns to the empty state.
func (e *CartEngine) Reset() {
	e.state = CartStateEmpty
	e.lines = nil
	e.rawDiscount = money.Zero
	e.discountMode = enum.DiscountModePercentage
	e.customerName = ""
	e.customerAddress = ""
	e.customerTaxNumber = ""
	e.deliveryPerson = ""
	e.receiverPerson = ""
	e.recomputeTotals()
}

func (e *CartEngine) State() CartState { return e.state }

// Lines returns a copy of the current cart rows in insertion order.
func (e *CartEngine) Lines() []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *CartEngine) Subtotal() decimal.Decimal       { return e.subtotal }
func (e *CartEngine) DiscountAmount() decimal.Decimal { return e.discountAmount }
func (e *CartEngine) TaxAmount() decimal.Decimal      { return e.taxAmount }
func (e *CartEngine) TotalAmount() decimal.Decimal    { return e.totalAmount }

// AddLineByCode resolves a product by exact code and adds it to the cart.
// A line with the same code already present gets its quantity bumped by one
// instead of a second row.
func (e *CartEngine) AddLineByCode(ctx context.Context, code string) error {
	product, err := e.products.GetByCode(ctx, code)
	if err != nil {
		return apperror.ErrStorageUnavailable
	}
	if product == nil {
		return apperror.ErrProductNotFound
	}

	for i := range e.lines {
		if e.lines[i].ProductCode == product.Code {
			e.lines[i].Quantity++
			e.lines[i].TotalPrice = money.Mul(e.lines[i].Quantity, e.lines[i].UnitPrice)
			e.recomputeTotals()
			return nil
		}
	}

	productID := product.ID
	e.lines = append(e.lines, entity.InvoiceItem{
		ProductID:   &productID,
		ProductCode: product.Code,
		ProductName: product.Name,
		Quantity:    1,
		UnitPrice:   product.UnitPrice,
		TotalPrice:  money.Mul(1, product.UnitPrice),
	})
	e.state = CartStateBuilding
	e.recomputeTotals()
	return nil
}

// InsertBlankLine appends a placeholder row the user fills in manually.
// Placeholder rows carry zero price and are stripped at finalize.
func (e *CartEngine) InsertBlankLine() {
	e.lines = append(e.lines, entity.InvoiceItem{
		ProductCode: entity.PlaceholderProductCode,
		ProductName: "",
		Quantity:    1,
		UnitPrice:   money.Zero,
		TotalPrice:  money.Zero,
	})
	e.state = CartStateBuilding
	e.recomputeTotals()
}

// SetLineCode re-resolves an existing row (typically a placeholder) against
// the catalog, replacing its snapshot fields with the product's.
func (e *CartEngine) SetLineCode(ctx context.Context, lineIndex int, code string) error {
	if lineIndex < 0 || lineIndex >= len(e.lines) {
		return apperror.ErrProductNotFound
	}
	product, err := e.products.GetByCode(ctx, code)
	if err != nil {
		return apperror.ErrStorageUnavailable
	}
	if product == nil {
		return apperror.ErrProductNotFound
	}

	line := &e.lines[lineIndex]
	productID := product.ID
	line.ProductID = &productID
	line.ProductCode = product.Code
	line.ProductName = product.Name
	line.UnitPrice = product.UnitPrice
	line.TotalPrice = money.Mul(line.Quantity, line.UnitPrice)
	e.recomputeTotals()
	return nil
}

// SetLineQuantity updates a row's quantity. Zero or negative removes the row.
func (e *CartEngine) SetLineQuantity(lineIndex, quantity int) error {
	if lineIndex < 0 || lineIndex >= len(e.lines) {
		return nil
	}
	if quantity <= 0 {
		e.RemoveLine(lineIndex)
		return nil
	}
	line := &e.lines[lineIndex]
	line.Quantity = quantity
	line.TotalPrice = money.Mul(quantity, line.UnitPrice)
	e.recomputeTotals()
	return nil
}

// SetLineUnitPrice parses the raw text as a price. Malformed input leaves the
// row untouched and reports the error, so the last valid price survives.
func (e *CartEngine) SetLineUnitPrice(lineIndex int, rawText string) error {
	if lineIndex < 0 || lineIndex >= len(e.lines) {
		return nil
	}
	price, err := money.Parse(rawText)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return apperror.ErrInvalidAmount
	}
	line := &e.lines[lineIndex]
	line.UnitPrice = money.Round2(price)
	line.TotalPrice = money.Mul(line.Quantity, line.UnitPrice)
	e.recomputeTotals()
	return nil
}

// RemoveLine deletes a row and recomputes totals. Out-of-range is a no-op.
func (e *CartEngine) RemoveLine(lineIndex int) {
	if lineIndex < 0 || lineIndex >= len(e.lines) {
		return
	}
	e.lines = append(e.lines[:lineIndex], e.lines[lineIndex+1:]...)
	if len(e.lines) == 0 {
		e.state = CartStateEmpty
	}
	e.recomputeTotals()
}

// SetDiscount parses the raw text and stores it as the discount input under
// the given mode. The returned clamped flag reports that the entered value
// was out of range and got clamped, which callers surface as a warning.
func (e *CartEngine) SetDiscount(mode enum.DiscountMode, rawText string) (clamped bool, err error) {
	value, err := money.Parse(rawText)
	if err != nil {
		return false, err
	}
	e.discountMode = mode
	e.rawDiscount = value
	clamped = e.wouldClamp(value)
	e.recomputeTotals()
	return clamped, nil
}

// SetDiscountMode reinterprets the stored raw discount input under the new
// mode. "10" as a percentage becomes "10" as a fixed amount; no conversion.
func (e *CartEngine) SetDiscountMode(mode enum.DiscountMode) {
	e.discountMode = mode
	e.recomputeTotals()
}

func (e *CartEngine) wouldClamp(value decimal.Decimal) bool {
	switch e.discountMode {
	case enum.DiscountModeFixed:
		return value.IsNegative() || value.GreaterThan(e.subtotal)
	default:
		return value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100))
	}
}

// recomputeTotals re-derives every invoice-level figure from the lines and
// the stored discount input. Safe to call any number of times; with no
// intervening mutation the results are identical.
func (e *CartEngine) recomputeTotals() {
	subtotal := money.Zero
	for i := range e.lines {
		subtotal = subtotal.Add(e.lines[i].TotalPrice)
	}
	e.subtotal = money.Round2(subtotal)

	var discount decimal.Decimal
	switch e.discountMode {
	case enum.DiscountModeFixed:
		discount = money.Round2(e.rawDiscount)
	default:
		percent := money.Clamp(e.rawDiscount, money.Zero, decimal.NewFromInt(100))
		discount = money.Round2(e.subtotal.Mul(percent).Div(decimal.NewFromInt(100)))
	}
	// Clamped against the live subtotal every pass: a fixed discount set
	// while the cart was larger shrinks along with it.
	e.discountAmount = money.Clamp(discount, money.Zero, e.subtotal)

	taxable := e.subtotal.Sub(e.discountAmount)
	e.taxAmount = money.Round2(taxable.Mul(e.taxRate))
	e.totalAmount = taxable.Add(e.taxAmount)
}

// SetCustomer records the customer snapshot for the invoice being built.
func (e *CartEngine) SetCustomer(name, address, taxNumber string) {
	e.customerName = name
	e.customerAddress = address
	e.customerTaxNumber = taxNumber
}

func (e *CartEngine) SetDeliveryPerson(name string) { e.deliveryPerson = name }
func (e *CartEngine) SetReceiverPerson(name string) { e.receiverPerson = name }

// Finalize strips placeholder rows and hands back the invoice aggregate ready
// for persistence. The cart must have at least one real line and a customer
// name; the invoice number and date are assigned at save time, not here.
func (e *CartEngine) Finalize() (*entity.Invoice, error) {
	kept := make([]entity.InvoiceItem, 0, len(e.lines))
	for i := range e.lines {
		if e.lines[i].ProductCode == entity.PlaceholderProductCode {
			continue
		}
		kept = append(kept, e.lines[i])
	}
	if len(kept) == 0 {
		return nil, apperror.ErrEmptyCart
	}
	if e.customerName == "" {
		return nil, apperror.ErrMissingCustomer
	}

	e.lines = kept
	e.recomputeTotals()
	e.state = CartStateReadyToSave

	items := make([]entity.InvoiceItem, len(kept))
	copy(items, kept)

	return &entity.Invoice{
		CustomerName:      e.customerName,
		CustomerAddress:   e.customerAddress,
		CustomerTaxNumber: e.customerTaxNumber,
		DeliveryPerson:    e.deliveryPerson,
		ReceiverPerson:    e.receiverPerson,
		Subtotal:          e.subtotal,
		DiscountAmount:    e.discountAmount,
		TaxRate:           e.taxRate,
		TaxAmount:         e.taxAmount,
		TotalAmount:       e.totalAmount,
		Items:             items,
	}, nil
}
