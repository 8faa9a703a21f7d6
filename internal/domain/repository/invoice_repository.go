package repository

import (
	"context"
	"time"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	// Save commits the invoice header, its line items and the customer
	// upsert-by-name in a single transaction; nothing is left behind on
	// failure. The invoice must carry its number and date already.
	Save(ctx context.Context, invoice *entity.Invoice) error

	// GetByNumber loads the header and all line items in insertion order.
	// Returns (nil, nil) when no such number exists.
	GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error)

	// ListByDateRange returns headers only (no items) for invoice_date in the
	// half-open interval [start, end), newest first.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error)

	// DeleteByNumber removes the header and its items in one transaction.
	DeleteByNumber(ctx context.Context, invoiceNumber string) error

	// CountByDay counts invoices whose invoice_date falls on the given local
	// calendar day. Used by invoice numbering; counts currently existing rows
	// only, so deleting an invoice can make a number available again.
	CountByDay(ctx context.Context, day time.Time) (int64, error)
}
