package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/internal/domain/repository"
	"github.com/aydinlift/partsdesk-api/pkg/apperror"
)

// InvoiceService persists finalized invoices and reads them back.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		now:         time.Now,
	}
}

// NextNumber produces the next daily-sequential invoice number for the given
// moment, formatted YYYYMMDD-NNN. The sequence part is the count of invoices
// already stored for that local calendar day plus one. This is read-then-use:
// the number is not reserved, and two concurrent saves on the same day can
// compute the same value. Single active writer is assumed; the unique index
// on invoice_number is the backstop.
func (s *InvoiceService) NextNumber(ctx context.Context, at time.Time) (string, error) {
	count, err := s.invoiceRepo.CountByDay(ctx, at)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", at.Format("20060102"), count+1), nil
}

// Save assigns an invoice number if absent, stamps the invoice date and
// commits the whole aggregate atomically. The passed invoice is updated in
// place with the assigned number and date.
func (s *InvoiceService) Save(ctx context.Context, invoice *entity.Invoice) error {
	if len(invoice.Items) == 0 {
		return apperror.ErrEmptyCart
	}
	if invoice.CustomerName == "" {
		return apperror.ErrMissingCustomer
	}

	now := s.now()
	if invoice.InvoiceNumber == "" {
		number, err := s.NextNumber(ctx, now)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number
	}
	invoice.InvoiceDate = now

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return err
	}

	log.Info().
		Str("invoice_number", invoice.InvoiceNumber).
		Str("customer", invoice.CustomerName).
		Str("total", invoice.TotalAmount.StringFixed(2)).
		Msg("invoice saved")
	return nil
}

// GetByNumber loads an invoice with its line items in insertion order.
func (s *InvoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.ErrInvoiceNotFound
	}
	return invoice, nil
}

// ListByDateRange returns invoice headers for [start, end), newest first.
// Callers working with inclusive end dates add one day before calling.
func (s *InvoiceService) ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	return s.invoiceRepo.ListByDateRange(ctx, start, end)
}

// DeleteByNumber removes an invoice and its line items. Because numbering
// counts existing rows, deleting today's latest invoice makes its number
// available to the next save that day.
func (s *InvoiceService) DeleteByNumber(ctx context.Context, invoiceNumber string) error {
	if err := s.invoiceRepo.DeleteByNumber(ctx, invoiceNumber); err != nil {
		return err
	}
	log.Info().Str("invoice_number", invoiceNumber).Msg("invoice deleted")
	return nil
}
