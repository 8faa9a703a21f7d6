package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	domainRepo "github.com/aydinlift/partsdesk-api/internal/domain/repository"
	"github.com/aydinlift/partsdesk-api/pkg/apperror"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Save writes the customer upsert, the invoice header and all line items in a
// single transaction. The upsert matches customers by exact name: a miss
// inserts a new row, a hit refreshes the address when it changed and the tax
// number only when the invoice supplies one. The resolved customer id is
// stamped onto the header before insert.
func (r *invoiceRepository) Save(ctx context.Context, invoice *entity.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if invoice.CustomerName != "" {
			var customer entity.Customer
			err := tx.First(&customer, "name = ?", invoice.CustomerName).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				customer = entity.Customer{
					Name:      invoice.CustomerName,
					Address:   invoice.CustomerAddress,
					TaxNumber: invoice.CustomerTaxNumber,
				}
				if err := tx.Create(&customer).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				changed := false
				if invoice.CustomerAddress != customer.Address {
					customer.Address = invoice.CustomerAddress
					changed = true
				}
				if invoice.CustomerTaxNumber != "" && invoice.CustomerTaxNumber != customer.TaxNumber {
					customer.TaxNumber = invoice.CustomerTaxNumber
					changed = true
				}
				if changed {
					if err := tx.Save(&customer).Error; err != nil {
						return err
					}
				}
			}
			invoice.CustomerID = &customer.ID
		}

		for i := range invoice.Items {
			invoice.Items[i].LineNo = i + 1
		}

		return tx.Create(invoice).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrDuplicateInvoiceNumber
	}
	return err
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		First(&invoice, "invoice_number = ?", invoiceNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Where("invoice_date >= ? AND invoice_date < ?", start, end).
		Order("invoice_date DESC, invoice_number DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) DeleteByNumber(ctx context.Context, invoiceNumber string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice entity.Invoice
		err := tx.First(&invoice, "invoice_number = ?", invoiceNumber).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrInvoiceNotFound
		}
		if err != nil {
			return err
		}
		// Items go first so sqlite without FK cascades stays consistent.
		if err := tx.Delete(&entity.InvoiceItem{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Invoice{}, "id = ?", invoice.ID).Error
	})
}

func (r *invoiceRepository) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("invoice_date >= ? AND invoice_date < ?", start, end).
		Count(&count).Error
	return count, err
}
