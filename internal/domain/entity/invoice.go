package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlaceholderProductCode marks a manually inserted blank cart row. Lines with
// this code are stripped before an invoice can be finalized.
const PlaceholderProductCode = "KOD GİRİN"

// Invoice is the sales receipt aggregate. Customer name/address are snapshots
// taken at save time, not live joins; historical invoices stay stable when the
// customer record changes later. TaxAmount and TotalAmount are always derived
// from Subtotal and DiscountAmount, never set directly.
type Invoice struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber     string          `gorm:"size:100;uniqueIndex;not null" json:"invoice_number"`
	CustomerID        *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName      string          `gorm:"size:255;not null" json:"customer_name"`
	CustomerAddress   string          `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerTaxNumber string          `gorm:"size:100" json:"customer_tax_number,omitempty"`
	DeliveryPerson    string          `gorm:"size:255" json:"delivery_person,omitempty"`
	ReceiverPerson    string          `gorm:"size:255" json:"receiver_person,omitempty"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"subtotal"`
	DiscountAmount    decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"discount_amount"`
	TaxRate           decimal.Decimal `gorm:"type:numeric(5,2);default:0.20" json:"tax_rate"`
	TaxAmount         decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"tax_amount"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"total_amount"`
	InvoiceDate       time.Time       `json:"invoice_date"`
	CreatedAt         time.Time       `json:"created_at"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"-"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one line of an invoice. ProductCode and ProductName are
// denormalized snapshots; ProductID is a weak reference that is nulled when
// the catalog entry is deleted. LineNo preserves cart insertion order.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductCode string          `gorm:"size:100;not null" json:"product_code"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	LineNo      int             `gorm:"not null" json:"line_no"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
