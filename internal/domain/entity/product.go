package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a spare part in the catalog. The sales core treats
// products as read-only reference data; they are created and updated through
// the catalog management endpoints only.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code        string          `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"unit_price"`
	Category    string          `gorm:"size:255" json:"category,omitempty"`
	Brand       string          `gorm:"size:255" json:"brand,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
