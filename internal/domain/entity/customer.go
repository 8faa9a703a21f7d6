package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a buyer. Lookup is by exact, case-sensitive name; the
// invoice save path upserts by name (insert when unseen, update the address
// when it changed).
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	TaxNumber string    `gorm:"size:50" json:"tax_number,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
