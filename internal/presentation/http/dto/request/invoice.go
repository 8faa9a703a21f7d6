package request

import "github.com/aydinlift/partsdesk-api/internal/domain/enum"

// InvoiceItemRequest is one requested cart line. UnitPrice, when present,
// overrides the catalog price for that line; raw text, comma or dot decimals.
type InvoiceItemRequest struct {
	Code      string  `json:"code" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice *string `json:"unit_price"`
}

// InvoiceDiscountRequest is the discount input as the user typed it, plus
// the mode it should be read under.
type InvoiceDiscountRequest struct {
	Mode  enum.DiscountMode `json:"mode"`
	Value string            `json:"value"`
}

// InvoiceCustomerRequest is the customer snapshot for the invoice. The name
// drives the upsert at save time.
type InvoiceCustomerRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	TaxNumber string `json:"tax_number"`
}

// CreateInvoiceRequest is the payload for building and saving an invoice in
// one call. Items are applied in order; totals are computed server side.
type CreateInvoiceRequest struct {
	Customer       InvoiceCustomerRequest  `json:"customer" binding:"required"`
	DeliveryPerson string                  `json:"delivery_person"`
	ReceiverPerson string                  `json:"receiver_person"`
	Discount       *InvoiceDiscountRequest `json:"discount"`
	Items          []InvoiceItemRequest    `json:"items" binding:"required"`
}

// EmailInvoiceRequest asks for a saved invoice's document to be mailed.
type EmailInvoiceRequest struct {
	To string `json:"to" binding:"required,email"`
}
