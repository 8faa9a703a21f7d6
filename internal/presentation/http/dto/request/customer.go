package request

// CreateCustomerRequest is the payload for adding a customer record.
type CreateCustomerRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	TaxNumber string `json:"tax_number"`
}

// UpdateCustomerRequest carries partial customer updates.
type UpdateCustomerRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	TaxNumber *string `json:"tax_number"`
}
