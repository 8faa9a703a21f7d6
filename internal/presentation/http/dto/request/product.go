package request

// CreateProductRequest is the payload for adding a catalog entry. UnitPrice
// is raw text; both comma and dot decimal separators are accepted.
type CreateProductRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
}

// UpdateProductRequest carries partial catalog updates; nil fields are left
// untouched.
type UpdateProductRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	UnitPrice   *string `json:"unit_price"`
	Category    *string `json:"category"`
	Brand       *string `json:"brand"`
}
