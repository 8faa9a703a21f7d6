package render

import (
	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
)

// CompanyInfo is the seller block printed on every invoice document.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	TaxInfo string
}

// Renderer produces a printable invoice document from a persisted invoice.
type Renderer interface {
	RenderHTML(invoice *entity.Invoice, company CompanyInfo) (string, error)
}
