package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/pkg/pagination"
)

// SearchLimit caps catalog substring searches. Results beyond the cap are
// silently truncated; the search feeds autocomplete, not pagination.
const SearchLimit = 20

// ProductFilterParams represents filtering options for product listing
type ProductFilterParams struct {
	Search     string
	Category   string
	Brand      string
	SortBy     string
	SortOrder  string
	Pagination pagination.PaginationParams
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByCode resolves a cart line from a typed code; exact match.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Search matches fragment case-insensitively against code or name,
	// ordered by name, capped at limit.
	Search(ctx context.Context, fragment string, limit int) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
}
