package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/internal/domain/repository"
	"github.com/aydinlift/partsdesk-api/pkg/apperror"
)

// CatalogService manages the product catalog and serves cart lookups.
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

func (s *CatalogService) Create(ctx context.Context, product *entity.Product) error {
	if product.Code == "" {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "code", Message: "product code is required"},
		})
	}
	existing, err := s.productRepo.GetByCode(ctx, product.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflictError("product code already exists")
	}
	return s.productRepo.Create(ctx, product)
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound
	}
	return product, nil
}

// FindByCode resolves an exact product code, as typed into a cart line.
func (s *CatalogService) FindByCode(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound
	}
	return product, nil
}

// Search feeds autocomplete: case-insensitive substring match on code or
// name, ordered by name, capped at the repository search limit.
func (s *CatalogService) Search(ctx context.Context, fragment string) ([]entity.Product, error) {
	return s.productRepo.Search(ctx, fragment, repository.SearchLimit)
}

func (s *CatalogService) Update(ctx context.Context, product *entity.Product) error {
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.ErrProductNotFound
	}
	return s.productRepo.Update(ctx, product)
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

func (s *CatalogService) GetAll(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetAll(ctx)
}
