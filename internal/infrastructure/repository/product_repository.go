package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	domainRepo "github.com/aydinlift/partsdesk-api/internal/domain/repository"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Search(ctx context.Context, fragment string, limit int) ([]entity.Product, error) {
	if limit <= 0 {
		limit = domainRepo.SearchLimit
	}
	var products []entity.Product
	pattern := "%" + fragment + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(code) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(code) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", pattern, pattern)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "name"
	sortOrder := "ASC"
	switch params.SortBy {
	case "code", "name", "unit_price", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Normalize()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit()).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("code ASC").Find(&products).Error
	return products, err
}
