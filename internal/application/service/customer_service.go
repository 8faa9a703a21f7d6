package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
	"github.com/aydinlift/partsdesk-api/internal/domain/repository"
	"github.com/aydinlift/partsdesk-api/pkg/apperror"
	"github.com/aydinlift/partsdesk-api/pkg/pagination"
)

// CustomerService manages customer master data. Invoice saves perform their
// own upsert-by-name inside the save transaction; this service covers the
// management surface only.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.Name == "" {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "customer name is required"},
		})
	}
	existing, err := s.customerRepo.GetByName(ctx, customer.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflictError("customer name already exists")
	}
	return s.customerRepo.Create(ctx, customer)
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

func (s *CustomerService) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, customer *entity.Customer) error {
	existing, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Update(ctx, customer)
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return s.customerRepo.List(ctx, params, search)
}
