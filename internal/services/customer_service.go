package services

import (
	"context"
	"fmt"

	"weighbridge-backend/internal/apperrors"
	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/models"

	"github.com/shopspring/decimal"
)

// CustomerService is the customer directory. Identity is the truck number
// and nothing else: there is no lookup by name or contact.
type CustomerService struct {
	Customers CustomerStore
}

func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{Customers: customers}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Customers.List(ctx)
}

// FindByTruckNumber returns the customer for a truck, or nil when the truck
// has never settled an exit. Hits the redis cache first when available.
func (s *CustomerService) FindByTruckNumber(ctx context.Context, truckNumber string) (*models.Customer, error) {
	tn := models.NormalizeTruckNumber(truckNumber)
	if tn == "" {
		return nil, fmt.Errorf("%w: truck number is required", apperrors.ErrValidation)
	}

	if customer, ok := cache.GetCustomer(ctx, tn); ok {
		return customer, nil
	}

	customer, err := s.Customers.GetByTruckNumber(ctx, tn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if customer != nil {
		cache.SetCustomer(ctx, customer)
	}
	return customer, nil
}

// Upsert creates the customer for a truck or overwrites name/contact in
// place when one already exists. Balance and trip count are never touched
// here; only settlements move them.
func (s *CustomerService) Upsert(ctx context.Context, req *models.UpsertCustomerRequest) (*models.Customer, error) {
	tn := models.NormalizeTruckNumber(req.TruckNumber)
	if req.Name == "" || tn == "" || req.ContactNumber == "" {
		return nil, fmt.Errorf("%w: name, truck number and contact number are required", apperrors.ErrValidation)
	}

	customer, err := s.Customers.GetByTruckNumber(ctx, tn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}

	if customer != nil {
		customer.Name = req.Name
		customer.ContactNumber = req.ContactNumber
		if err := s.Customers.UpdateProfile(ctx, customer); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
		}
	} else {
		customer = &models.Customer{
			Name:          req.Name,
			TruckNumber:   tn,
			ContactNumber: req.ContactNumber,
			Balance:       decimal.Zero,
		}
		if err := s.Customers.Create(ctx, customer); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
		}
	}

	cache.InvalidateCustomer(ctx, tn)
	return customer, nil
}

// UpdateProfile updates name/contact and, when supplied, overwrites the
// balance (an operator correction, outside the normal settlement flow).
func (s *CustomerService) UpdateProfile(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.Customers.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, id)
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.ContactNumber != "" {
		customer.ContactNumber = req.ContactNumber
	}
	if req.Balance != nil {
		customer.Balance = *req.Balance
	}

	if err := s.Customers.UpdateProfile(ctx, customer); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}

	cache.InvalidateCustomer(ctx, customer.TruckNumber)
	return customer, nil
}
