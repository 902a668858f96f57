package services

import (
	"context"

	"weighbridge-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Store interfaces the services operate against. The pgx repositories in
// internal/repositories satisfy them; tests substitute in-memory fakes.

type CustomerStore interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id int) (*models.Customer, error)
	GetByTruckNumber(ctx context.Context, truckNumber string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	UpdateProfile(ctx context.Context, c *models.Customer) error
	UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error
	AdjustTripCount(ctx context.Context, id int, delta int) error
}

type EntryStore interface {
	NextEntryNumber(ctx context.Context) (string, error)
	PeekNextEntryNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, e *models.Entry) error
	Get(ctx context.Context, id int) (*models.Entry, error)
	GetPendingByTruckNumber(ctx context.Context, truckNumber string) (*models.Entry, error)
	List(ctx context.Context) ([]*models.Entry, error)
	ListPending(ctx context.Context) ([]*models.Entry, error)
	MarkCompleted(ctx context.Context, id int, customerID int) error
	Reopen(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	Get(ctx context.Context, id int) (*models.Transaction, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id int) error
	LatestForCustomerExcluding(ctx context.Context, customerID, excludeID int) (*models.Transaction, error)
}
