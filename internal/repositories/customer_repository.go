package repositories

import (
	"context"
	"errors"

	"weighbridge-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, name, truck_number, contact_number, balance, total_transactions, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.TruckNumber, &c.ContactNumber,
		&c.Balance, &c.TotalTransactions, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(name, truck_number, contact_number, balance, total_transactions)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		c.Name, c.TruckNumber, c.ContactNumber, c.Balance, c.TotalTransactions,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Get returns (nil, nil) when the id does not exist.
func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	customer, err := scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

// GetByTruckNumber returns (nil, nil) when no customer exists for the truck.
// Callers must normalize the truck number first.
func (r *CustomerRepository) GetByTruckNumber(ctx context.Context, truckNumber string) (*models.Customer, error) {
	customer, err := scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE truck_number=$1`, truckNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) UpdateProfile(ctx context.Context, c *models.Customer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET name=$1, contact_number=$2, balance=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		c.Name, c.ContactNumber, c.Balance, c.ID)
	return err
}

// UpdateBalance overwrites the stored balance. It is an absolute set, not a
// delta: a customer's balance is always the final balance of their most
// recent settlement.
func (r *CustomerRepository) UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET balance=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		balance, id)
	return err
}

// AdjustTripCount moves total_transactions by delta, clamped at zero.
func (r *CustomerRepository) AdjustTripCount(ctx context.Context, id int, delta int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers
         SET total_transactions=GREATEST(0, total_transactions + $1), updated_at=CURRENT_TIMESTAMP
         WHERE id=$2`,
		delta, id)
	return err
}
