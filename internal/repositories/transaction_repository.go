package repositories

import (
	"context"
	"errors"
	"fmt"

	"weighbridge-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	DB *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

const transactionColumns = `id, entry_number, entry_id, customer_id, truck_number, contact_number,
	customer_name, empty_weight, loaded_weight, net_weight, rate_per_kg, total_amount,
	advance_paid, old_balance, paid_now, final_balance, payment_method, shed_location,
	entry_date, entry_time, exit_date, exit_time, created_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.EntryNumber, &t.EntryID, &t.CustomerID, &t.TruckNumber,
		&t.ContactNumber, &t.CustomerName, &t.EmptyWeight, &t.LoadedWeight, &t.NetWeight,
		&t.RatePerKg, &t.TotalAmount, &t.AdvancePaid, &t.OldBalance, &t.PaidNow,
		&t.FinalBalance, &t.PaymentMethod, &t.ShedLocation,
		&t.EntryDate, &t.EntryTime, &t.ExitDate, &t.ExitTime, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO transactions(entry_number, entry_id, customer_id, truck_number,
             contact_number, customer_name, empty_weight, loaded_weight, net_weight,
             rate_per_kg, total_amount, advance_paid, old_balance, paid_now, final_balance,
             payment_method, shed_location, entry_date, entry_time, exit_date, exit_time)
         VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
         RETURNING id, created_at`,
		t.EntryNumber, t.EntryID, t.CustomerID, t.TruckNumber,
		t.ContactNumber, t.CustomerName, t.EmptyWeight, t.LoadedWeight, t.NetWeight,
		t.RatePerKg, t.TotalAmount, t.AdvancePaid, t.OldBalance, t.PaidNow, t.FinalBalance,
		t.PaymentMethod, t.ShedLocation, t.EntryDate, t.EntryTime, t.ExitDate, t.ExitTime,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TransactionRepository) Get(ctx context.Context, id int) (*models.Transaction, error) {
	txn, err := scanTransaction(r.DB.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return txn, err
}

// List returns transactions newest exit first, optionally narrowed by
// exit-date range and/or customer.
func (r *TransactionRepository) List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var conds []string
	var args []interface{}

	if filter.StartDate != nil && filter.EndDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("exit_date >= $%d", len(args)))
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("exit_date <= $%d", len(args)))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY exit_date DESC, created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, t *models.Transaction) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE transactions SET loaded_weight=$1, net_weight=$2, rate_per_kg=$3,
             total_amount=$4, paid_now=$5, final_balance=$6, payment_method=$7, shed_location=$8
         WHERE id=$9`,
		t.LoadedWeight, t.NetWeight, t.RatePerKg, t.TotalAmount, t.PaidNow,
		t.FinalBalance, t.PaymentMethod, t.ShedLocation, t.ID)
	return err
}

func (r *TransactionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	return err
}

// LatestForCustomerExcluding returns the newest transaction (by creation
// order) for a customer, skipping one id, or (nil, nil) when none remains.
// Reversal uses it to roll the balance back to the last surviving
// settlement.
func (r *TransactionRepository) LatestForCustomerExcluding(ctx context.Context, customerID, excludeID int) (*models.Transaction, error) {
	txn, err := scanTransaction(r.DB.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions
         WHERE customer_id=$1 AND id<>$2
         ORDER BY created_at DESC LIMIT 1`, customerID, excludeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return txn, err
}
