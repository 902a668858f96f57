package repositories

import (
	"context"
	"errors"

	"weighbridge-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EntryRepository struct {
	DB *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{DB: db}
}

const entryColumns = `id, entry_number, truck_number, contact_number, customer_name,
	empty_weight, advance_payment, entry_date, entry_time, completed, customer_id, created_at`

func scanEntry(row pgx.Row) (*models.Entry, error) {
	var e models.Entry
	err := row.Scan(&e.ID, &e.EntryNumber, &e.TruckNumber, &e.ContactNumber, &e.CustomerName,
		&e.EmptyWeight, &e.AdvancePayment, &e.EntryDate, &e.EntryTime, &e.Completed,
		&e.CustomerID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// NextEntryNumber consumes the entry number sequence. The sequence counts
// every entry ever created and is never decremented by deletes, so receipt
// numbers stay monotonic. Past 9999 the number simply grows to five digits.
func (r *EntryRepository) NextEntryNumber(ctx context.Context) (string, error) {
	var number string
	err := r.DB.QueryRow(ctx,
		`SELECT LPAD(nextval('entry_number_seq')::text, 4, '0')`).Scan(&number)
	return number, err
}

// PeekNextEntryNumber reports the number the next entry will get without
// consuming it (used by the gate form preview).
func (r *EntryRepository) PeekNextEntryNumber(ctx context.Context) (string, error) {
	var number string
	err := r.DB.QueryRow(ctx,
		`SELECT LPAD((last_value + CASE WHEN is_called THEN 1 ELSE 0 END)::text, 4, '0')
         FROM entry_number_seq`).Scan(&number)
	return number, err
}

func (r *EntryRepository) Create(ctx context.Context, e *models.Entry) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO entries(entry_number, truck_number, contact_number, customer_name,
             empty_weight, advance_payment, entry_date, entry_time, completed, customer_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING id, created_at`,
		e.EntryNumber, e.TruckNumber, e.ContactNumber, e.CustomerName,
		e.EmptyWeight, e.AdvancePayment, e.EntryDate, e.EntryTime, e.Completed, e.CustomerID,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *EntryRepository) Get(ctx context.Context, id int) (*models.Entry, error) {
	entry, err := scanEntry(r.DB.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

// GetPendingByTruckNumber returns the open entry for a truck, or (nil, nil).
// At most one pending entry per truck is enforced by the entry service
// before insert, not by a database constraint.
func (r *EntryRepository) GetPendingByTruckNumber(ctx context.Context, truckNumber string) (*models.Entry, error) {
	entry, err := scanEntry(r.DB.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM entries
         WHERE truck_number=$1 AND completed=FALSE
         ORDER BY created_at DESC LIMIT 1`, truckNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

func (r *EntryRepository) List(ctx context.Context) ([]*models.Entry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY created_at DESC`)
}

func (r *EntryRepository) ListPending(ctx context.Context) ([]*models.Entry, error) {
	return r.list(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE completed=FALSE ORDER BY created_at DESC`)
}

func (r *EntryRepository) list(ctx context.Context, query string) ([]*models.Entry, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *EntryRepository) MarkCompleted(ctx context.Context, id int, customerID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE entries SET completed=TRUE, customer_id=$1 WHERE id=$2`, customerID, id)
	return err
}

func (r *EntryRepository) Reopen(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE entries SET completed=FALSE WHERE id=$1`, id)
	return err
}

func (r *EntryRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM entries WHERE id=$1`, id)
	return err
}
