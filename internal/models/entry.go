package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer type selected by the operator at the gate. The gate form makes
// the identity decision explicit instead of silently creating accounts.
const (
	CustomerTypeNew      = "new"
	CustomerTypeExisting = "existing"
)

// Entry is a truck currently on-site awaiting exit. CustomerID stays nil
// until a matching customer exists (backfilled at settlement for new
// customers).
type Entry struct {
	ID             int             `json:"id"`
	EntryNumber    string          `json:"entry_number"`
	TruckNumber    string          `json:"truck_number"`
	ContactNumber  string          `json:"contact_number"`
	CustomerName   string          `json:"customer_name"`
	EmptyWeight    decimal.Decimal `json:"empty_weight"`
	AdvancePayment decimal.Decimal `json:"advance_payment"`
	EntryDate      time.Time       `json:"entry_date"`
	EntryTime      string          `json:"entry_time"`
	Completed      bool            `json:"completed"`
	CustomerID     *int            `json:"customer_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateEntryRequest represents the request body for creating an entry.
// Weights and amounts arrive as JSON numbers or strings; decimal accepts
// both, so the weighbridge display's string output needs no special casing.
type CreateEntryRequest struct {
	TruckNumber    string          `json:"truck_number"`
	ContactNumber  string          `json:"contact_number"`
	CustomerName   string          `json:"customer_name"`
	EmptyWeight    decimal.Decimal `json:"empty_weight"`
	AdvancePayment decimal.Decimal `json:"advance_payment"`
	EntryDate      string          `json:"entry_date"`
	EntryTime      string          `json:"entry_time"`
	CustomerType   string          `json:"customer_type"`
}
