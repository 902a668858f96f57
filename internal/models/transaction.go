package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodBank = "bank"
)

// Transaction is the settled exit record. Truck, contact, name and empty
// weight are copied from the entry at settlement time so a later profile
// edit never alters an old receipt.
type Transaction struct {
	ID            int             `json:"id"`
	EntryNumber   string          `json:"entry_number"`
	EntryID       int             `json:"entry_id"`
	CustomerID    int             `json:"customer_id"`
	TruckNumber   string          `json:"truck_number"`
	ContactNumber string          `json:"contact_number"`
	CustomerName  string          `json:"customer_name"`
	EmptyWeight   decimal.Decimal `json:"empty_weight"`
	LoadedWeight  decimal.Decimal `json:"loaded_weight"`
	NetWeight     decimal.Decimal `json:"net_weight"`
	RatePerKg     decimal.Decimal `json:"rate_per_kg"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AdvancePaid   decimal.Decimal `json:"advance_paid"`
	OldBalance    decimal.Decimal `json:"old_balance"`
	PaidNow       decimal.Decimal `json:"paid_now"`
	FinalBalance  decimal.Decimal `json:"final_balance"`
	PaymentMethod string          `json:"payment_method"`
	ShedLocation  string          `json:"shed_location"`
	EntryDate     time.Time       `json:"entry_date"`
	EntryTime     string          `json:"entry_time"`
	ExitDate      time.Time       `json:"exit_date"`
	ExitTime      string          `json:"exit_time"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SettleExitRequest completes a pending entry into a transaction.
// OldBalance and AdvancePaid are supplied by the operator's form (captured
// at search time) rather than re-read inside the engine.
type SettleExitRequest struct {
	EntryID       int             `json:"entry_id"`
	LoadedWeight  decimal.Decimal `json:"loaded_weight"`
	RatePerKg     decimal.Decimal `json:"rate_per_kg"`
	PaidNow       decimal.Decimal `json:"paid_now"`
	OldBalance    decimal.Decimal `json:"old_balance"`
	AdvancePaid   decimal.Decimal `json:"advance_paid"`
	ShedLocation  string          `json:"shed_location"`
	PaymentMethod string          `json:"payment_method"`
	ExitDate      string          `json:"exit_date"`
	ExitTime      string          `json:"exit_time"`
}

// UpdateTransactionRequest patches a settled transaction. Nil fields are
// left untouched; weight/rate/payment changes trigger the recompute rules
// in the settlement engine.
type UpdateTransactionRequest struct {
	LoadedWeight  *decimal.Decimal `json:"loaded_weight,omitempty"`
	RatePerKg     *decimal.Decimal `json:"rate_per_kg,omitempty"`
	PaidNow       *decimal.Decimal `json:"paid_now,omitempty"`
	ShedLocation  *string          `json:"shed_location,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
}

// TransactionFilter narrows listings by exit-date range and/or customer.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CustomerID *int
}
