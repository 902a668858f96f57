package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the running account for one truck. The truck number is the
// sole uniqueness key; contact numbers are shared between trucks and carry
// no constraint. Balance is positive when the customer owes the yard.
type Customer struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	TruckNumber       string          `json:"truck_number"`
	ContactNumber     string          `json:"contact_number"`
	Balance           decimal.Decimal `json:"balance"`
	TotalTransactions int             `json:"total_transactions"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// UpsertCustomerRequest creates or overwrites the customer for a truck.
type UpsertCustomerRequest struct {
	Name          string `json:"name"`
	TruckNumber   string `json:"truck_number"`
	ContactNumber string `json:"contact_number"`
}

// UpdateCustomerRequest updates profile fields; Balance is optional and
// overwrites the stored balance when present.
type UpdateCustomerRequest struct {
	Name          string           `json:"name"`
	ContactNumber string           `json:"contact_number"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
}

// NormalizeTruckNumber uppercases and trims a truck number. Every lookup and
// write goes through this so "abc-123 " and "ABC-123" hit the same account.
func NormalizeTruckNumber(truckNumber string) string {
	return strings.ToUpper(strings.TrimSpace(truckNumber))
}
