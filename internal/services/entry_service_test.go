package services

import (
	"context"
	"testing"

	"weighbridge-backend/internal/apperrors"
	"weighbridge-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntryRequest() *models.CreateEntryRequest {
	return &models.CreateEntryRequest{
		TruckNumber:    "abc-123 ",
		ContactNumber:  "9876543210",
		CustomerName:   "Ramesh Transport",
		EmptyWeight:    dec("1000"),
		AdvancePayment: dec("500"),
		EntryDate:      "2026-08-30",
		EntryTime:      "09:15:00",
		CustomerType:   models.CustomerTypeNew,
	}
}

func TestCreateEntryNormalizesTruckNumber(t *testing.T) {
	entries := newFakeEntryStore()
	customers := newFakeCustomerStore()
	svc := NewEntryService(entries, customers)

	entry, err := svc.CreateEntry(context.Background(), validEntryRequest())
	require.NoError(t, err)

	assert.Equal(t, "ABC-123", entry.TruckNumber)
	assert.Equal(t, "0001", entry.EntryNumber)
	assert.False(t, entry.Completed)
	assert.Nil(t, entry.CustomerID, "new-customer entries carry no account link yet")
}

func TestCreateEntryValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateEntryRequest)
	}{
		{"missing truck number", func(r *models.CreateEntryRequest) { r.TruckNumber = "  " }},
		{"missing contact", func(r *models.CreateEntryRequest) { r.ContactNumber = "" }},
		{"missing name", func(r *models.CreateEntryRequest) { r.CustomerName = "" }},
		{"zero empty weight", func(r *models.CreateEntryRequest) { r.EmptyWeight = decimal.Zero }},
		{"negative advance", func(r *models.CreateEntryRequest) { r.AdvancePayment = dec("-100") }},
		{"bad customer type", func(r *models.CreateEntryRequest) { r.CustomerType = "regular" }},
		{"bad entry date", func(r *models.CreateEntryRequest) { r.EntryDate = "30-08-2026" }},
		{"missing entry time", func(r *models.CreateEntryRequest) { r.EntryTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntryService(newFakeEntryStore(), newFakeCustomerStore())
			req := validEntryRequest()
			tt.mutate(req)
			_, err := svc.CreateEntry(context.Background(), req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestCreateEntryCustomerTypeMismatch(t *testing.T) {
	entries := newFakeEntryStore()
	customers := newFakeCustomerStore()
	require.NoError(t, customers.Create(context.Background(), &models.Customer{
		Name:          "Ramesh Transport",
		TruckNumber:   "ABC-123",
		ContactNumber: "9876543210",
		Balance:       decimal.Zero,
	}))
	svc := NewEntryService(entries, customers)

	// Truck already has an account but the operator claims new.
	req := validEntryRequest()
	req.CustomerType = models.CustomerTypeNew
	_, err := svc.CreateEntry(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Unknown truck claimed as existing.
	req = validEntryRequest()
	req.TruckNumber = "XYZ-999"
	req.CustomerType = models.CustomerTypeExisting
	_, err = svc.CreateEntry(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateEntryLinksExistingCustomer(t *testing.T) {
	entries := newFakeEntryStore()
	customers := newFakeCustomerStore()
	customer := &models.Customer{
		Name:          "Ramesh Transport",
		TruckNumber:   "ABC-123",
		ContactNumber: "9876543210",
		Balance:       dec("12000"),
	}
	require.NoError(t, customers.Create(context.Background(), customer))
	svc := NewEntryService(entries, customers)

	req := validEntryRequest()
	req.CustomerType = models.CustomerTypeExisting
	entry, err := svc.CreateEntry(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, entry.CustomerID)
	assert.Equal(t, customer.ID, *entry.CustomerID)
}

func TestCreateEntryRejectsSecondPendingEntry(t *testing.T) {
	svc := NewEntryService(newFakeEntryStore(), newFakeCustomerStore())

	_, err := svc.CreateEntry(context.Background(), validEntryRequest())
	require.NoError(t, err)

	_, err = svc.CreateEntry(context.Background(), validEntryRequest())
	assert.ErrorIs(t, err, apperrors.ErrConflict, "one open entry per truck at a time")
}

func TestEntryNumbersAdvancePerEntry(t *testing.T) {
	entries := newFakeEntryStore()
	svc := NewEntryService(entries, newFakeCustomerStore())

	first, err := svc.CreateEntry(context.Background(), validEntryRequest())
	require.NoError(t, err)

	req := validEntryRequest()
	req.TruckNumber = "XYZ-999"
	second, err := svc.CreateEntry(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "0001", first.EntryNumber)
	assert.Equal(t, "0002", second.EntryNumber)

	next, err := svc.NextEntryNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0003", next)
}

func TestDeleteEntryKeepsNumberSequence(t *testing.T) {
	entries := newFakeEntryStore()
	svc := NewEntryService(entries, newFakeCustomerStore())

	entry, err := svc.CreateEntry(context.Background(), validEntryRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(context.Background(), entry.ID))

	// The consumed number is not reissued.
	next, err := svc.NextEntryNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0002", next)
}

func TestDeleteUnknownEntry(t *testing.T) {
	svc := NewEntryService(newFakeEntryStore(), newFakeCustomerStore())
	err := svc.DeleteEntry(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindPendingByTruckNumber(t *testing.T) {
	entries := newFakeEntryStore()
	svc := NewEntryService(entries, newFakeCustomerStore())

	created, err := svc.CreateEntry(context.Background(), validEntryRequest())
	require.NoError(t, err)

	found, err := svc.FindPendingByTruckNumber(context.Background(), " abc-123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	none, err := svc.FindPendingByTruckNumber(context.Background(), "XYZ-999")
	require.NoError(t, err)
	assert.Nil(t, none, "no pending entry returns nil, not an error")
}
