package services

import (
	"context"
	"testing"

	"weighbridge-backend/internal/apperrors"
	"weighbridge-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCreatesWithZeroBalance(t *testing.T) {
	store := newFakeCustomerStore()
	svc := NewCustomerService(store)

	customer, err := svc.Upsert(context.Background(), &models.UpsertCustomerRequest{
		Name:          "Ramesh Transport",
		TruckNumber:   "abc-123",
		ContactNumber: "9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC-123", customer.TruckNumber)
	assert.True(t, customer.Balance.IsZero())
	assert.Equal(t, 0, customer.TotalTransactions)
}

func TestUpsertOverwritesProfileOnly(t *testing.T) {
	store := newFakeCustomerStore()
	svc := NewCustomerService(store)

	existing := &models.Customer{
		Name:          "Ramesh Transport",
		TruckNumber:   "ABC-123",
		ContactNumber: "9876543210",
		Balance:       dec("12000"),
	}
	require.NoError(t, store.Create(context.Background(), existing))
	require.NoError(t, store.AdjustTripCount(context.Background(), existing.ID, 5))

	updated, err := svc.Upsert(context.Background(), &models.UpsertCustomerRequest{
		Name:          "Suresh Transport",
		TruckNumber:   "ABC-123",
		ContactNumber: "9000000000",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID, "same truck keeps the same account")
	assert.Equal(t, "Suresh Transport", updated.Name)

	stored, err := store.Get(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(dec("12000")), "upsert never touches the balance")
	assert.Equal(t, 5, stored.TotalTransactions, "upsert never touches the trip count")
}

func TestUpsertValidation(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerStore())
	_, err := svc.Upsert(context.Background(), &models.UpsertCustomerRequest{
		Name:        "Ramesh Transport",
		TruckNumber: "ABC-123",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFindByTruckNumberMissReturnsNil(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerStore())

	customer, err := svc.FindByTruckNumber(context.Background(), "XYZ-999")
	require.NoError(t, err)
	assert.Nil(t, customer)

	_, err = svc.FindByTruckNumber(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateProfileOverwritesBalanceWhenSupplied(t *testing.T) {
	store := newFakeCustomerStore()
	svc := NewCustomerService(store)

	customer := &models.Customer{
		Name:          "Ramesh Transport",
		TruckNumber:   "ABC-123",
		ContactNumber: "9876543210",
		Balance:       dec("12000"),
	}
	require.NoError(t, store.Create(context.Background(), customer))

	corrected := dec("9500")
	updated, err := svc.UpdateProfile(context.Background(), customer.ID, &models.UpdateCustomerRequest{
		Name:    "Ramesh & Sons",
		Balance: &corrected,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ramesh & Sons", updated.Name)
	assert.Equal(t, "9876543210", updated.ContactNumber, "empty fields are left untouched")
	assert.True(t, updated.Balance.Equal(dec("9500")))
}

func TestUpdateProfileUnknownCustomer(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerStore())
	_, err := svc.UpdateProfile(context.Background(), 42, &models.UpdateCustomerRequest{Name: "X"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
