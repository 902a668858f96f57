package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTransaction(t *testing.T, store *fakeTransactionStore, exitDate string) *models.Transaction {
	t.Helper()
	entryDate, err := timeutil.ParseDate("2026-08-30")
	require.NoError(t, err)
	exit, err := timeutil.ParseDate(exitDate)
	require.NoError(t, err)

	txn := &models.Transaction{
		EntryNumber:   "0001",
		EntryID:       1,
		CustomerID:    1,
		TruckNumber:   "ABC-123",
		ContactNumber: "9876543210",
		CustomerName:  "Ramesh Transport",
		EmptyWeight:   dec("1000"),
		LoadedWeight:  dec("3000"),
		NetWeight:     dec("2000"),
		RatePerKg:     dec("20"),
		TotalAmount:   dec("40000"),
		AdvancePaid:   dec("500"),
		OldBalance:    dec("0"),
		PaidNow:       dec("0"),
		FinalBalance:  dec("39500"),
		PaymentMethod: models.PaymentMethodCash,
		ShedLocation:  "Shed 2",
		EntryDate:     entryDate,
		EntryTime:     "09:15:00",
		ExitDate:      exit,
		ExitTime:      "14:30:00",
	}
	require.NoError(t, store.Create(context.Background(), txn))
	return txn
}

func TestGenerateTransactionsCSV(t *testing.T) {
	store := newFakeTransactionStore()
	seedTransaction(t, store, "2026-08-30")
	svc := NewReportService(store)

	data, err := svc.GenerateTransactionsCSV(context.Background(), models.TransactionFilter{})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one row")

	header := records[0]
	assert.Equal(t, "Entry No", header[0])
	assert.Equal(t, "Final Balance", header[12])

	row := records[1]
	assert.Equal(t, "0001", row[0])
	assert.Equal(t, "ABC-123", row[1])
	assert.Equal(t, "2000.000", row[6])
	assert.Equal(t, "40000.00", row[8])
	assert.Equal(t, "39500.00", row[12])
	assert.Equal(t, "2026-08-30", row[17])
}

func TestGenerateTransactionsCSVEmptyLedger(t *testing.T) {
	svc := NewReportService(newFakeTransactionStore())

	data, err := svc.GenerateTransactionsCSV(context.Background(), models.TransactionFilter{})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestGenerateReceiptPDF(t *testing.T) {
	store := newFakeTransactionStore()
	txn := seedTransaction(t, store, "2026-08-30")
	svc := NewReportService(store)

	data, err := svc.GenerateReceiptPDF(txn)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
