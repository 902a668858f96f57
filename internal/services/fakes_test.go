package services

import (
	"context"
	"fmt"
	"time"

	"weighbridge-backend/internal/models"

	"github.com/shopspring/decimal"
)

// In-memory stores backing the service tests. They mirror the repository
// contracts: lookups return (nil, nil) on miss, trip counts clamp at zero,
// and transaction order follows creation order.

type fakeCustomerStore struct {
	customers map[int]*models.Customer
	nextID    int
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: make(map[int]*models.Customer), nextID: 1}
}

func (f *fakeCustomerStore) Create(_ context.Context, c *models.Customer) error {
	c.ID = f.nextID
	f.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomerStore) Get(_ context.Context, id int) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerStore) GetByTruckNumber(_ context.Context, truckNumber string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.TruckNumber == truckNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerStore) List(_ context.Context) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, c := range f.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCustomerStore) UpdateProfile(_ context.Context, c *models.Customer) error {
	stored, ok := f.customers[c.ID]
	if !ok {
		return fmt.Errorf("customer %d not found", c.ID)
	}
	stored.Name = c.Name
	stored.ContactNumber = c.ContactNumber
	stored.Balance = c.Balance
	return nil
}

func (f *fakeCustomerStore) UpdateBalance(_ context.Context, id int, balance decimal.Decimal) error {
	stored, ok := f.customers[id]
	if !ok {
		return fmt.Errorf("customer %d not found", id)
	}
	stored.Balance = balance
	return nil
}

func (f *fakeCustomerStore) AdjustTripCount(_ context.Context, id int, delta int) error {
	stored, ok := f.customers[id]
	if !ok {
		return fmt.Errorf("customer %d not found", id)
	}
	stored.TotalTransactions += delta
	if stored.TotalTransactions < 0 {
		stored.TotalTransactions = 0
	}
	return nil
}

type fakeEntryStore struct {
	entries map[int]*models.Entry
	nextID  int
	seq     int
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{entries: make(map[int]*models.Entry), nextID: 1}
}

func (f *fakeEntryStore) NextEntryNumber(_ context.Context) (string, error) {
	f.seq++
	return fmt.Sprintf("%04d", f.seq), nil
}

func (f *fakeEntryStore) PeekNextEntryNumber(_ context.Context) (string, error) {
	return fmt.Sprintf("%04d", f.seq+1), nil
}

func (f *fakeEntryStore) Create(_ context.Context, e *models.Entry) error {
	e.ID = f.nextID
	f.nextID++
	e.CreatedAt = time.Now()
	cp := *e
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeEntryStore) Get(_ context.Context, id int) (*models.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntryStore) GetPendingByTruckNumber(_ context.Context, truckNumber string) (*models.Entry, error) {
	for _, e := range f.entries {
		if e.TruckNumber == truckNumber && !e.Completed {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryStore) List(_ context.Context) ([]*models.Entry, error) {
	var out []*models.Entry
	for _, e := range f.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeEntryStore) ListPending(_ context.Context) ([]*models.Entry, error) {
	var out []*models.Entry
	for _, e := range f.entries {
		if !e.Completed {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) MarkCompleted(_ context.Context, id int, customerID int) error {
	stored, ok := f.entries[id]
	if !ok {
		return fmt.Errorf("entry %d not found", id)
	}
	stored.Completed = true
	stored.CustomerID = &customerID
	return nil
}

func (f *fakeEntryStore) Reopen(_ context.Context, id int) error {
	stored, ok := f.entries[id]
	if !ok {
		return fmt.Errorf("entry %d not found", id)
	}
	stored.Completed = false
	return nil
}

func (f *fakeEntryStore) Delete(_ context.Context, id int) error {
	delete(f.entries, id)
	return nil
}

type fakeTransactionStore struct {
	txns   map[int]*models.Transaction
	nextID int
	order  []int // creation order, oldest first
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{txns: make(map[int]*models.Transaction), nextID: 1}
}

func (f *fakeTransactionStore) Create(_ context.Context, t *models.Transaction) error {
	t.ID = f.nextID
	f.nextID++
	t.CreatedAt = time.Now()
	cp := *t
	f.txns[t.ID] = &cp
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTransactionStore) Get(_ context.Context, id int) (*models.Transaction, error) {
	t, ok := f.txns[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactionStore) List(_ context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for i := len(f.order) - 1; i >= 0; i-- {
		t, ok := f.txns[f.order[i]]
		if !ok {
			continue
		}
		if filter.CustomerID != nil && t.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			if t.ExitDate.Before(*filter.StartDate) || t.ExitDate.After(*filter.EndDate) {
				continue
			}
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTransactionStore) Update(_ context.Context, t *models.Transaction) error {
	stored, ok := f.txns[t.ID]
	if !ok {
		return fmt.Errorf("transaction %d not found", t.ID)
	}
	stored.LoadedWeight = t.LoadedWeight
	stored.NetWeight = t.NetWeight
	stored.RatePerKg = t.RatePerKg
	stored.TotalAmount = t.TotalAmount
	stored.PaidNow = t.PaidNow
	stored.FinalBalance = t.FinalBalance
	stored.PaymentMethod = t.PaymentMethod
	stored.ShedLocation = t.ShedLocation
	return nil
}

func (f *fakeTransactionStore) Delete(_ context.Context, id int) error {
	delete(f.txns, id)
	return nil
}

func (f *fakeTransactionStore) LatestForCustomerExcluding(_ context.Context, customerID, excludeID int) (*models.Transaction, error) {
	for i := len(f.order) - 1; i >= 0; i-- {
		t, ok := f.txns[f.order[i]]
		if !ok || t.ID == excludeID || t.CustomerID != customerID {
			continue
		}
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

// Failing variants for the partial-failure paths: the write that follows a
// successful transaction insert errors out while everything before it
// succeeds normally.

type failingCustomerStore struct {
	*fakeCustomerStore
	updateBalanceErr   error
	adjustTripCountErr error
}

func (f *failingCustomerStore) UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error {
	if f.updateBalanceErr != nil {
		return f.updateBalanceErr
	}
	return f.fakeCustomerStore.UpdateBalance(ctx, id, balance)
}

func (f *failingCustomerStore) AdjustTripCount(ctx context.Context, id int, delta int) error {
	if f.adjustTripCountErr != nil {
		return f.adjustTripCountErr
	}
	return f.fakeCustomerStore.AdjustTripCount(ctx, id, delta)
}

type failingEntryStore struct {
	*fakeEntryStore
	markCompletedErr error
}

func (f *failingEntryStore) MarkCompleted(ctx context.Context, id int, customerID int) error {
	if f.markCompletedErr != nil {
		return f.markCompletedErr
	}
	return f.fakeEntryStore.MarkCompleted(ctx, id, customerID)
}
