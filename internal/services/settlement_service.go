package services

import (
	"context"
	"fmt"

	"weighbridge-backend/internal/apperrors"
	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/metrics"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// SettlementService is the money-math core. It turns a pending entry into a
// settled transaction, keeps the customer's balance equal to the final
// balance of their most recent transaction, and walks that chain backwards
// on deletion.
//
// The three writes inside Settle (transaction insert, customer update,
// entry update) are one logical unit but not a database transaction: a
// failure after the insert is surfaced to the caller naming the record that
// needs manual reconciliation, never swallowed.
type SettlementService struct {
	Entries      EntryStore
	Customers    CustomerStore
	Transactions TransactionStore
}

func NewSettlementService(entries EntryStore, customers CustomerStore, transactions TransactionStore) *SettlementService {
	return &SettlementService{Entries: entries, Customers: customers, Transactions: transactions}
}

// computeFinalBalance applies the settlement equation:
// finalBalance = totalAmount + oldBalance - advancePaid - paidNow.
func computeFinalBalance(totalAmount, oldBalance, advancePaid, paidNow decimal.Decimal) decimal.Decimal {
	return totalAmount.Add(oldBalance).Sub(advancePaid).Sub(paidNow)
}

func validPaymentMethod(method string) bool {
	return method == models.PaymentMethodCash || method == models.PaymentMethodBank
}

// Settle completes the pending entry into a transaction. This is the sole
// place in the system where customer records are created: a truck settling
// its first exit gets its account here, with balance zero, not at the gate.
func (s *SettlementService) Settle(ctx context.Context, req *models.SettleExitRequest) (*models.Transaction, error) {
	if !req.LoadedWeight.IsPositive() {
		return nil, fmt.Errorf("%w: loaded weight must be positive", apperrors.ErrValidation)
	}
	if req.RatePerKg.IsNegative() {
		return nil, fmt.Errorf("%w: rate per kg cannot be negative", apperrors.ErrValidation)
	}
	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCash
	}
	if !validPaymentMethod(method) {
		return nil, fmt.Errorf("%w: payment method must be 'cash' or 'bank'", apperrors.ErrValidation)
	}
	exitDate, err := timeutil.ParseDate(req.ExitDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid exit date %q", apperrors.ErrValidation, req.ExitDate)
	}
	if req.ExitTime == "" {
		return nil, fmt.Errorf("%w: exit time is required", apperrors.ErrValidation)
	}

	entry, err := s.Entries.Get(ctx, req.EntryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entry %d", apperrors.ErrNotFound, req.EntryID)
	}
	if entry.Completed {
		return nil, fmt.Errorf("%w: entry %s is already settled", apperrors.ErrConflict, entry.EntryNumber)
	}

	customer, err := s.Customers.GetByTruckNumber(ctx, entry.TruckNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if customer == nil {
		customer = &models.Customer{
			Name:          entry.CustomerName,
			TruckNumber:   entry.TruckNumber,
			ContactNumber: entry.ContactNumber,
			Balance:       decimal.Zero,
		}
		if err := s.Customers.Create(ctx, customer); err != nil {
			return nil, fmt.Errorf("%w: create customer for truck %s: %v", apperrors.ErrUpstreamStore, entry.TruckNumber, err)
		}
	}

	// Empty weight comes from the entry snapshot; old balance and advance
	// are the operator-confirmed figures from the exit form.
	netWeight := req.LoadedWeight.Sub(entry.EmptyWeight)
	totalAmount := netWeight.Mul(req.RatePerKg)
	finalBalance := computeFinalBalance(totalAmount, req.OldBalance, req.AdvancePaid, req.PaidNow)

	txn := &models.Transaction{
		EntryNumber:   entry.EntryNumber,
		EntryID:       entry.ID,
		CustomerID:    customer.ID,
		TruckNumber:   entry.TruckNumber,
		ContactNumber: entry.ContactNumber,
		CustomerName:  entry.CustomerName,
		EmptyWeight:   entry.EmptyWeight,
		LoadedWeight:  req.LoadedWeight,
		NetWeight:     netWeight,
		RatePerKg:     req.RatePerKg,
		TotalAmount:   totalAmount,
		AdvancePaid:   req.AdvancePaid,
		OldBalance:    req.OldBalance,
		PaidNow:       req.PaidNow,
		FinalBalance:  finalBalance,
		PaymentMethod: method,
		ShedLocation:  req.ShedLocation,
		EntryDate:     entry.EntryDate,
		EntryTime:     entry.EntryTime,
		ExitDate:      exitDate,
		ExitTime:      req.ExitTime,
	}
	if err := s.Transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}

	// From here on the transaction exists; any failure leaves visible
	// partial state and must reach the operator.
	if err := s.Customers.UpdateBalance(ctx, customer.ID, finalBalance); err != nil {
		return nil, fmt.Errorf("%w: transaction %d recorded but balance for customer %d not updated, reconcile manually: %v",
			apperrors.ErrUpstreamStore, txn.ID, customer.ID, err)
	}
	if err := s.Customers.AdjustTripCount(ctx, customer.ID, 1); err != nil {
		return nil, fmt.Errorf("%w: transaction %d recorded but trip count for customer %d not updated, reconcile manually: %v",
			apperrors.ErrUpstreamStore, txn.ID, customer.ID, err)
	}
	if err := s.Entries.MarkCompleted(ctx, entry.ID, customer.ID); err != nil {
		return nil, fmt.Errorf("%w: transaction %d recorded but entry %s still pending, reconcile manually: %v",
			apperrors.ErrUpstreamStore, txn.ID, entry.EntryNumber, err)
	}

	cache.InvalidateCustomer(ctx, entry.TruckNumber)
	metrics.SettlementsTotal.Inc()
	return txn, nil
}

// EditSettlement patches weight/rate/payment fields on a settled
// transaction. Weight or rate changes recompute net weight and total
// amount; only a paid-now change recomputes the final balance (from the
// transaction's stored old balance and advance, not re-derived) and pushes
// it onto the customer. Concurrent edits to different transactions of the
// same customer therefore clobber each other; last write wins.
func (s *SettlementService) EditSettlement(ctx context.Context, id int, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := s.Transactions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if txn == nil {
		return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, id)
	}

	if req.LoadedWeight != nil {
		if !req.LoadedWeight.IsPositive() {
			return nil, fmt.Errorf("%w: loaded weight must be positive", apperrors.ErrValidation)
		}
		txn.LoadedWeight = *req.LoadedWeight
		txn.NetWeight = txn.LoadedWeight.Sub(txn.EmptyWeight)
	}
	if req.RatePerKg != nil {
		if req.RatePerKg.IsNegative() {
			return nil, fmt.Errorf("%w: rate per kg cannot be negative", apperrors.ErrValidation)
		}
		txn.RatePerKg = *req.RatePerKg
	}
	if req.LoadedWeight != nil || req.RatePerKg != nil {
		txn.TotalAmount = txn.NetWeight.Mul(txn.RatePerKg)
	}
	if req.ShedLocation != nil {
		txn.ShedLocation = *req.ShedLocation
	}
	if req.PaymentMethod != nil {
		if !validPaymentMethod(*req.PaymentMethod) {
			return nil, fmt.Errorf("%w: payment method must be 'cash' or 'bank'", apperrors.ErrValidation)
		}
		txn.PaymentMethod = *req.PaymentMethod
	}

	balanceChanged := false
	if req.PaidNow != nil {
		txn.PaidNow = *req.PaidNow
		txn.FinalBalance = computeFinalBalance(txn.TotalAmount, txn.OldBalance, txn.AdvancePaid, txn.PaidNow)
		balanceChanged = true
	}

	if err := s.Transactions.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}

	if balanceChanged {
		if err := s.Customers.UpdateBalance(ctx, txn.CustomerID, txn.FinalBalance); err != nil {
			return nil, fmt.Errorf("%w: transaction %d updated but balance for customer %d not pushed, reconcile manually: %v",
				apperrors.ErrUpstreamStore, txn.ID, txn.CustomerID, err)
		}
		cache.InvalidateCustomer(ctx, txn.TruckNumber)
	}
	return txn, nil
}

// Reverse deletes a transaction and undoes its effect: the entry reopens,
// the trip count drops (floor zero) and the balance rolls back to the final
// balance of the newest surviving transaction, or zero when none remains.
// The balance is recomputed, not decremented: edits overwrite it, so the
// delta is not recoverable in general.
func (s *SettlementService) Reverse(ctx context.Context, id int) error {
	txn, err := s.Transactions.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if txn == nil {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, id)
	}

	if err := s.Entries.Reopen(ctx, txn.EntryID); err != nil {
		return fmt.Errorf("%w: reopen entry %d: %v", apperrors.ErrUpstreamStore, txn.EntryID, err)
	}
	if err := s.Customers.AdjustTripCount(ctx, txn.CustomerID, -1); err != nil {
		return fmt.Errorf("%w: adjust trip count for customer %d: %v", apperrors.ErrUpstreamStore, txn.CustomerID, err)
	}

	latest, err := s.Transactions.LatestForCustomerExcluding(ctx, txn.CustomerID, txn.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	balance := decimal.Zero
	if latest != nil {
		balance = latest.FinalBalance
	}
	if err := s.Customers.UpdateBalance(ctx, txn.CustomerID, balance); err != nil {
		return fmt.Errorf("%w: balance for customer %d not rolled back, reconcile manually: %v",
			apperrors.ErrUpstreamStore, txn.CustomerID, err)
	}

	if err := s.Transactions.Delete(ctx, txn.ID); err != nil {
		return fmt.Errorf("%w: transaction %d reversed but not deleted, reconcile manually: %v",
			apperrors.ErrUpstreamStore, txn.ID, err)
	}

	cache.InvalidateCustomer(ctx, txn.TruckNumber)
	metrics.ReversalsTotal.Inc()
	return nil
}

// GetTransaction fetches one settled transaction.
func (s *SettlementService) GetTransaction(ctx context.Context, id int) (*models.Transaction, error) {
	txn, err := s.Transactions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if txn == nil {
		return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, id)
	}
	return txn, nil
}

// ListTransactions returns settled transactions newest exit first.
func (s *SettlementService) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	return s.Transactions.List(ctx, filter)
}
