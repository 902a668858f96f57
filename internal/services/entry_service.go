package services

import (
	"context"
	"fmt"

	"weighbridge-backend/internal/apperrors"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/timeutil"
)

// EntryService coordinates the gate-in side of the lifecycle. It owns the
// customer-type gate rule: the operator must say whether the truck belongs
// to a new or an existing customer, and the claim is checked against the
// directory before an entry is written. The customer record itself is never
// created here; only settlement materializes customers.
type EntryService struct {
	Entries   EntryStore
	Customers CustomerStore
}

func NewEntryService(entries EntryStore, customers CustomerStore) *EntryService {
	return &EntryService{Entries: entries, Customers: customers}
}

func (s *EntryService) CreateEntry(ctx context.Context, req *models.CreateEntryRequest) (*models.Entry, error) {
	tn := models.NormalizeTruckNumber(req.TruckNumber)
	if tn == "" || req.ContactNumber == "" || req.CustomerName == "" {
		return nil, fmt.Errorf("%w: truck number, contact number and customer name are required", apperrors.ErrValidation)
	}
	if !req.EmptyWeight.IsPositive() {
		return nil, fmt.Errorf("%w: empty weight must be positive", apperrors.ErrValidation)
	}
	if req.AdvancePayment.IsNegative() {
		return nil, fmt.Errorf("%w: advance payment cannot be negative", apperrors.ErrValidation)
	}
	if req.CustomerType != models.CustomerTypeNew && req.CustomerType != models.CustomerTypeExisting {
		return nil, fmt.Errorf("%w: customer type must be 'new' or 'existing'", apperrors.ErrValidation)
	}

	entryDate, err := timeutil.ParseDate(req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.EntryDate)
	}
	if req.EntryTime == "" {
		return nil, fmt.Errorf("%w: entry time is required", apperrors.ErrValidation)
	}

	customer, err := s.Customers.GetByTruckNumber(ctx, tn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}

	// The operator's new/existing claim must match the directory.
	if req.CustomerType == models.CustomerTypeNew && customer != nil {
		return nil, fmt.Errorf("%w: truck %s already exists, use the existing-customer option", apperrors.ErrConflict, tn)
	}
	if req.CustomerType == models.CustomerTypeExisting && customer == nil {
		return nil, fmt.Errorf("%w: truck %s not found, use the new-customer option", apperrors.ErrConflict, tn)
	}

	// One open entry per truck at a time. Checked here rather than by a DB
	// constraint; the single-writer model makes the window acceptable.
	pending, err := s.Entries.GetPendingByTruckNumber(ctx, tn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if pending != nil {
		return nil, fmt.Errorf("%w: truck %s already has pending entry %s", apperrors.ErrConflict, tn, pending.EntryNumber)
	}

	number, err := s.Entries.NextEntryNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}

	entry := &models.Entry{
		EntryNumber:    number,
		TruckNumber:    tn,
		ContactNumber:  req.ContactNumber,
		CustomerName:   req.CustomerName,
		EmptyWeight:    req.EmptyWeight,
		AdvancePayment: req.AdvancePayment,
		EntryDate:      entryDate,
		EntryTime:      req.EntryTime,
		Completed:      false,
	}
	if customer != nil {
		entry.CustomerID = &customer.ID
	}

	if err := s.Entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	return entry, nil
}

// FindPendingByTruckNumber returns the open entry for a truck, or nil.
func (s *EntryService) FindPendingByTruckNumber(ctx context.Context, truckNumber string) (*models.Entry, error) {
	tn := models.NormalizeTruckNumber(truckNumber)
	if tn == "" {
		return nil, fmt.Errorf("%w: truck number is required", apperrors.ErrValidation)
	}
	entry, err := s.Entries.GetPendingByTruckNumber(ctx, tn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	return entry, nil
}

func (s *EntryService) ListEntries(ctx context.Context) ([]*models.Entry, error) {
	return s.Entries.List(ctx)
}

func (s *EntryService) ListPendingEntries(ctx context.Context) ([]*models.Entry, error) {
	return s.Entries.ListPending(ctx)
}

// NextEntryNumber previews the next receipt number for the gate form.
func (s *EntryService) NextEntryNumber(ctx context.Context) (string, error) {
	return s.Entries.PeekNextEntryNumber(ctx)
}

// DeleteEntry hard-removes an entry regardless of completion state. The
// entry number is not reissued.
func (s *EntryService) DeleteEntry(ctx context.Context, id int) error {
	entry, err := s.Entries.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if entry == nil {
		return fmt.Errorf("%w: entry %d", apperrors.ErrNotFound, id)
	}
	if err := s.Entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	return nil
}
