package services

import (
	"context"
	"fmt"

	"weighbridge-backend/internal/apperrors"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// RazorpayService creates payment links so customers can clear an
// outstanding balance online instead of handing cash over at the next
// trip. Enabled only when API keys are configured.
type RazorpayService struct {
	customers CustomerStore
	keyID     string
	keySecret string
}

func NewRazorpayService(keyID, keySecret string, customers CustomerStore) *RazorpayService {
	return &RazorpayService{
		customers: customers,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// Enabled reports whether payment-link creation is configured.
func (s *RazorpayService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// PaymentLink is the subset of the Razorpay response the yard UI needs.
type PaymentLink struct {
	ReferenceID string `json:"reference_id"`
	ShortURL    string `json:"short_url"`
	AmountPaise int64  `json:"amount_paise"`
}

// CreatePaymentLink builds a link for the customer's current outstanding
// balance. Fails when the balance is zero or in credit.
func (s *RazorpayService) CreatePaymentLink(ctx context.Context, customerID int) (*PaymentLink, error) {
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamStore, err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %d", apperrors.ErrNotFound, customerID)
	}
	if !customer.Balance.IsPositive() {
		return nil, fmt.Errorf("%w: customer %s has no outstanding balance", apperrors.ErrValidation, customer.TruckNumber)
	}

	// Razorpay amounts are integer paise.
	amountPaise := customer.Balance.Mul(decimalHundred).Round(0).IntPart()
	referenceID := uuid.NewString()

	client := razorpay.NewClient(s.keyID, s.keySecret)
	data := map[string]interface{}{
		"amount":       amountPaise,
		"currency":     "INR",
		"reference_id": referenceID,
		"description":  fmt.Sprintf("Outstanding balance for truck %s", customer.TruckNumber),
		"customer": map[string]interface{}{
			"name":    customer.Name,
			"contact": customer.ContactNumber,
		},
		"notes": map[string]interface{}{
			"truck_number": customer.TruckNumber,
		},
	}

	link, err := client.PaymentLink.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: razorpay: %v", apperrors.ErrUpstreamStore, err)
	}

	shortURL, _ := link["short_url"].(string)
	return &PaymentLink{
		ReferenceID: referenceID,
		ShortURL:    shortURL,
		AmountPaise: amountPaise,
	}, nil
}
