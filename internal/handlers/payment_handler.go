package handlers

import (
	"net/http"
	"strconv"

	"weighbridge-backend/internal/services"
	"weighbridge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Service *services.RazorpayService
}

func NewPaymentHandler(s *services.RazorpayService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// CreatePaymentLink issues a Razorpay link for a customer's outstanding
// balance so it can be cleared online before the next trip.
func (h *PaymentHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	if !h.Service.Enabled() {
		utils.Error(w, http.StatusServiceUnavailable, "Payment links are not configured")
		return
	}

	customerID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	link, err := h.Service.CreatePaymentLink(r.Context(), customerID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, link)
}
