package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type CustomerHandler struct {
	Service *services.CustomerService
}

func NewCustomerHandler(s *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: s}
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.ListCustomers(r.Context())
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customers)
}

// FindByTruckNumber answers the gate form's lookup. A truck with no account
// yet returns JSON null, not an error; the form switches to new-customer
// mode on null.
func (h *CustomerHandler) FindByTruckNumber(w http.ResponseWriter, r *http.Request) {
	truckNumber := r.URL.Query().Get("truckNumber")
	if truckNumber == "" {
		utils.Error(w, http.StatusBadRequest, "truckNumber parameter is required")
		return
	}

	customer, err := h.Service.FindByTruckNumber(r.Context(), truckNumber)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) UpsertCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.Service.Upsert(r.Context(), &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	var req models.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.Service.UpdateProfile(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}
