package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/monitoring"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/internal/timeutil"
	"weighbridge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type TransactionHandler struct {
	Service *services.SettlementService
	Reports *services.ReportService
	Board   *monitoring.Server
}

func NewTransactionHandler(s *services.SettlementService, reports *services.ReportService, board *monitoring.Server) *TransactionHandler {
	return &TransactionHandler{Service: s, Reports: reports, Board: board}
}

func parseFilter(r *http.Request) (models.TransactionFilter, error) {
	var filter models.TransactionFilter
	q := r.URL.Query()
	if v := q.Get("startDate"); v != "" {
		t, err := timeutil.ParseDate(v)
		if err != nil {
			return filter, fmt.Errorf("invalid startDate %q", v)
		}
		filter.StartDate = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := timeutil.ParseDate(v)
		if err != nil {
			return filter, fmt.Errorf("invalid endDate %q", v)
		}
		filter.EndDate = &t
	}
	if v := q.Get("customerId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("invalid customerId %q", v)
		}
		filter.CustomerID = &id
	}
	return filter, nil
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	txns, err := h.Service.ListTransactions(r.Context(), filter)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, txns)
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	txn, err := h.Service.GetTransaction(r.Context(), id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, txn)
}

// Settle closes a pending entry into a transaction and hands back the full
// settlement record for the receipt screen.
func (h *TransactionHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req models.SettleExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.Service.Settle(r.Context(), &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	if h.Board != nil {
		h.Board.Publish(monitoring.Event{
			Type:        "exit_settled",
			EntryNumber: txn.EntryNumber,
			TruckNumber: txn.TruckNumber,
			Message:     fmt.Sprintf("Truck %s settled, final balance Rs. %s", txn.TruckNumber, txn.FinalBalance.StringFixed(2)),
		})
	}
	utils.JSON(w, http.StatusCreated, txn)
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var req models.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.Service.EditSettlement(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, txn)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	txn, err := h.Service.GetTransaction(r.Context(), id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	if err := h.Service.Reverse(r.Context(), id); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	if h.Board != nil {
		h.Board.Publish(monitoring.Event{
			Type:        "transaction_reversed",
			EntryNumber: txn.EntryNumber,
			TruckNumber: txn.TruckNumber,
			Message:     fmt.Sprintf("Settlement %s reversed, entry reopened", txn.EntryNumber),
		})
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// Receipt streams the printable PDF for one settled transaction.
func (h *TransactionHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	txn, err := h.Service.GetTransaction(r.Context(), id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	pdf, err := h.Reports.GenerateReceiptPDF(txn)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", txn.EntryNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
