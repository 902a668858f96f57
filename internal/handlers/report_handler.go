package handlers

import (
	"fmt"
	"net/http"

	"weighbridge-backend/internal/services"
	"weighbridge-backend/internal/timeutil"
	"weighbridge-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// ExportTransactionsCSV streams the ledger in the office reconciliation
// format. Accepts the same startDate/endDate/customerId filters as the
// transaction list.
func (h *ReportHandler) ExportTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.Service.GenerateTransactionsCSV(r.Context(), filter)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
