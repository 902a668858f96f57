package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/monitoring"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type EntryHandler struct {
	Service *services.EntryService
	Board   *monitoring.Server
}

func NewEntryHandler(s *services.EntryService, board *monitoring.Server) *EntryHandler {
	return &EntryHandler{Service: s, Board: board}
}

func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListEntries(r.Context())
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

func (h *EntryHandler) ListPendingEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListPendingEntries(r.Context())
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

// FindPendingByTruckNumber serves the exit form: the operator types a truck
// number and gets back the open entry, or JSON null when the truck has no
// pending entry.
func (h *EntryHandler) FindPendingByTruckNumber(w http.ResponseWriter, r *http.Request) {
	truckNumber := r.URL.Query().Get("truckNumber")
	if truckNumber == "" {
		utils.Error(w, http.StatusBadRequest, "truckNumber parameter is required")
		return
	}

	entry, err := h.Service.FindPendingByTruckNumber(r.Context(), truckNumber)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

// NextEntryNumber previews the receipt number the next gate-in will get.
func (h *EntryHandler) NextEntryNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.Service.NextEntryNumber(r.Context())
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"entryNumber": number})
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.Service.CreateEntry(r.Context(), &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	if h.Board != nil {
		h.Board.Publish(monitoring.Event{
			Type:        "entry_created",
			EntryNumber: entry.EntryNumber,
			TruckNumber: entry.TruckNumber,
			Message:     fmt.Sprintf("Truck %s entered with receipt %s", entry.TruckNumber, entry.EntryNumber),
		})
	}
	utils.JSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	if err := h.Service.DeleteEntry(r.Context(), id); err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Entry deleted successfully"})
}
