package handlers

import (
	"net/http"

	"weighbridge-backend/internal/services"
	"weighbridge-backend/pkg/utils"
)

type BackupHandler struct {
	Service *services.BackupService
}

func NewBackupHandler(s *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: s}
}

// Run triggers an immediate ledger snapshot, used before maintenance.
func (h *BackupHandler) Run(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RunOnce(r.Context()); err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Ledger snapshot uploaded"})
}
