package handlers

import (
	"encoding/json"
	"net/http"

	"weighbridge-backend/internal/auth"
	"weighbridge-backend/pkg/utils"
)

// AccessHandler is the PIN gate. One shared code, checked in constant time;
// success returns a session token for the rest of the API.
type AccessHandler struct {
	Keeper *auth.GateKeeper
}

func NewAccessHandler(keeper *auth.GateKeeper) *AccessHandler {
	return &AccessHandler{Keeper: keeper}
}

type verifyPINRequest struct {
	Pin string `json:"pin"`
}

type verifyPINResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

func (h *AccessHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req verifyPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Pin == "" {
		utils.Error(w, http.StatusBadRequest, "PIN is required")
		return
	}

	if !h.Keeper.VerifyPIN(req.Pin) {
		utils.JSON(w, http.StatusUnauthorized, verifyPINResponse{Success: false})
		return
	}

	token, err := h.Keeper.IssueToken()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to issue gate token")
		return
	}
	utils.JSON(w, http.StatusOK, verifyPINResponse{Success: true, Token: token})
}
