package handler

import (
	"net/http"

	"github.com/fightleague/registry/internal/service"
)

// DonorHandler handles donor role upgrades.
type DonorHandler struct {
	accountSvc *service.AccountService
}

// NewDonorHandler creates a new DonorHandler.
func NewDonorHandler(accountSvc *service.AccountService) *DonorHandler {
	return &DonorHandler{accountSvc: accountSvc}
}

// Register handles POST /donors/register.
func (h *DonorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterDonorInput
	if err := DecodeJSON(w, r, &input); err != nil {
		respondBadBody(w)
		return
	}

	donor, err := h.accountSvc.RegisterDonor(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, donor)
}
