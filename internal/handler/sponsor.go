package handler

import (
	"net/http"

	"github.com/fightleague/registry/internal/auth"
	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/service"
)

// SponsorHandler handles sponsor profile endpoints.
type SponsorHandler struct {
	accountSvc *service.AccountService
}

// NewSponsorHandler creates a new SponsorHandler.
func NewSponsorHandler(accountSvc *service.AccountService) *SponsorHandler {
	return &SponsorHandler{accountSvc: accountSvc}
}

// Me handles GET /sponsors/me.
func (h *SponsorHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		RespondError(w, domain.ErrUnauthorized("missing identity"))
		return
	}

	sponsor, err := h.accountSvc.GetSponsorProfile(r.Context(), identity.ID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, sponsor)
}

// Upsert handles POST /sponsors/me.
func (h *SponsorHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		RespondError(w, domain.ErrUnauthorized("missing identity"))
		return
	}

	var input service.SponsorProfileInput
	if err := DecodeJSON(w, r, &input); err != nil {
		respondBadBody(w)
		return
	}

	sponsor, created, err := h.accountSvc.UpsertSponsorProfile(r.Context(), identity.ID, input)
	if err != nil {
		RespondError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	RespondJSON(w, status, sponsor)
}
