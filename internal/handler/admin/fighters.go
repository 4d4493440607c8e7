package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/handler"
	"github.com/fightleague/registry/internal/service"
)

// FightersHandler handles the admin moderation endpoints.
type FightersHandler struct {
	registrationSvc *service.RegistrationService
}

// NewFightersHandler creates a new FightersHandler.
func NewFightersHandler(registrationSvc *service.RegistrationService) *FightersHandler {
	return &FightersHandler{registrationSvc: registrationSvc}
}

// ListPending handles GET /dashboard/admin/fighters/pending.
func (h *FightersHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.registrationSvc.ListPending(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, summaries)
}

// ListVerified handles GET /dashboard/admin/fighters/verified.
func (h *FightersHandler) ListVerified(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.registrationSvc.ListVerifiedSummaries(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, summaries)
}

// Approve handles PATCH /dashboard/admin/fighters/{id}/approve.
func (h *FightersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid fighter id"))
		return
	}

	if err := h.registrationSvc.ApproveFighter(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": domain.FighterVerified})
}

// Reject handles DELETE /dashboard/admin/fighters/{id}.
func (h *FightersHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid fighter id"))
		return
	}

	if err := h.registrationSvc.RejectFighter(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}
