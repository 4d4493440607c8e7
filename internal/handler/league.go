package handler

import (
	"net/http"

	"github.com/fightleague/registry/internal/service"
)

// LeagueHandler serves the divisions and events reference endpoints.
type LeagueHandler struct {
	leagueSvc *service.LeagueService
}

// NewLeagueHandler creates a new LeagueHandler.
func NewLeagueHandler(leagueSvc *service.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueSvc: leagueSvc}
}

// Divisions handles GET /divisions.
func (h *LeagueHandler) Divisions(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.leagueSvc.ListDivisions(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, divisions)
}

// Events handles GET /events.
func (h *LeagueHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.leagueSvc.ListEvents(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, events)
}
