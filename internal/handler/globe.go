package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/service"
)

// GlobeHandler serves the per-nation roster behind the globe view.
type GlobeHandler struct {
	registrationSvc *service.RegistrationService
}

// NewGlobeHandler creates a new GlobeHandler.
func NewGlobeHandler(registrationSvc *service.RegistrationService) *GlobeHandler {
	return &GlobeHandler{registrationSvc: registrationSvc}
}

// Nation handles GET /globe/nation/{countryCode}.
func (h *GlobeHandler) Nation(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(chi.URLParam(r, "countryCode"))
	if country == "" {
		RespondError(w, domain.ErrValidation("country code required"))
		return
	}

	fighters, err := h.registrationSvc.NationRoster(r.Context(), country)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"country":  country,
		"fighters": fighters,
	})
}
