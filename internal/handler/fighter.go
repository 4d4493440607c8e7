package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fightleague/registry/internal/auth"
	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/repository"
	"github.com/fightleague/registry/internal/service"
)

// FighterHandler handles fighter registration and the public roster reads.
type FighterHandler struct {
	registrationSvc *service.RegistrationService
}

// NewFighterHandler creates a new FighterHandler.
func NewFighterHandler(registrationSvc *service.RegistrationService) *FighterHandler {
	return &FighterHandler{registrationSvc: registrationSvc}
}

// fighterResponse is the public wire shape of a fighter. IDs are strings on
// the wire to survive JavaScript number precision.
type fighterResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	Division     string   `json:"division"`
	Weight       float64  `json:"weight"`
	Gender       string   `json:"gender"`
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	Draws        int      `json:"draws"`
	Record       string   `json:"record"`
	Image        *string  `json:"image,omitempty"`
	Ranking      *int     `json:"ranking,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	Achievements []string `json:"achievements"`
	Sponsors     []string `json:"sponsors"`
	Status       string   `json:"status"`
}

func toFighterResponse(f *domain.Fighter) fighterResponse {
	return fighterResponse{
		ID:           strconv.FormatInt(f.ID, 10),
		Name:         f.Name,
		Country:      f.Country,
		Division:     f.Division,
		Weight:       f.Weight,
		Gender:       f.Gender,
		Wins:         f.Wins,
		Losses:       f.Losses,
		Draws:        f.Draws,
		Record:       f.Record(),
		Image:        f.Image,
		Ranking:      f.Ranking,
		Bio:          f.Bio,
		Achievements: f.Achievements,
		Sponsors:     f.Sponsors,
		Status:       f.Status,
	}
}

// Register handles POST /fighters/register.
func (h *FighterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterFighterInput
	if err := DecodeJSON(w, r, &input); err != nil {
		respondBadBody(w)
		return
	}

	result, err := h.registrationSvc.RegisterFighter(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	body := map[string]interface{}{
		"fighterId": strconv.FormatInt(result.FighterID, 10),
		"status":    domain.FighterPending,
	}
	if result.Token != "" {
		body["token"] = result.Token
		body["user_type"] = result.Role
	}
	RespondJSON(w, http.StatusCreated, body)
}

// List handles GET /fighters.
func (h *FighterHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.FighterFilter{
		Nationality:   r.URL.Query().Get("nationality"),
		SortByRanking: r.URL.Query().Get("sortBy") == "ranking",
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			RespondError(w, domain.ErrValidation("limit must be a positive integer"))
			return
		}
		filter.Limit = limit
	}

	fighters, err := h.registrationSvc.ListFighters(r.Context(), filter)
	if err != nil {
		RespondError(w, err)
		return
	}

	out := make([]fighterResponse, 0, len(fighters))
	for i := range fighters {
		out = append(out, toFighterResponse(&fighters[i]))
	}
	RespondJSON(w, http.StatusOK, out)
}

// Get handles GET /fighters/{id}.
func (h *FighterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid fighter id"))
		return
	}

	fighter, err := h.registrationSvc.GetFighter(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, toFighterResponse(fighter))
}

// Me handles GET /fighters/me. A pending profile answers 403 so the client
// can show the awaiting-moderation state.
func (h *FighterHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		RespondError(w, domain.ErrUnauthorized("missing identity"))
		return
	}

	fighter, err := h.registrationSvc.FighterForUser(r.Context(), identity.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if fighter.Status == domain.FighterPending {
		RespondError(w, domain.ErrPendingApproval())
		return
	}

	RespondJSON(w, http.StatusOK, toFighterResponse(fighter))
}
