package handler

import (
	"net/http"

	"github.com/fightleague/registry/internal/auth"
	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/service"
)

// AuthHandler handles wallet and email authentication endpoints.
type AuthHandler struct {
	walletSvc  *service.WalletAuthService
	accountSvc *service.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(walletSvc *service.WalletAuthService, accountSvc *service.AccountService) *AuthHandler {
	return &AuthHandler{walletSvc: walletSvc, accountSvc: accountSvc}
}

// Nonce handles POST /auth/nonce.
func (h *AuthHandler) Nonce(w http.ResponseWriter, r *http.Request) {
	var input struct {
		WalletAddress string `json:"walletAddress"`
	}
	if err := DecodeJSON(w, r, &input); err != nil {
		respondBadBody(w)
		return
	}

	message, err := h.walletSvc.IssueNonce(r.Context(), input.WalletAddress)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"messageToSign": message})
}

// Login handles POST /auth/login (wallet signature verification).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		WalletAddress string `json:"walletAddress"`
		Signature     string `json:"signature"`
	}
	if err := DecodeJSON(w, r, &input); err != nil {
		respondBadBody(w)
		return
	}

	result, err := h.walletSvc.VerifySignature(r.Context(), input.WalletAddress, input.Signature)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token":     result.Token,
		"user_type": result.Role,
	})
}

// Register handles POST /auth/register (email signup).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterEmailInput
	if err := DecodeJSON(w, r, &input); err != nil {
		respondBadBody(w)
		return
	}

	result, err := h.accountSvc.RegisterEmail(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"token":     result.Token,
		"user_type": result.Role,
	})
}

// LoginEmail handles POST /auth/login/email.
func (h *AuthHandler) LoginEmail(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := DecodeJSON(w, r, &input); err != nil {
		respondBadBody(w)
		return
	}

	result, err := h.accountSvc.LoginEmail(r.Context(), input.Email, input.Password)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token":     result.Token,
		"user_type": result.Role,
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		RespondError(w, domain.ErrUnauthorized("missing identity"))
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"id":             identity.ID,
		"wallet_address": identity.WalletAddress,
		"user_type":      identity.Role,
		"country":        identity.Country,
		"is_military":    identity.IsMilitary,
	})
}
