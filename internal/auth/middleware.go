package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/repository"
)

type contextKey string

const identityKey contextKey = "auth_identity"

// Identity is the read-only view of the authenticated user attached to the
// request context by Authenticate.
type Identity struct {
	ID            int64
	WalletAddress string
	Country       string
	Role          domain.Role
	IsMilitary    bool
}

// IdentityFromContext extracts the resolved identity from request context.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// Authenticate returns middleware that validates the bearer token and loads
// the current user record. Any failure is terminal for the request; the
// downstream handler is never invoked.
func Authenticate(jwtMgr *JWTManager, pool *pgxpool.Pool, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := extractAndValidate(r, jwtMgr)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				unauthorized(w, "invalid token subject")
				return
			}

			user, err := users.FindByID(r.Context(), pool, userID)
			if err != nil {
				unauthorized(w, "could not resolve user")
				return
			}
			if user == nil {
				unauthorized(w, "user not found")
				return
			}

			ident := &Identity{
				ID:         user.ID,
				Country:    user.Country,
				Role:       user.Role,
				IsMilitary: user.IsMilitary,
			}
			if user.WalletAddress != nil {
				ident.WalletAddress = *user.WalletAddress
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles returns middleware that gates a route to the given roles.
// It must run after Authenticate.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	roleSet := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := IdentityFromContext(r.Context())
			if ident == nil {
				unauthorized(w, "no auth context")
				return
			}
			if !roleSet[ident.Role] {
				http.Error(w, `{"code":"FORBIDDEN","message":"insufficient role"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractAndValidate(r *http.Request, jwtMgr *JWTManager) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, fmt.Errorf("invalid Authorization format")
	}

	return jwtMgr.ValidateToken(parts[1])
}

func unauthorized(w http.ResponseWriter, msg string) {
	http.Error(w, `{"code":"UNAUTHORIZED","message":"`+msg+`"}`, http.StatusUnauthorized)
}
