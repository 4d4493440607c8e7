package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Stored as text in users.role.
type Role string

const (
	RoleFan     Role = "FAN"
	RoleFighter Role = "FIGHTER"
	RoleSponsor Role = "SPONSOR"
	RoleDonor   Role = "DONOR"
	RoleAdmin   Role = "ADMIN"
	RoleGuest   Role = "GUEST"
)

// ParseRole maps a string to a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleFan, RoleFighter, RoleSponsor, RoleDonor, RoleAdmin, RoleGuest:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User represents a users row. A user authenticates either with
// email+password or with a wallet address, never both required.
type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         *string    `json:"email,omitempty"`
	PasswordHash  *string    `json:"-"`
	WalletAddress *string    `json:"wallet_address,omitempty"`
	Role          Role       `json:"user_type"`
	Nonce         *string    `json:"-"`
	NonceIssuedAt *time.Time `json:"-"`
	Country       string     `json:"country,omitempty"`
	IsMilitary    bool       `json:"is_military"`
	CreatedAt     time.Time  `json:"created_at"`
}
