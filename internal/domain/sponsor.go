package domain

import "time"

// Sponsor tiers. Stored as text in sponsors.tier.
const (
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierBronze   = "Bronze"
	TierPartner  = "Partner"
	TierPlatinum = "Platinum"
)

// ValidTier reports whether t is a known sponsor tier.
func ValidTier(t string) bool {
	switch t {
	case TierGold, TierSilver, TierBronze, TierPartner, TierPlatinum:
		return true
	default:
		return false
	}
}

// Sponsor represents a sponsors row. At most one per user; re-registration
// updates the row in place.
type Sponsor struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	CompanyName  string    `json:"company_name"`
	Website      *string   `json:"website,omitempty"`
	LogoURL      *string   `json:"logo_url,omitempty"`
	ContactEmail string    `json:"contact_email"`
	Description  *string   `json:"description,omitempty"`
	Tier         string    `json:"tier"`
	CreatedAt    time.Time `json:"created_at"`
}

// Donor represents a donors row, created by the donor role-upgrade flow.
type Donor struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
