package domain

import (
	"fmt"
	"time"
)

// Fighter profile lifecycle states.
const (
	FighterPending  = "pending"
	FighterVerified = "verified"
	FighterInactive = "inactive"
)

// Genders accepted for fighters and divisions.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// ValidGender reports whether g is "male" or "female".
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// Fighter represents a fighters row. At most one profile exists per user;
// user_id is nullable because a profile may be submitted without a wallet.
type Fighter struct {
	ID           int64     `json:"id"`
	UserID       *int64    `json:"user_id,omitempty"`
	Name         string    `json:"name"`
	Country      string    `json:"country"`
	Division     string    `json:"division"`
	Weight       float64   `json:"weight"`
	Gender       string    `json:"gender"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	Draws        int       `json:"draws"`
	Image        *string   `json:"image,omitempty"`
	Ranking      *int      `json:"ranking,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Achievements []string  `json:"achievements"`
	Sponsors     []string  `json:"sponsors"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Record derives the "wins-losses-draws" display string. It is never stored.
func (f *Fighter) Record() string {
	return fmt.Sprintf("%d-%d-%d", f.Wins, f.Losses, f.Draws)
}

// FighterSummary is the compact projection used by the admin moderation lists.
type FighterSummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Division string  `json:"division"`
	Weight   float64 `json:"weight"`
	Gender   string  `json:"gender"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Draws    int     `json:"draws"`
}
