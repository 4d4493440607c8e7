package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fightleague/registry/internal/domain"
)

// PgSponsorRepository implements SponsorRepository using pgx.
type PgSponsorRepository struct{}

// NewPgSponsorRepository creates a new PgSponsorRepository.
func NewPgSponsorRepository() *PgSponsorRepository {
	return &PgSponsorRepository{}
}

// FindByUserID returns a sponsor profile, or nil if not found.
func (r *PgSponsorRepository) FindByUserID(ctx context.Context, db DBTX, userID int64) (*domain.Sponsor, error) {
	row := db.QueryRow(ctx,
		`SELECT id, user_id, company_name, website, logo_url, contact_email, description, tier, created_at
		 FROM sponsors WHERE user_id = $1`, userID)

	s := &domain.Sponsor{}
	err := row.Scan(&s.ID, &s.UserID, &s.CompanyName, &s.Website, &s.LogoURL,
		&s.ContactEmail, &s.Description, &s.Tier, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert creates the profile or updates it in place. Re-registration never
// duplicates: sponsors.user_id is unique.
func (r *PgSponsorRepository) Upsert(ctx context.Context, db DBTX, s *domain.Sponsor) (int64, bool, error) {
	var id int64
	var created bool
	err := db.QueryRow(ctx,
		`INSERT INTO sponsors (user_id, company_name, website, logo_url, contact_email, description, tier)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
		   company_name = EXCLUDED.company_name,
		   website = EXCLUDED.website,
		   logo_url = EXCLUDED.logo_url,
		   contact_email = EXCLUDED.contact_email,
		   description = EXCLUDED.description,
		   tier = EXCLUDED.tier
		 RETURNING id, (xmax = 0)`,
		s.UserID, s.CompanyName, s.Website, s.LogoURL,
		s.ContactEmail, s.Description, s.Tier).Scan(&id, &created)
	return id, created, err
}

// ExistsForUser reports whether a user has a sponsor profile.
func (r *PgSponsorRepository) ExistsForUser(ctx context.Context, db DBTX, userID int64) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sponsors WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}
