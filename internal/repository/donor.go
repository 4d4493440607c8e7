package repository

import (
	"context"

	"github.com/fightleague/registry/internal/domain"
)

// PgDonorRepository implements DonorRepository using pgx.
type PgDonorRepository struct{}

// NewPgDonorRepository creates a new PgDonorRepository.
func NewPgDonorRepository() *PgDonorRepository {
	return &PgDonorRepository{}
}

// Create inserts a donor profile and returns its id.
func (r *PgDonorRepository) Create(ctx context.Context, db DBTX, d *domain.Donor) (int64, error) {
	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO donors (user_id, email, logo_url) VALUES ($1, $2, $3) RETURNING id`,
		d.UserID, d.Email, d.LogoURL).Scan(&id)
	return id, err
}

// ExistsForUser reports whether a user has a donor profile.
func (r *PgDonorRepository) ExistsForUser(ctx context.Context, db DBTX, userID int64) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM donors WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}
