package repository

import (
	"context"

	"github.com/fightleague/registry/internal/domain"
)

// PgDivisionRepository implements DivisionRepository using pgx.
type PgDivisionRepository struct{}

// NewPgDivisionRepository creates a new PgDivisionRepository.
func NewPgDivisionRepository() *PgDivisionRepository {
	return &PgDivisionRepository{}
}

// List returns all divisions ordered by id.
func (r *PgDivisionRepository) List(ctx context.Context, db DBTX) ([]domain.Division, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, gender, min_weight, max_weight FROM divisions ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divisions := []domain.Division{}
	for rows.Next() {
		var d domain.Division
		if err := rows.Scan(&d.ID, &d.Name, &d.Gender, &d.MinWeight, &d.MaxWeight); err != nil {
			return nil, err
		}
		divisions = append(divisions, d)
	}
	return divisions, rows.Err()
}
