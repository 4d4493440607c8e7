package repository

import (
	"context"

	"github.com/fightleague/registry/internal/domain"
)

// PgEventRepository implements EventRepository using pgx.
type PgEventRepository struct{}

// NewPgEventRepository creates a new PgEventRepository.
func NewPgEventRepository() *PgEventRepository {
	return &PgEventRepository{}
}

// List returns events, optionally filtered by status, newest first.
func (r *PgEventRepository) List(ctx context.Context, db DBTX, status string) ([]domain.Event, error) {
	sql := `SELECT id, title, event_date, location, division, status FROM events`
	args := []interface{}{}
	if status != "" {
		sql += ` WHERE status = $1`
		args = append(args, status)
	}
	sql += ` ORDER BY event_date DESC`

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Location, &e.Division, &e.Status); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
