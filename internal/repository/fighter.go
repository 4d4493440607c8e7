package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fightleague/registry/internal/domain"
)

// PgFighterRepository implements FighterRepository using pgx.
type PgFighterRepository struct{}

// NewPgFighterRepository creates a new PgFighterRepository.
func NewPgFighterRepository() *PgFighterRepository {
	return &PgFighterRepository{}
}

const fighterColumns = `id, user_id, name, country, division, weight, gender,
	wins, losses, draws, image, ranking, bio, achievements, sponsors, status, created_at`

func scanFighter(row pgx.Row) (*domain.Fighter, error) {
	f := &domain.Fighter{}
	var achievements, sponsors []byte
	err := row.Scan(&f.ID, &f.UserID, &f.Name, &f.Country, &f.Division, &f.Weight,
		&f.Gender, &f.Wins, &f.Losses, &f.Draws, &f.Image, &f.Ranking, &f.Bio,
		&achievements, &sponsors, &f.Status, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := unmarshalList(achievements, &f.Achievements); err != nil {
		return nil, err
	}
	if err := unmarshalList(sponsors, &f.Sponsors); err != nil {
		return nil, err
	}
	return f, nil
}

func unmarshalList(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		*dst = []string{}
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}

func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

// Create inserts a new fighter profile and returns its id.
func (r *PgFighterRepository) Create(ctx context.Context, db DBTX, f *domain.Fighter) (int64, error) {
	achievements, err := marshalList(f.Achievements)
	if err != nil {
		return 0, err
	}
	sponsors, err := marshalList(f.Sponsors)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.QueryRow(ctx,
		`INSERT INTO fighters
		   (user_id, name, country, division, weight, gender, wins, losses, draws,
		    image, bio, achievements, sponsors, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13::jsonb, $14)
		 RETURNING id`,
		f.UserID, f.Name, f.Country, f.Division, f.Weight, f.Gender,
		f.Wins, f.Losses, f.Draws, f.Image, f.Bio, achievements, sponsors, f.Status).Scan(&id)
	return id, err
}

// FindVerifiedByID returns a verified fighter by id, or nil.
func (r *PgFighterRepository) FindVerifiedByID(ctx context.Context, db DBTX, id int64) (*domain.Fighter, error) {
	return scanFighter(db.QueryRow(ctx,
		`SELECT `+fighterColumns+` FROM fighters WHERE id = $1 AND status = 'verified'`, id))
}

// FindByUserID returns the profile owned by a user regardless of status, or nil.
func (r *PgFighterRepository) FindByUserID(ctx context.Context, db DBTX, userID int64) (*domain.Fighter, error) {
	return scanFighter(db.QueryRow(ctx,
		`SELECT `+fighterColumns+` FROM fighters WHERE user_id = $1`, userID))
}

// ExistsForUser reports whether a user already owns a profile.
func (r *PgFighterRepository) ExistsForUser(ctx context.Context, db DBTX, userID int64) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM fighters WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}

// ListVerified returns verified fighters with optional nationality filter,
// ranking sort and limit.
func (r *PgFighterRepository) ListVerified(ctx context.Context, db DBTX, filter FighterFilter) ([]domain.Fighter, error) {
	sql := `SELECT ` + fighterColumns + ` FROM fighters WHERE status = 'verified'`
	args := []interface{}{}

	if filter.Nationality != "" {
		args = append(args, filter.Nationality)
		sql += ` AND country = $1`
	}
	if filter.SortByRanking {
		sql += ` ORDER BY ranking ASC NULLS LAST`
	} else {
		sql += ` ORDER BY name ASC`
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		if filter.Nationality != "" {
			sql += ` LIMIT $2`
		} else {
			sql += ` LIMIT $1`
		}
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fighters := []domain.Fighter{}
	for rows.Next() {
		f, err := scanFighter(rows)
		if err != nil {
			return nil, err
		}
		fighters = append(fighters, *f)
	}
	return fighters, rows.Err()
}

// ListSummaries returns the admin moderation projection for a status.
func (r *PgFighterRepository) ListSummaries(ctx context.Context, db DBTX, status string) ([]domain.FighterSummary, error) {
	order := `name ASC`
	if status == domain.FighterPending {
		order = `id ASC`
	}
	rows, err := db.Query(ctx,
		`SELECT id, name, country, division, weight, gender, wins, losses, draws
		 FROM fighters WHERE status = $1 ORDER BY `+order, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ListVerifiedByCountry returns the nation projection for the globe view.
func (r *PgFighterRepository) ListVerifiedByCountry(ctx context.Context, db DBTX, country string) ([]domain.FighterSummary, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, country, division, weight, gender, wins, losses, draws
		 FROM fighters WHERE country = $1 AND status = 'verified' ORDER BY name ASC`, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func scanSummaries(rows pgx.Rows) ([]domain.FighterSummary, error) {
	summaries := []domain.FighterSummary{}
	for rows.Next() {
		var s domain.FighterSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Country, &s.Division, &s.Weight,
			&s.Gender, &s.Wins, &s.Losses, &s.Draws); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Verify flips a pending profile to verified. The status guard makes the
// update conditional: a non-pending profile is simply not a match.
func (r *PgFighterRepository) Verify(ctx context.Context, db DBTX, id int64) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE fighters SET status = 'verified' WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// UserIDOf returns the linked user id of a profile.
func (r *PgFighterRepository) UserIDOf(ctx context.Context, db DBTX, id int64) (*int64, bool, error) {
	var userID *int64
	err := db.QueryRow(ctx, `SELECT user_id FROM fighters WHERE id = $1`, id).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return userID, true, nil
}

// Delete removes a profile, reporting whether a row was affected.
func (r *PgFighterRepository) Delete(ctx context.Context, db DBTX, id int64) (bool, error) {
	tag, err := db.Exec(ctx, `DELETE FROM fighters WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
