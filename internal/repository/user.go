package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fightleague/registry/internal/domain"
)

// PgUserRepository implements UserRepository using pgx.
type PgUserRepository struct{}

// NewPgUserRepository creates a new PgUserRepository.
func NewPgUserRepository() *PgUserRepository {
	return &PgUserRepository{}
}

const userColumns = `id, name, email, password_hash, wallet_address, role,
	nonce, nonce_issued_at, country, is_military, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.WalletAddress,
		&u.Role, &u.Nonce, &u.NonceIssuedAt, &u.Country, &u.IsMilitary, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByID returns a user by id, or nil if not found.
func (r *PgUserRepository) FindByID(ctx context.Context, db DBTX, id int64) (*domain.User, error) {
	return scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindByEmail returns a user by email, or nil if not found.
func (r *PgUserRepository) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.User, error) {
	return scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// FindByWallet returns a user by wallet address, or nil if not found.
func (r *PgUserRepository) FindByWallet(ctx context.Context, db DBTX, wallet string) (*domain.User, error) {
	return scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE wallet_address = $1`, wallet))
}

// Create inserts a new user and returns its id.
func (r *PgUserRepository) Create(ctx context.Context, db DBTX, user *domain.User) (int64, error) {
	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, wallet_address, role, country, is_military)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		user.Name, user.Email, user.PasswordHash, user.WalletAddress,
		user.Role, user.Country, user.IsMilitary).Scan(&id)
	return id, err
}

// UpdateRole sets the role of the given user.
func (r *PgUserRepository) UpdateRole(ctx context.Context, db DBTX, id int64, role domain.Role) error {
	tag, err := db.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("user", "")
	}
	return nil
}

// AttachWallet sets the wallet address on an existing user.
func (r *PgUserRepository) AttachWallet(ctx context.Context, db DBTX, id int64, wallet *string) error {
	_, err := db.Exec(ctx, `UPDATE users SET wallet_address = $2 WHERE id = $1`, id, wallet)
	return err
}

// SetNonce stores a fresh challenge, overwriting any prior one.
func (r *PgUserRepository) SetNonce(ctx context.Context, db DBTX, id int64, nonce string, issuedAt time.Time) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET nonce = $2, nonce_issued_at = $3 WHERE id = $1`,
		id, nonce, issuedAt)
	return err
}

// ConsumeNonce clears the challenge only if it still matches the expected
// value. The WHERE guard closes the race between two concurrent verifications:
// exactly one of them observes RowsAffected = 1.
func (r *PgUserRepository) ConsumeNonce(ctx context.Context, db DBTX, id int64, expected string) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE users SET nonce = NULL, nonce_issued_at = NULL
		 WHERE id = $1 AND nonce = $2`,
		id, expected)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
