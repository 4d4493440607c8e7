package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fightleague/registry/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// UserRepository provides access to users.
type UserRepository interface {
	// FindByID returns a user by id, or nil if not found.
	FindByID(ctx context.Context, db DBTX, id int64) (*domain.User, error)

	// FindByEmail returns a user by email, or nil if not found.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.User, error)

	// FindByWallet returns a user by wallet address, or nil if not found.
	FindByWallet(ctx context.Context, db DBTX, wallet string) (*domain.User, error)

	// Create inserts a new user and returns its id.
	Create(ctx context.Context, db DBTX, user *domain.User) (int64, error)

	// UpdateRole sets the role of the given user.
	UpdateRole(ctx context.Context, db DBTX, id int64, role domain.Role) error

	// AttachWallet sets the wallet address on an existing user.
	AttachWallet(ctx context.Context, db DBTX, id int64, wallet *string) error

	// SetNonce stores a fresh challenge, overwriting any prior one.
	SetNonce(ctx context.Context, db DBTX, id int64, nonce string, issuedAt time.Time) error

	// ConsumeNonce clears the challenge only if it still matches the
	// expected value, reporting whether this call consumed it.
	ConsumeNonce(ctx context.Context, db DBTX, id int64, expected string) (bool, error)
}

// FighterRepository provides access to fighters.
type FighterRepository interface {
	// Create inserts a new fighter profile and returns its id.
	Create(ctx context.Context, db DBTX, f *domain.Fighter) (int64, error)

	// FindVerifiedByID returns a verified fighter by id, or nil.
	FindVerifiedByID(ctx context.Context, db DBTX, id int64) (*domain.Fighter, error)

	// FindByUserID returns the profile owned by a user regardless of
	// status, or nil.
	FindByUserID(ctx context.Context, db DBTX, userID int64) (*domain.Fighter, error)

	// ExistsForUser reports whether a user already owns a profile.
	ExistsForUser(ctx context.Context, db DBTX, userID int64) (bool, error)

	// ListVerified returns verified fighters with optional nationality
	// filter, ranking sort and limit.
	ListVerified(ctx context.Context, db DBTX, filter FighterFilter) ([]domain.Fighter, error)

	// ListSummaries returns the admin moderation projection for a status.
	ListSummaries(ctx context.Context, db DBTX, status string) ([]domain.FighterSummary, error)

	// ListVerifiedByCountry returns the nation projection for the globe view.
	ListVerifiedByCountry(ctx context.Context, db DBTX, country string) ([]domain.FighterSummary, error)

	// Verify flips a pending profile to verified. Reports false when the
	// profile is absent or not pending.
	Verify(ctx context.Context, db DBTX, id int64) (bool, error)

	// UserIDOf returns the linked user id of a profile. found is false when
	// the profile does not exist; userID is nil for wallet-less profiles.
	UserIDOf(ctx context.Context, db DBTX, id int64) (userID *int64, found bool, err error)

	// Delete removes a profile, reporting whether a row was affected.
	Delete(ctx context.Context, db DBTX, id int64) (bool, error)
}

// FighterFilter narrows ListVerified.
type FighterFilter struct {
	Nationality   string
	SortByRanking bool
	Limit         int
}

// SponsorRepository provides access to sponsors.
type SponsorRepository interface {
	// FindByUserID returns a sponsor profile, or nil.
	FindByUserID(ctx context.Context, db DBTX, userID int64) (*domain.Sponsor, error)

	// Upsert creates the profile or updates it in place, returning the row
	// id and whether it was newly created.
	Upsert(ctx context.Context, db DBTX, s *domain.Sponsor) (int64, bool, error)

	// ExistsForUser reports whether a user has a sponsor profile.
	ExistsForUser(ctx context.Context, db DBTX, userID int64) (bool, error)
}

// DonorRepository provides access to donors.
type DonorRepository interface {
	// Create inserts a donor profile and returns its id.
	Create(ctx context.Context, db DBTX, d *domain.Donor) (int64, error)

	// ExistsForUser reports whether a user has a donor profile.
	ExistsForUser(ctx context.Context, db DBTX, userID int64) (bool, error)
}

// DivisionRepository provides access to the divisions reference table.
type DivisionRepository interface {
	// List returns all divisions ordered by id.
	List(ctx context.Context, db DBTX) ([]domain.Division, error)
}

// EventRepository provides access to events.
type EventRepository interface {
	// List returns events, optionally filtered by status, newest first.
	List(ctx context.Context, db DBTX, status string) ([]domain.Event, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the
	// state change it describes).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, seqIDs []int64) error
}
