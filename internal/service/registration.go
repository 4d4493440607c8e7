package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fightleague/registry/internal/auth"
	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/repository"
)

// RegistrationService owns the fighter lifecycle: public self-registration
// into the pending queue, admin approval and rejection, and the roster reads.
type RegistrationService struct {
	pool     *pgxpool.Pool
	users    repository.UserRepository
	fighters repository.FighterRepository
	sponsors repository.SponsorRepository
	donors   repository.DonorRepository
	outbox   repository.OutboxRepository
	jwtMgr   *auth.JWTManager
	validate *validator.Validate
	logger   *slog.Logger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	fighters repository.FighterRepository,
	sponsors repository.SponsorRepository,
	donors repository.DonorRepository,
	outbox repository.OutboxRepository,
	jwtMgr *auth.JWTManager,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		pool:     pool,
		users:    users,
		fighters: fighters,
		sponsors: sponsors,
		donors:   donors,
		outbox:   outbox,
		jwtMgr:   jwtMgr,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterFighterInput carries a self-registration submission. Weight arrives
// as a string because browser form payloads send it that way.
type RegisterFighterInput struct {
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	Country       string   `json:"country" validate:"required,min=2,max=56"`
	Weight        string   `json:"weight" validate:"required"`
	Gender        string   `json:"gender" validate:"required"`
	Division      string   `json:"division" validate:"required"`
	Wins          *int     `json:"wins" validate:"required,min=0"`
	Losses        *int     `json:"losses" validate:"required,min=0"`
	Draws         *int     `json:"draws" validate:"required,min=0"`
	WalletAddress string   `json:"walletAddress" validate:"omitempty"`
	Image         *string  `json:"image"`
	Bio           *string  `json:"bio"`
	Achievements  []string `json:"achievements"`
	Sponsors      []string `json:"sponsors"`
	IsMilitary    bool     `json:"is_military"`
}

// RegistrationResult is what a successful submission returns. Token is empty
// for wallet-less registrations.
type RegistrationResult struct {
	FighterID int64
	Token     string
	Role      domain.Role
}

// RegisterFighter validates a submission and creates a pending profile. When a
// wallet address is supplied the profile is linked to a user account (created
// on first sight with the FAN role) and a session token is issued.
func (s *RegistrationService) RegisterFighter(ctx context.Context, input RegisterFighterInput) (*RegistrationResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if !domain.ValidGender(input.Gender) {
		return nil, domain.ErrValidation("gender must be male or female")
	}
	weight, err := strconv.ParseFloat(input.Weight, 64)
	if err != nil || weight <= 0 {
		return nil, domain.ErrValidation("weight must be a positive number")
	}
	division, ok := domain.ClassifyDivision(weight, input.Gender)
	if !ok {
		return nil, domain.ErrValidation(fmt.Sprintf("no division for weight %.1f (%s)", weight, input.Gender))
	}
	if input.Division != division.Name {
		return nil, domain.ErrValidation(fmt.Sprintf("division %q does not match weight %.1f (%s), which classifies as %q",
			input.Division, weight, input.Gender, division.Name))
	}
	if input.WalletAddress != "" {
		if err := domain.ValidateWalletAddress(input.WalletAddress); err != nil {
			return nil, domain.ErrValidation(err.Error())
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	var userID *int64
	role := domain.RoleGuest
	if input.WalletAddress != "" {
		user, err := s.users.FindByWallet(ctx, tx, input.WalletAddress)
		if err != nil {
			return nil, domain.ErrInternal("find wallet user", err)
		}
		if user == nil {
			wallet := input.WalletAddress
			id, err := s.users.Create(ctx, tx, &domain.User{
				Name:          input.Name,
				WalletAddress: &wallet,
				Role:          domain.RoleFan,
				Country:       input.Country,
				IsMilitary:    input.IsMilitary,
			})
			if err != nil {
				return nil, domain.ErrInternal("create wallet user", err)
			}
			user = &domain.User{ID: id, Role: domain.RoleFan}
		}
		exists, err := s.fighters.ExistsForUser(ctx, tx, user.ID)
		if err != nil {
			return nil, domain.ErrInternal("check existing profile", err)
		}
		if exists {
			return nil, domain.ErrConflict("a fighter profile already exists for this wallet")
		}
		userID = &user.ID
		role = user.Role
	}

	fighter := &domain.Fighter{
		UserID:       userID,
		Name:         input.Name,
		Country:      input.Country,
		Division:     division.Name,
		Weight:       weight,
		Gender:       input.Gender,
		Wins:         *input.Wins,
		Losses:       *input.Losses,
		Draws:        *input.Draws,
		Image:        input.Image,
		Bio:          input.Bio,
		Achievements: input.Achievements,
		Sponsors:     input.Sponsors,
		Status:       domain.FighterPending,
	}
	fighterID, err := s.fighters.Create(ctx, tx, fighter)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict("a fighter profile already exists for this wallet")
		}
		return nil, domain.ErrInternal("create fighter", err)
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewFighterRegisteredEvent(fighterID, userID, division.Name)); err != nil {
		return nil, domain.ErrInternal("stage registered event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	result := &RegistrationResult{FighterID: fighterID, Role: role}
	if userID != nil {
		token, err := s.jwtMgr.GenerateToken(*userID, input.WalletAddress, "", role)
		if err != nil {
			return nil, domain.ErrInternal("issue token", err)
		}
		result.Token = token
	}

	s.logger.Info("fighter registered", "fighter_id", fighterID, "division", division.Name, "wallet_linked", userID != nil)
	return result, nil
}

// ApproveFighter flips a pending profile to verified and promotes the linked
// user to the FIGHTER role. The status guard makes a repeated approval a 404.
func (s *RegistrationService) ApproveFighter(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	ok, err := s.fighters.Verify(ctx, tx, id)
	if err != nil {
		return domain.ErrInternal("verify fighter", err)
	}
	if !ok {
		return domain.ErrNotPending(id)
	}

	userID, _, err := s.fighters.UserIDOf(ctx, tx, id)
	if err != nil {
		return domain.ErrInternal("resolve fighter user", err)
	}
	if userID != nil {
		if err := s.users.UpdateRole(ctx, tx, *userID, domain.RoleFighter); err != nil {
			return domain.ErrInternal("promote user", err)
		}
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewFighterApprovedEvent(id, userID)); err != nil {
		return domain.ErrInternal("stage approved event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("fighter approved", "fighter_id", id)
	return nil
}

// RejectFighter removes a profile. The linked user account survives: the role
// falls back to FAN unless a sponsor or donor profile still justifies a higher
// one.
func (s *RegistrationService) RejectFighter(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	userID, found, err := s.fighters.UserIDOf(ctx, tx, id)
	if err != nil {
		return domain.ErrInternal("resolve fighter user", err)
	}
	if !found {
		return domain.ErrNotFound("fighter", strconv.FormatInt(id, 10))
	}

	if ok, err := s.fighters.Delete(ctx, tx, id); err != nil {
		return domain.ErrInternal("delete fighter", err)
	} else if !ok {
		return domain.ErrNotFound("fighter", strconv.FormatInt(id, 10))
	}

	if userID != nil {
		keepRole, err := s.hasOtherProfile(ctx, tx, *userID)
		if err != nil {
			return err
		}
		if !keepRole {
			if err := s.users.UpdateRole(ctx, tx, *userID, domain.RoleFan); err != nil {
				return domain.ErrInternal("demote user", err)
			}
		}
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewFighterRejectedEvent(id, userID)); err != nil {
		return domain.ErrInternal("stage rejected event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("fighter rejected", "fighter_id", id)
	return nil
}

func (s *RegistrationService) hasOtherProfile(ctx context.Context, db repository.DBTX, userID int64) (bool, error) {
	isSponsor, err := s.sponsors.ExistsForUser(ctx, db, userID)
	if err != nil {
		return false, domain.ErrInternal("check sponsor profile", err)
	}
	if isSponsor {
		return true, nil
	}
	isDonor, err := s.donors.ExistsForUser(ctx, db, userID)
	if err != nil {
		return false, domain.ErrInternal("check donor profile", err)
	}
	return isDonor, nil
}

// ListPending returns the moderation queue, oldest submission first.
func (s *RegistrationService) ListPending(ctx context.Context) ([]domain.FighterSummary, error) {
	summaries, err := s.fighters.ListSummaries(ctx, s.pool, domain.FighterPending)
	if err != nil {
		return nil, domain.ErrInternal("list pending fighters", err)
	}
	return summaries, nil
}

// ListVerifiedSummaries returns the verified roster in the admin projection.
func (s *RegistrationService) ListVerifiedSummaries(ctx context.Context) ([]domain.FighterSummary, error) {
	summaries, err := s.fighters.ListSummaries(ctx, s.pool, domain.FighterVerified)
	if err != nil {
		return nil, domain.ErrInternal("list verified fighters", err)
	}
	return summaries, nil
}

// ListFighters returns the public verified roster.
func (s *RegistrationService) ListFighters(ctx context.Context, filter repository.FighterFilter) ([]domain.Fighter, error) {
	fighters, err := s.fighters.ListVerified(ctx, s.pool, filter)
	if err != nil {
		return nil, domain.ErrInternal("list fighters", err)
	}
	return fighters, nil
}

// GetFighter returns a verified fighter by id.
func (s *RegistrationService) GetFighter(ctx context.Context, id int64) (*domain.Fighter, error) {
	fighter, err := s.fighters.FindVerifiedByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("get fighter", err)
	}
	if fighter == nil {
		return nil, domain.ErrNotFound("fighter", strconv.FormatInt(id, 10))
	}
	return fighter, nil
}

// FighterForUser returns the caller's own profile regardless of status. The
// handler uses the status to answer 403 while moderation is pending.
func (s *RegistrationService) FighterForUser(ctx context.Context, userID int64) (*domain.Fighter, error) {
	fighter, err := s.fighters.FindByUserID(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("get own fighter", err)
	}
	if fighter == nil {
		return nil, domain.ErrNotFound("fighter profile for user", strconv.FormatInt(userID, 10))
	}
	return fighter, nil
}

// NationRoster returns the verified fighters of one country for the globe view.
func (s *RegistrationService) NationRoster(ctx context.Context, country string) ([]domain.FighterSummary, error) {
	summaries, err := s.fighters.ListVerifiedByCountry(ctx, s.pool, country)
	if err != nil {
		return nil, domain.ErrInternal("nation roster", err)
	}
	return summaries, nil
}
