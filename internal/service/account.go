package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/fightleague/registry/internal/auth"
	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/repository"
)

// AccountService owns email accounts and the sponsor/donor role upgrades.
type AccountService struct {
	pool     *pgxpool.Pool
	users    repository.UserRepository
	sponsors repository.SponsorRepository
	donors   repository.DonorRepository
	jwtMgr   *auth.JWTManager
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	sponsors repository.SponsorRepository,
	donors repository.DonorRepository,
	jwtMgr *auth.JWTManager,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		pool:     pool,
		users:    users,
		sponsors: sponsors,
		donors:   donors,
		jwtMgr:   jwtMgr,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterEmailInput carries an email signup. Sponsor fields are only read
// when the requested role is SPONSOR.
type RegisterEmailInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"user_type" validate:"required"`

	CompanyName *string `json:"company_name"`
	Website     *string `json:"website"`
	LogoURL     *string `json:"logo_url"`
	Description *string `json:"description"`
	Tier        *string `json:"tier"`
}

// RegisterEmail creates an email-authenticated account. Sponsor signups also
// create the sponsor profile inside the same transaction.
func (s *AccountService) RegisterEmail(ctx context.Context, input RegisterEmailInput) (*LoginResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	switch role {
	case domain.RoleFan, domain.RoleSponsor, domain.RoleDonor:
	default:
		return nil, domain.ErrValidation("self-registration is limited to FAN, SPONSOR and DONOR")
	}
	if role == domain.RoleSponsor {
		if input.LogoURL == nil || *input.LogoURL == "" {
			return nil, domain.ErrValidation("sponsor registration requires a logo")
		}
		if input.Tier != nil && !domain.ValidTier(*input.Tier) {
			return nil, domain.ErrValidation("unknown sponsor tier")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	email := input.Email
	passwordHash := string(hash)
	userID, err := s.users.Create(ctx, tx, &domain.User{
		Name:         input.Name,
		Email:        &email,
		PasswordHash: &passwordHash,
		Role:         role,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict("an account with this email already exists")
		}
		return nil, domain.ErrInternal("create user", err)
	}

	if role == domain.RoleSponsor {
		sponsor := &domain.Sponsor{
			UserID:       userID,
			CompanyName:  input.Name,
			Website:      input.Website,
			LogoURL:      input.LogoURL,
			ContactEmail: input.Email,
			Description:  input.Description,
			Tier:         domain.TierPartner,
		}
		if input.CompanyName != nil && *input.CompanyName != "" {
			sponsor.CompanyName = *input.CompanyName
		}
		if input.Tier != nil {
			sponsor.Tier = *input.Tier
		}
		if _, _, err := s.sponsors.Upsert(ctx, tx, sponsor); err != nil {
			return nil, domain.ErrInternal("create sponsor profile", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	token, err := s.jwtMgr.GenerateToken(userID, "", input.Email, role)
	if err != nil {
		return nil, domain.ErrInternal("issue token", err)
	}

	s.logger.Info("email account registered", "user_id", userID, "role", role)
	return &LoginResult{Token: token, Role: role}, nil
}

// LoginEmail checks credentials and issues a session token. Unknown email and
// wrong password answer identically.
func (s *AccountService) LoginEmail(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, s.pool, email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil || user.PasswordHash == nil {
		return nil, domain.ErrUnauthorized("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized("invalid email or password")
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, "", email, user.Role)
	if err != nil {
		return nil, domain.ErrInternal("issue token", err)
	}
	return &LoginResult{Token: token, Role: user.Role}, nil
}

// SponsorProfileInput carries a sponsor profile create-or-update.
type SponsorProfileInput struct {
	CompanyName  string  `json:"company_name" validate:"required,min=2,max=100"`
	Website      *string `json:"website"`
	LogoURL      *string `json:"logo_url" validate:"required"`
	ContactEmail string  `json:"contact_email" validate:"required,email"`
	Description  *string `json:"description"`
	Tier         string  `json:"tier"`
}

// UpsertSponsorProfile creates or replaces the caller's sponsor profile and
// promotes the account to the SPONSOR role. Returns whether the profile was
// newly created.
func (s *AccountService) UpsertSponsorProfile(ctx context.Context, userID int64, input SponsorProfileInput) (*domain.Sponsor, bool, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, false, domain.ErrValidation(err.Error())
	}
	tier := input.Tier
	if tier == "" {
		tier = domain.TierPartner
	}
	if !domain.ValidTier(tier) {
		return nil, false, domain.ErrValidation("unknown sponsor tier")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, false, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	sponsor := &domain.Sponsor{
		UserID:       userID,
		CompanyName:  input.CompanyName,
		Website:      input.Website,
		LogoURL:      input.LogoURL,
		ContactEmail: input.ContactEmail,
		Description:  input.Description,
		Tier:         tier,
	}
	id, created, err := s.sponsors.Upsert(ctx, tx, sponsor)
	if err != nil {
		return nil, false, domain.ErrInternal("upsert sponsor profile", err)
	}
	sponsor.ID = id

	user, err := s.users.FindByID(ctx, tx, userID)
	if err != nil {
		return nil, false, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, false, domain.ErrNotFound("user", strconv.FormatInt(userID, 10))
	}
	// FIGHTER and ADMIN outrank SPONSOR and keep their role.
	if user.Role == domain.RoleFan || user.Role == domain.RoleGuest || user.Role == domain.RoleDonor {
		if err := s.users.UpdateRole(ctx, tx, userID, domain.RoleSponsor); err != nil {
			return nil, false, domain.ErrInternal("promote user", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("sponsor profile upserted", "user_id", userID, "created", created)
	return sponsor, created, nil
}

// GetSponsorProfile returns the caller's sponsor profile.
func (s *AccountService) GetSponsorProfile(ctx context.Context, userID int64) (*domain.Sponsor, error) {
	sponsor, err := s.sponsors.FindByUserID(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("get sponsor profile", err)
	}
	if sponsor == nil {
		return nil, domain.ErrNotFound("sponsor profile for user", strconv.FormatInt(userID, 10))
	}
	return sponsor, nil
}

// RegisterDonorInput carries a donor role upgrade for an existing account.
type RegisterDonorInput struct {
	Email         string  `json:"email" validate:"required,email"`
	WalletAddress *string `json:"walletAddress"`
	LogoURL       *string `json:"logo_url"`
}

// RegisterDonor upgrades an existing email account to the DONOR role, attaches
// an optional wallet and records the donor profile, all in one transaction.
func (s *AccountService) RegisterDonor(ctx context.Context, input RegisterDonorInput) (*domain.Donor, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if input.WalletAddress != nil {
		if err := domain.ValidateWalletAddress(*input.WalletAddress); err != nil {
			return nil, domain.ErrValidation(err.Error())
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	user, err := s.users.FindByEmail(ctx, tx, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user with email", input.Email)
	}

	if err := s.users.UpdateRole(ctx, tx, user.ID, domain.RoleDonor); err != nil {
		return nil, domain.ErrInternal("promote user", err)
	}
	if input.WalletAddress != nil {
		if err := s.users.AttachWallet(ctx, tx, user.ID, input.WalletAddress); err != nil {
			if isUniqueViolation(err) {
				return nil, domain.ErrConflict("wallet address already in use")
			}
			return nil, domain.ErrInternal("attach wallet", err)
		}
	}

	donor := &domain.Donor{UserID: user.ID, Email: input.Email, LogoURL: input.LogoURL}
	donorID, err := s.donors.Create(ctx, tx, donor)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict("this account is already a donor")
		}
		return nil, domain.ErrInternal("create donor profile", err)
	}
	donor.ID = donorID

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("donor registered", "user_id", user.ID)
	return donor, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// Safe to run on every startup.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.users.FindByEmail(ctx, s.pool, email)
	if err != nil {
		return domain.ErrInternal("find admin", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.ErrInternal("hash admin password", err)
	}
	passwordHash := string(hash)
	id, err := s.users.Create(ctx, s.pool, &domain.User{
		Name:         "Administrator",
		Email:        &email,
		PasswordHash: &passwordHash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		// A concurrent boot may have won the race.
		if isUniqueViolation(err) {
			return nil
		}
		return domain.ErrInternal("create admin", err)
	}

	s.logger.Info("admin account bootstrapped", "user_id", id)
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
