package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fightleague/registry/internal/auth"
	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/repository"
	"github.com/fightleague/registry/internal/wallet"
)

// WalletAuthService implements the nonce challenge-response login.
type WalletAuthService struct {
	pool     *pgxpool.Pool
	users    repository.UserRepository
	fighters repository.FighterRepository
	jwtMgr   *auth.JWTManager
	nonceTTL time.Duration
	logger   *slog.Logger
}

// NewWalletAuthService creates a WalletAuthService.
func NewWalletAuthService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	fighters repository.FighterRepository,
	jwtMgr *auth.JWTManager,
	nonceTTL time.Duration,
	logger *slog.Logger,
) *WalletAuthService {
	return &WalletAuthService{
		pool:     pool,
		users:    users,
		fighters: fighters,
		jwtMgr:   jwtMgr,
		nonceTTL: nonceTTL,
		logger:   logger,
	}
}

// LoginResult is what a successful signature verification returns.
type LoginResult struct {
	Token string
	Role  domain.Role
}

// IssueNonce stores a fresh challenge on the wallet's user and returns the
// exact message the client must sign. A repeat call overwrites the prior
// challenge, so only the latest one verifies.
func (s *WalletAuthService) IssueNonce(ctx context.Context, walletAddr string) (string, error) {
	if err := domain.ValidateWalletAddress(walletAddr); err != nil {
		return "", domain.ErrValidation(err.Error())
	}

	user, err := s.users.FindByWallet(ctx, s.pool, walletAddr)
	if err != nil {
		return "", domain.ErrInternal("find wallet user", err)
	}
	if user == nil {
		return "", domain.ErrNotFound("user with wallet", walletAddr)
	}

	challenge, err := wallet.NewChallenge()
	if err != nil {
		return "", domain.ErrInternal("generate challenge", err)
	}
	if err := s.users.SetNonce(ctx, s.pool, user.ID, challenge, time.Now()); err != nil {
		return "", domain.ErrInternal("store challenge", err)
	}
	return challenge, nil
}

// VerifySignature checks a personal-sign signature over the issued challenge
// and exchanges it for a session token. The challenge is single use: it is
// consumed atomically before the pending-profile gate, so a rejected login
// still burns it.
func (s *WalletAuthService) VerifySignature(ctx context.Context, walletAddr, signature string) (*LoginResult, error) {
	if err := domain.ValidateWalletAddress(walletAddr); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	user, err := s.users.FindByWallet(ctx, s.pool, walletAddr)
	if err != nil {
		return nil, domain.ErrInternal("find wallet user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user with wallet", walletAddr)
	}
	if user.Nonce == nil || user.NonceIssuedAt == nil {
		return nil, domain.ErrNotFound("login challenge for wallet", walletAddr)
	}

	challenge := *user.Nonce
	if time.Since(*user.NonceIssuedAt) > s.nonceTTL {
		// Burn the stale challenge so it cannot be retried later.
		if _, err := s.users.ConsumeNonce(ctx, s.pool, user.ID, challenge); err != nil {
			return nil, domain.ErrInternal("consume challenge", err)
		}
		return nil, domain.ErrUnauthorized("challenge expired, request a new one")
	}

	valid, err := wallet.VerifyPersonalSign(walletAddr, challenge, signature)
	if err != nil || !valid {
		// An invalid signature leaves the challenge in place: the client may
		// retry signing the same message.
		return nil, domain.ErrUnauthorized("invalid signature")
	}

	consumed, err := s.users.ConsumeNonce(ctx, s.pool, user.ID, challenge)
	if err != nil {
		return nil, domain.ErrInternal("consume challenge", err)
	}
	if !consumed {
		return nil, domain.ErrUnauthorized("challenge already used")
	}

	if user.Role == domain.RoleFan {
		fighter, err := s.fighters.FindByUserID(ctx, s.pool, user.ID)
		if err != nil {
			return nil, domain.ErrInternal("check fighter profile", err)
		}
		if fighter != nil && fighter.Status == domain.FighterPending {
			return nil, domain.ErrPendingApproval()
		}
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, walletAddr, "", user.Role)
	if err != nil {
		return nil, domain.ErrInternal("issue token", err)
	}

	s.logger.Info("wallet login", "user_id", user.ID, "role", user.Role)
	return &LoginResult{Token: token, Role: user.Role}, nil
}
