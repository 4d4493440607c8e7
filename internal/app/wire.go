package app

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fightleague/registry/internal/auth"
	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/handler"
	adminhandler "github.com/fightleague/registry/internal/handler/admin"
	"github.com/fightleague/registry/internal/repository"
	"github.com/fightleague/registry/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool               *pgxpool.Pool
	JWTMgr             *auth.JWTManager
	Logger             *slog.Logger
	CORSAllowedOrigins string
	NonceTTL           time.Duration
}

// Services bundles the service layer for callers that need direct access
// (startup bootstrap, integration tests).
type Services struct {
	Registration *service.RegistrationService
	WalletAuth   *service.WalletAuthService
	Account      *service.AccountService
	League       *service.LeagueService
}

// NewServices assembles repositories and services.
func NewServices(deps RouterDeps) *Services {
	userRepo := repository.NewPgUserRepository()
	fighterRepo := repository.NewPgFighterRepository()
	sponsorRepo := repository.NewPgSponsorRepository()
	donorRepo := repository.NewPgDonorRepository()
	divisionRepo := repository.NewPgDivisionRepository()
	eventRepo := repository.NewPgEventRepository()
	outboxRepo := repository.NewPgOutboxRepository()

	return &Services{
		Registration: service.NewRegistrationService(deps.Pool, userRepo, fighterRepo,
			sponsorRepo, donorRepo, outboxRepo, deps.JWTMgr, deps.Logger),
		WalletAuth: service.NewWalletAuthService(deps.Pool, userRepo, fighterRepo,
			deps.JWTMgr, deps.NonceTTL, deps.Logger),
		Account: service.NewAccountService(deps.Pool, userRepo, sponsorRepo,
			donorRepo, deps.JWTMgr, deps.Logger),
		League: service.NewLeagueService(deps.Pool, divisionRepo, eventRepo),
	}
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	svcs := NewServices(deps)
	userRepo := repository.NewPgUserRepository()

	fighterHandler := handler.NewFighterHandler(svcs.Registration)
	authHandler := handler.NewAuthHandler(svcs.WalletAuth, svcs.Account)
	sponsorHandler := handler.NewSponsorHandler(svcs.Account)
	donorHandler := handler.NewDonorHandler(svcs.Account)
	leagueHandler := handler.NewLeagueHandler(svcs.League)
	globeHandler := handler.NewGlobeHandler(svcs.Registration)
	fightersAdmin := adminhandler.NewFightersHandler(svcs.Registration)

	origins := strings.Split(deps.CORSAllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(deps.Logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(deps.Logger))
	r.Use(handler.CORSWithOrigins(origins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(deps.Pool))

	// Public roster and reference data
	r.Route("/fighters", func(r chi.Router) {
		r.Post("/register", fighterHandler.Register)
		r.Get("/", fighterHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(deps.JWTMgr, deps.Pool, userRepo))
			r.Get("/me", fighterHandler.Me)
		})

		r.Get("/{id}", fighterHandler.Get)
	})
	r.Get("/divisions", leagueHandler.Divisions)
	r.Get("/events", leagueHandler.Events)
	r.Get("/globe/nation/{countryCode}", globeHandler.Nation)

	// Authentication
	r.Route("/auth", func(r chi.Router) {
		r.Post("/nonce", authHandler.Nonce)
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
		r.Post("/login/email", authHandler.LoginEmail)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(deps.JWTMgr, deps.Pool, userRepo))
			r.Get("/me", authHandler.Me)
		})
	})

	// Authenticated profile management
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(deps.JWTMgr, deps.Pool, userRepo))

		r.Route("/sponsors", func(r chi.Router) {
			r.Get("/me", sponsorHandler.Me)
			r.Post("/me", sponsorHandler.Upsert)
		})
		r.Post("/donors/register", donorHandler.Register)
	})

	// Admin moderation dashboard
	r.Route("/dashboard/admin", func(r chi.Router) {
		r.Use(auth.Authenticate(deps.JWTMgr, deps.Pool, userRepo))
		r.Use(auth.RequireRoles(domain.RoleAdmin))

		r.Route("/fighters", func(r chi.Router) {
			r.Get("/pending", fightersAdmin.ListPending)
			r.Get("/verified", fightersAdmin.ListVerified)
			r.Patch("/{id}/approve", fightersAdmin.Approve)
			r.Delete("/{id}", fightersAdmin.Reject)
		})
	})

	return r
}
