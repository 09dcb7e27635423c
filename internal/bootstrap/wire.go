package bootstrap

import (
	"context"
	"net/http"

	"github.com/jobhive/auth-service/internal/application/identity"
	"github.com/jobhive/auth-service/internal/config"
	"github.com/jobhive/auth-service/internal/domain"
	"github.com/jobhive/auth-service/internal/infrastructure/db/postgres"
	"github.com/jobhive/auth-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/jobhive/auth-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/jobhive/auth-service/internal/infrastructure/redis"
	"github.com/jobhive/auth-service/internal/infrastructure/security"
	"github.com/jobhive/auth-service/internal/logger"
	"github.com/jobhive/auth-service/internal/metrics"
	http_handlers "github.com/jobhive/auth-service/internal/transport/http/handlers"
	"github.com/jobhive/auth-service/internal/transport/http/middleware"
	"github.com/jobhive/auth-service/internal/transport/http/response"
	"github.com/jobhive/auth-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewUserRepo func(cfg *config.Config) (identity.UserRepo, func(), error)

	NewTokenStore func(cfg *config.Config) (identity.OneTimeTokenStore, func(), error)

	NewPublisher func(cfg *config.Config) (identity.EventPublisher, func(), error)

	NewRouter func(router.Deps) (http.Handler, error)
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) accounts storage
	accounts, closeRepo, err := deps.NewUserRepo(cfg)
	if err != nil {
		return nil, nil, err
	}
	if closeRepo != nil {
		cleanupFns = append(cleanupFns, closeRepo)
	}

	// 2) one-time token store
	tokens, closeTokens, err := deps.NewTokenStore(cfg)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}
	if closeTokens != nil {
		cleanupFns = append(cleanupFns, closeTokens)
	}

	// 3) event publisher
	pub, closePub, err := deps.NewPublisher(cfg)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}
	if closePub != nil {
		cleanupFns = append(cleanupFns, closePub)
	}

	// 4) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// 5) service
	svc := identity.NewService(accounts, hasher, signer, tokens, pub, identity.Config{
		SessionTokenTTL:     cfg.SessionTokenTTL,
		VerifyEmailBaseURL:  cfg.VerifyEmailBaseURL,
		VerifyEmailTokenTTL: cfg.VerifyEmailTokenTTL,
	})

	// 6) handlers + middleware
	m := metrics.New()
	authH := http_handlers.NewAuthHandler(svc)

	mux, err := deps.NewRouter(router.Deps{
		Auth:        authH,
		Health:      http_handlers.Health,
		Metrics:     m.Handler(),
		RequestIDMW: middleware.RequestID,
		MetricsMW:   middleware.Metrics(m),
		AuthMW:      middleware.Auth(signer, response.WriteError),
		EmployerMW:  middleware.RequireRole(response.WriteError, domain.RoleEmployer),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return srv, func() { runCleanup(cleanupFns) }, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig:    config.Load,
		NewUserRepo:   newUserRepo,
		NewTokenStore: newTokenStore,
		NewPublisher:  newPublisher,
		NewRouter:     router.New,
	}
}

// newUserRepo connects to Postgres and applies migrations. Dev mode with
// no DB_ADDR falls back to the in-memory repo.
func newUserRepo(cfg *config.Config) (identity.UserRepo, func(), error) {
	if cfg.DBAddr == "" && cfg.Env == "dev" {
		logger.Logger.Warn().Msg("no DB_ADDR; using in-memory account store")
		return memory.NewUserRepo(), nil, nil
	}

	db, err := config.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return postgres.NewUserRepo(db), func() { _ = db.Close() }, nil
}

func newTokenStore(cfg *config.Config) (identity.OneTimeTokenStore, func(), error) {
	if cfg.RedisAddr == "" {
		if cfg.Env != "dev" {
			logger.Logger.Warn().Msg("no REDIS_ADDR; verification tokens held in memory")
		}
		return memory.NewOneTimeTokenStore(), nil, nil
	}

	client, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; verification tokens held in memory")
			return memory.NewOneTimeTokenStore(), nil, nil
		}
		return nil, nil, err
	}
	return redis.NewOneTimeTokenStore(client), func() { _ = client.Close() }, nil
}

func newPublisher(cfg *config.Config) (identity.EventPublisher, func(), error) {
	if cfg.RabbitURL == "" && cfg.Env == "dev" {
		logger.Logger.Warn().Msg("no RABBIT_URL; auth events dropped")
		return memory.NewNoopPublisher(), nil, nil
	}

	pub, err := rabbitmq_pub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			return memory.NewNoopPublisher(), nil, nil
		}
		return nil, nil, err
	}
	return pub, func() { _ = pub.Close() }, nil
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
