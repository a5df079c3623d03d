package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	sessionauthority "aegis/contexts/identity-access/session-authority"
	"aegis/contexts/identity-access/session-authority/adapters/credentials"
	sessionpostgres "aegis/contexts/identity-access/session-authority/adapters/postgres"
	tokenauthority "aegis/contexts/identity-access/token-authority"
	"aegis/contexts/identity-access/token-authority/adapters/jwtcodec"
	tokenpostgres "aegis/contexts/identity-access/token-authority/adapters/postgres"
	redisadapter "aegis/contexts/identity-access/token-authority/adapters/redis"
	tokenentities "aegis/contexts/identity-access/token-authority/domain/entities"
	"aegis/internal/platform/cache"
	"aegis/internal/platform/config"
	"aegis/internal/platform/db"
	"aegis/internal/platform/httpserver"
	"aegis/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *cache.Redis
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres
	sessions sessionauthority.Module
	tokens   tokenauthority.Module
	interval time.Duration
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	if cfg.MemoryMode {
		sessions := sessionauthority.NewInMemoryModule(logger)
		tokens := tokenauthority.NewInMemoryModule(logger)
		server := httpserver.New(sessions, tokens, logger, normalizeAddr(cfg.HTTPPort))
		return &APIApp{server: server, logger: logger}, nil
	}

	sessions, tokens, pg, redis, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(sessions, tokens, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redis,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	sessions, tokens, pg, _, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &WorkerApp{
		postgres: pg,
		sessions: sessions,
		tokens:   tokens,
		interval: cfg.CleanupInterval,
		logger:   logger,
	}, nil
}

func buildModules(cfg config.Config, logger *slog.Logger) (sessionauthority.Module, tokenauthority.Module, *db.Postgres, *cache.Redis, error) {
	var none sessionauthority.Module
	var noTokens tokenauthority.Module

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return none, noTokens, nil, nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.AccessTokenSecret) == "" || strings.TrimSpace(cfg.RefreshTokenSecret) == "" {
		return none, noTokens, nil, nil, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return none, noTokens, nil, nil, err
	}

	redis, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		_ = pg.Close()
		return none, noTokens, nil, nil, err
	}

	bus := messaging.NewBus(logger)

	sessionRepo := sessionpostgres.NewRepository(pg.DB, logger)
	if err := sessionRepo.Migrate(); err != nil {
		_ = redis.Close()
		_ = pg.Close()
		return none, noTokens, nil, nil, err
	}
	sessions := sessionauthority.NewModule(sessionauthority.Dependencies{
		Repository:  sessionRepo,
		Credentials: credentials.NewIssuer(),
		Clock:       sessionpostgres.SystemClock{},
		IDGenerator: sessionpostgres.UUIDGenerator{},
		Publisher:   bus,
		Logger:      logger,
	})

	revocationStore := tokenpostgres.NewRevocationStore(pg.DB, logger)
	if err := revocationStore.Migrate(); err != nil {
		_ = redis.Close()
		_ = pg.Close()
		return none, noTokens, nil, nil, err
	}

	// The user directory is an external collaborator; the HTTP-backed
	// adapter plugs in here once its endpoint config lands. Until then
	// non-memory deployments authenticate nobody rather than anybody.
	tokens := tokenauthority.NewModule(tokenauthority.Dependencies{
		Cache:           redisadapter.NewCache(redis.Client),
		Store:           revocationStore,
		Directory:       nullDirectory{},
		Codec:           jwtcodec.New([]byte(cfg.AccessTokenSecret), []byte(cfg.RefreshTokenSecret), cfg.TokenIssuer),
		Clock:           sessionpostgres.SystemClock{},
		Publisher:       bus,
		AccessTTL:       cfg.AccessTokenTTL,
		RefreshTTL:      cfg.RefreshTokenTTL,
		FallbackEnabled: cfg.BlacklistDBFallback,
		Logger:          logger,
	})

	return sessions, tokens, pg, redis, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

// Run sweeps expired sessions and revocation entries on a fixed
// interval until the context is cancelled.
func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"interval", w.interval.String(),
	)

	for {
		if _, err := w.sessions.Handler.CleanupSessionsHandler(ctx); err != nil {
			w.logger.Error("session cleanup failed",
				"event", "bootstrap_cleanup_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		if _, err := w.tokens.Handler.CleanupHandler(ctx); err != nil {
			w.logger.Error("revocation cleanup failed",
				"event", "bootstrap_cleanup_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.tokens.Ledger != nil {
		_ = w.tokens.Ledger.Close()
	}
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// nullDirectory answers every lookup with no user, which the login use
// cases report as invalid credentials.
type nullDirectory struct{}

func (nullDirectory) AuthenticateUser(context.Context, string, string) (*tokenentities.User, error) {
	return nil, nil
}

func (nullDirectory) AuthenticateIAMUser(context.Context, string, string, string) (*tokenentities.User, error) {
	return nil, nil
}

func (nullDirectory) GetUserByID(context.Context, string) (*tokenentities.User, error) {
	return nil, nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
