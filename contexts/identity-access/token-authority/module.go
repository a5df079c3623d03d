package tokenauthority

import (
	"log/slog"
	"time"

	httpadapter "aegis/contexts/identity-access/token-authority/adapters/http"
	"aegis/contexts/identity-access/token-authority/adapters/jwtcodec"
	"aegis/contexts/identity-access/token-authority/adapters/memory"
	application "aegis/contexts/identity-access/token-authority/application"
	"aegis/contexts/identity-access/token-authority/application/commands"
	"aegis/contexts/identity-access/token-authority/application/queries"
	"aegis/contexts/identity-access/token-authority/domain/entities"
	"aegis/contexts/identity-access/token-authority/ports"
)

// Module is the token-authority composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Ledger  *application.RevocationLedger
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Cache     ports.RevocationCache
	Store     ports.RevocationStore
	Directory ports.UserDirectory
	Codec     ports.TokenCodec
	Clock     ports.Clock
	Publisher ports.EventPublisher

	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// FallbackEnabled lets a Tier-1 cache miss consult the durable store.
	FallbackEnabled bool
	// MemoryMode marks the explicit non-production in-memory configuration.
	MemoryMode bool
	Logger     *slog.Logger
}

// NewModule wires token-authority use-cases and the transport handler
// using explicit ports.
func NewModule(deps Dependencies) Module {
	ledger := &application.RevocationLedger{
		Cache:           deps.Cache,
		Store:           deps.Store,
		Clock:           deps.Clock,
		FallbackEnabled: deps.FallbackEnabled,
		MemoryMode:      deps.MemoryMode,
		Logger:          deps.Logger,
	}

	generate := commands.GenerateTokensUseCase{
		Codec:      deps.Codec,
		Clock:      deps.Clock,
		AccessTTL:  deps.AccessTTL,
		RefreshTTL: deps.RefreshTTL,
		Logger:     deps.Logger,
	}
	verifyRefresh := queries.VerifyRefreshTokenUseCase{
		Ledger: ledger,
		Codec:  deps.Codec,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		Login: commands.LoginWithCredentialsUseCase{
			Directory: deps.Directory,
			Generate:  generate,
			Logger:    deps.Logger,
		},
		IAMLogin: commands.LoginWithIAMCredentialsUseCase{
			Directory: deps.Directory,
			Generate:  generate,
			Logger:    deps.Logger,
		},
		Refresh: commands.RefreshTokensUseCase{
			Verify:    verifyRefresh,
			Directory: deps.Directory,
			Generate:  generate,
			Logger:    deps.Logger,
		},
		Logout: commands.LogoutUseCase{
			Ledger:    ledger,
			Codec:     deps.Codec,
			Clock:     deps.Clock,
			Publisher: deps.Publisher,
			Logger:    deps.Logger,
		},
		RevokeAll: commands.RevokeAllUserTokensUseCase{
			Ledger: ledger,
			Clock:  deps.Clock,
			// A blanket marker must outlive the longest-lived token
			// issued before it, which is the refresh TTL.
			MaxTokenLifetime: deps.RefreshTTL,
			Publisher:        deps.Publisher,
			Logger:           deps.Logger,
		},
		Cleanup: commands.CleanupTokensUseCase{
			Ledger: ledger,
			Logger: deps.Logger,
		},
		VerifyAccess: queries.VerifyAccessTokenUseCase{
			Ledger: ledger,
			Codec:  deps.Codec,
			Logger: deps.Logger,
		},
		VerifyRefresh: verifyRefresh,
		Ledger:        ledger,
		Logger:        deps.Logger,
	}

	return Module{Handler: handler, Ledger: ledger}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and a seeded root user. This wiring is an explicit
// non-production configuration.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	store.SeedUser(entities.User{
		ID:        "root-user",
		AccountID: "dev-account",
		Username:  "root",
		Email:     "root@example.com",
		IsRoot:    true,
		IsActive:  true,
	}, "root-password")

	module := NewModule(Dependencies{
		Cache:           memory.NewCache(store),
		Store:           store,
		Directory:       store,
		Codec:           jwtcodec.New([]byte("dev-access-secret"), []byte("dev-refresh-secret"), "aegis"),
		Clock:           store,
		AccessTTL:       time.Hour,
		RefreshTTL:      7 * 24 * time.Hour,
		FallbackEnabled: true,
		MemoryMode:      true,
		Logger:          logger,
	})
	module.Store = store
	return module
}
