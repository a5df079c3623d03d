package sessionauthority

import (
	"log/slog"

	"aegis/contexts/identity-access/session-authority/adapters/credentials"
	httpadapter "aegis/contexts/identity-access/session-authority/adapters/http"
	"aegis/contexts/identity-access/session-authority/adapters/memory"
	"aegis/contexts/identity-access/session-authority/application/commands"
	"aegis/contexts/identity-access/session-authority/application/queries"
	"aegis/contexts/identity-access/session-authority/ports"
)

// Module is the session-authority composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Credentials ports.CredentialIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Publisher   ports.EventPublisher
	Logger      *slog.Logger
}

// NewModule wires session-authority use-cases and the transport handler
// using explicit ports.
func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		CreateRole: commands.CreateRoleUseCase{
			Repository:  deps.Repository,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		UpdateRole: commands.UpdateRoleUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		DeleteRole: commands.DeleteRoleUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		CreatePolicy: commands.CreatePolicyUseCase{
			Repository:  deps.Repository,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		AttachPolicy: commands.AttachPolicyUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		DetachPolicy: commands.DetachPolicyUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		AssumeRole: commands.AssumeRoleUseCase{
			Repository:  deps.Repository,
			Credentials: deps.Credentials,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Publisher:   deps.Publisher,
			Logger:      deps.Logger,
		},
		RevokeSession: commands.RevokeSessionUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		CleanupSessions: commands.CleanupSessionsUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		GetRole: queries.GetRoleUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		ListRoles: queries.ListRolesUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		ListRolePolicies: queries.ListRolePoliciesUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		GetSession: queries.GetSessionUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		ListSessions: queries.ListActiveSessionsUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		ValidateTrust: queries.ValidateTrustPolicyUseCase{
			Logger: deps.Logger,
		},
		Authorize: queries.AuthorizeUseCase{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{Handler: handler}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. This wiring is an explicit non-production configuration.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Credentials: credentials.NewIssuer(),
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
