package ports

import (
	"context"
	"time"

	"aegis/contexts/identity-access/session-authority/domain/entities"
	"aegis/contexts/identity-access/session-authority/domain/policy"
	"aegis/internal/shared/events"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CredentialIssuer mints the temporary credential triad for an assumed
// session. The returned fingerprint is the only token-derived value a
// caller may persist.
type CredentialIssuer interface {
	Issue(ctx context.Context, roleID string, sessionName string, expiresAt time.Time) (entities.IssuedCredentials, string, error)
}

// EventPublisher emits best-effort observability events. Failures are
// swallowed by callers and never interrupt request control flow.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// RoleUpdate carries the mutable role fields for updateRole.
type RoleUpdate struct {
	RoleID             string
	Description        *string
	TrustPolicy        *policy.Document
	MaxSessionDuration *int
	UpdatedAt          time.Time
}

// Repository is the durable-store boundary for roles, policies,
// attachments, and role sessions. Uniqueness constraints (role name per
// account, attachment pair) are enforced by the store itself, never by
// in-process locks.
type Repository interface {
	CreateRole(ctx context.Context, role entities.Role) error
	GetRole(ctx context.Context, roleID string) (entities.Role, error)
	ListRolesByAccount(ctx context.Context, accountID string) ([]entities.Role, error)
	UpdateRole(ctx context.Context, update RoleUpdate) (entities.Role, error)
	DeleteRole(ctx context.Context, roleID string) error

	CreatePolicy(ctx context.Context, policy entities.Policy) error
	GetPolicyByID(ctx context.Context, accountID string, policyID string) (entities.Policy, error)
	GetPolicyByName(ctx context.Context, accountID string, name string) (entities.Policy, error)
	AttachPolicy(ctx context.Context, attachment entities.PolicyAttachment) error
	DetachPolicy(ctx context.Context, roleID string, policyID string) error
	ListRolePolicies(ctx context.Context, roleID string) ([]entities.Policy, error)

	CreateSession(ctx context.Context, session entities.RoleSession) error
	GetSession(ctx context.Context, sessionID string) (entities.RoleSession, error)
	ListActiveSessions(ctx context.Context, accountID string, now time.Time) ([]entities.RoleSession, error)
	DeactivateSession(ctx context.Context, sessionID string, now time.Time) (bool, error)
	DeactivateExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
