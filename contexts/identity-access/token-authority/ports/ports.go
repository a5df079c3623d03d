package ports

import (
	"context"
	"time"

	"aegis/contexts/identity-access/token-authority/domain/entities"
	"aegis/internal/shared/events"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RevocationCache is Tier 1 of the revocation ledger: a low-latency
// keyed cache with TTL semantics. Cache unavailability degrades latency
// only, never correctness.
type RevocationCache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	Count(ctx context.Context) (int64, error)
	Close() error
}

// RevocationStore is Tier 2 of the ledger: the durable source of truth
// shared by every service instance across restarts.
type RevocationStore interface {
	Put(ctx context.Context, entry entities.RevocationEntry) error
	Get(ctx context.Context, fingerprint string) (entities.RevocationEntry, bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// UserDirectory is the external user service consumed by login and
// refresh flows. A nil user with a nil error means authentication failed.
type UserDirectory interface {
	AuthenticateUser(ctx context.Context, email string, password string) (*entities.User, error)
	AuthenticateIAMUser(ctx context.Context, accountID string, username string, password string) (*entities.User, error)
	GetUserByID(ctx context.Context, userID string) (*entities.User, error)
}

// EventPublisher emits best-effort observability events.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// TokenCodec signs and verifies the compact three-segment bearer tokens.
// Access and refresh tokens are bound to independent secrets.
type TokenCodec interface {
	SignAccess(claims entities.AccessClaims) (string, error)
	SignRefresh(claims entities.RefreshClaims) (string, error)
	ParseAccess(token string) (entities.AccessClaims, error)
	ParseRefresh(token string) (entities.RefreshClaims, error)
	// PeekType reads the type claim without verifying the signature.
	// It is a cheap early rejection only; no claim from it may feed an
	// authorization decision before the signature verifies.
	PeekType(token string) (entities.TokenType, error)
	// PeekExpiry reads the expiry claim without verification, used to
	// bound revocation-entry lifetimes.
	PeekExpiry(token string) (time.Time, error)
	Fingerprint(token string) string
}
