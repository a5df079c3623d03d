package commands

import (
	"context"
	"log/slog"
	"strings"

	application "aegis/contexts/identity-access/token-authority/application"
	"aegis/contexts/identity-access/token-authority/domain/entities"
	"aegis/contexts/identity-access/token-authority/ports"
	"aegis/internal/shared/events"

	"github.com/google/uuid"
)

// LogoutCommand carries whichever tokens the caller presents; absence of
// either one is not an error.
type LogoutCommand struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	AccountID    string
	Reason       string
	ClientInfo   string
}

// LogoutUseCase revokes the presented tokens through the ledger. Each
// revocation entry lives only as long as the token's remaining natural
// lifetime.
type LogoutUseCase struct {
	Ledger    *application.RevocationLedger
	Codec     ports.TokenCodec
	Clock     ports.Clock
	Publisher ports.EventPublisher
	Logger    *slog.Logger
}

func (u LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	logger := application.ResolveLogger(u.Logger)

	revoked := 0
	for _, token := range []string{cmd.AccessToken, cmd.RefreshToken} {
		if strings.TrimSpace(token) == "" {
			continue
		}
		if err := u.revokeOne(ctx, token, cmd); err != nil {
			return err
		}
		revoked++
	}

	if revoked > 0 {
		u.publishRevoked(ctx, cmd, revoked)
		logger.Info("logout completed",
			"event", "iam_logout",
			"module", "identity-access/token-authority",
			"layer", "application",
			"user_id", cmd.UserID,
			"tokens_revoked", revoked,
		)
	}
	return nil
}

func (u LogoutUseCase) revokeOne(ctx context.Context, token string, cmd LogoutCommand) error {
	now := u.Clock.Now().UTC()

	expiresAt, err := u.Codec.PeekExpiry(token)
	if err != nil || !expiresAt.After(now) {
		// Unparseable or already expired: nothing to blacklist, the
		// signature check rejects it on its own.
		return nil
	}

	return u.Ledger.RevokeToken(ctx, entities.RevocationEntry{
		Fingerprint: u.Codec.Fingerprint(token),
		Kind:        entities.RevocationKindToken,
		UserID:      cmd.UserID,
		AccountID:   cmd.AccountID,
		Reason:      cmd.Reason,
		ClientInfo:  cmd.ClientInfo,
		RevokedAt:   now,
		ExpiresAt:   expiresAt,
	})
}

func (u LogoutUseCase) publishRevoked(ctx context.Context, cmd LogoutCommand, count int) {
	if u.Publisher == nil {
		return
	}
	_ = u.Publisher.Publish(ctx, events.TypeTokenRevoked, events.Envelope{
		EventID:        uuid.NewString(),
		EventType:      events.TypeTokenRevoked,
		SourceService:  "identity-access/token-authority",
		OccurredAtUTC:  u.Clock.Now().UTC(),
		EntityType:     "bearer_token",
		EntityID:       cmd.UserID,
		PayloadVersion: 1,
		Payload: map[string]any{
			"user_id":        cmd.UserID,
			"account_id":     cmd.AccountID,
			"reason":         cmd.Reason,
			"tokens_revoked": count,
		},
	})
}
