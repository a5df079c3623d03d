package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "aegis/contexts/identity-access/token-authority/application"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	"aegis/contexts/identity-access/token-authority/ports"
	"aegis/internal/shared/events"

	"github.com/google/uuid"
)

// RevokeAllUserTokensUseCase writes a blanket marker invalidating every
// token issued to the user before this instant.
type RevokeAllUserTokensUseCase struct {
	Ledger *application.RevocationLedger
	Clock  ports.Clock
	// MaxTokenLifetime bounds how long the marker must outlive its
	// creation: the longest-lived token issued before it.
	MaxTokenLifetime time.Duration
	Publisher        ports.EventPublisher
	Logger           *slog.Logger
}

func (u RevokeAllUserTokensUseCase) Execute(ctx context.Context, accountID string, userID string, reason string) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("%w: account id is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domainerrors.ErrValidation)
	}

	entry, err := u.Ledger.RevokeAllUserTokens(ctx,
		strings.TrimSpace(accountID), strings.TrimSpace(userID), reason, u.MaxTokenLifetime)
	if err != nil {
		return err
	}

	if u.Publisher != nil {
		_ = u.Publisher.Publish(ctx, events.TypeUserTokensRevoked, events.Envelope{
			EventID:        uuid.NewString(),
			EventType:      events.TypeUserTokensRevoked,
			SourceService:  "identity-access/token-authority",
			OccurredAtUTC:  entry.RevokedAt,
			EntityType:     "user",
			EntityID:       userID,
			PayloadVersion: 1,
			Payload: map[string]any{
				"user_id":    userID,
				"account_id": accountID,
				"reason":     reason,
			},
		})
	}

	logger.Info("all user tokens revoked",
		"event", "iam_user_tokens_revoked",
		"module", "identity-access/token-authority",
		"layer", "application",
		"user_id", userID,
		"account_id", accountID,
	)
	return nil
}

// CleanupTokensUseCase sweeps revocation entries whose underlying tokens
// have passed natural expiry. Safe to run repeatedly.
type CleanupTokensUseCase struct {
	Ledger *application.RevocationLedger
	Logger *slog.Logger
}

func (u CleanupTokensUseCase) Execute(ctx context.Context) (int64, error) {
	logger := application.ResolveLogger(u.Logger)

	swept, err := u.Ledger.Cleanup(ctx)
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		logger.Info("expired revocation entries swept",
			"event", "iam_revocations_swept",
			"module", "identity-access/token-authority",
			"layer", "application",
			"count", swept,
		)
	}
	return swept, nil
}
