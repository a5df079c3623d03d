package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "aegis/contexts/identity-access/token-authority/application"
	"aegis/contexts/identity-access/token-authority/application/queries"
	"aegis/contexts/identity-access/token-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	"aegis/contexts/identity-access/token-authority/ports"
)

// RefreshTokensUseCase verifies a refresh token, reloads the current
// user, and re-issues a fresh pair. There is no refresh-token rotation:
// the old refresh token stays valid until its own expiry unless
// explicitly revoked.
type RefreshTokensUseCase struct {
	Verify    queries.VerifyRefreshTokenUseCase
	Directory ports.UserDirectory
	Generate  GenerateTokensUseCase
	Logger    *slog.Logger
}

func (u RefreshTokensUseCase) Execute(ctx context.Context, refreshToken string) (entities.TokenPair, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(refreshToken) == "" {
		return entities.TokenPair{}, fmt.Errorf("%w: refresh token is required", domainerrors.ErrValidation)
	}

	claims, err := u.Verify.Execute(ctx, refreshToken)
	if err != nil {
		return entities.TokenPair{}, err
	}

	user, err := u.Directory.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return entities.TokenPair{}, err
	}
	if user == nil {
		return entities.TokenPair{}, fmt.Errorf("%w: user %s", domainerrors.ErrNotFound, claims.UserID)
	}
	if !user.IsActive {
		logger.Info("refresh rejected for inactive user",
			"event", "iam_refresh_inactive_user",
			"module", "identity-access/token-authority",
			"layer", "application",
			"user_id", user.ID,
		)
		return entities.TokenPair{}, domainerrors.ErrInactiveUser
	}

	return u.Generate.Execute(ctx, *user)
}
