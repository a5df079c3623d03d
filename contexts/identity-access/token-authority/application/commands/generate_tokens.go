package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "aegis/contexts/identity-access/token-authority/application"
	"aegis/contexts/identity-access/token-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	"aegis/contexts/identity-access/token-authority/ports"
)

// GenerateTokensUseCase mints an access/refresh pair for a user. The two
// tokens are signed with independent secrets.
type GenerateTokensUseCase struct {
	Codec      ports.TokenCodec
	Clock      ports.Clock
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Logger     *slog.Logger
}

func (u GenerateTokensUseCase) Execute(_ context.Context, user entities.User) (entities.TokenPair, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(user.ID) == "" {
		return entities.TokenPair{}, fmt.Errorf("%w: user id is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(user.AccountID) == "" {
		return entities.TokenPair{}, fmt.Errorf("%w: account id is required", domainerrors.ErrValidation)
	}

	now := u.Clock.Now().UTC()

	accessToken, err := u.Codec.SignAccess(entities.AccessClaims{
		UserID:    user.ID,
		AccountID: user.AccountID,
		Username:  user.Username,
		Email:     user.Email,
		IsRoot:    user.IsRoot,
		TokenType: entities.TokenTypeAccess,
		IssuedAt:  now,
		ExpiresAt: now.Add(u.AccessTTL),
	})
	if err != nil {
		return entities.TokenPair{}, err
	}

	refreshToken, err := u.Codec.SignRefresh(entities.RefreshClaims{
		UserID:    user.ID,
		AccountID: user.AccountID,
		TokenType: entities.TokenTypeRefresh,
		IssuedAt:  now,
		ExpiresAt: now.Add(u.RefreshTTL),
	})
	if err != nil {
		return entities.TokenPair{}, err
	}

	logger.Debug("token pair issued",
		"event", "iam_tokens_issued",
		"module", "identity-access/token-authority",
		"layer", "application",
		"user_id", user.ID,
		"account_id", user.AccountID,
	)
	return entities.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.AccessTTL.Seconds()),
	}, nil
}
