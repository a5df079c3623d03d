package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"aegis/contexts/identity-access/session-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	"aegis/contexts/identity-access/session-authority/ports"
)

// GetSessionUseCase loads one role session; reads past the expiry instant
// report Expired rather than returning a stale row.
type GetSessionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u GetSessionUseCase) Execute(ctx context.Context, sessionID string) (entities.RoleSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return entities.RoleSession{}, fmt.Errorf("%w: session id is required", domainerrors.ErrValidation)
	}

	session, err := u.Repository.GetSession(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return entities.RoleSession{}, err
	}
	if !session.ExpiresAt.After(u.Clock.Now().UTC()) {
		return entities.RoleSession{}, fmt.Errorf("%w: session %s", domainerrors.ErrExpired, sessionID)
	}
	return session, nil
}

// ListActiveSessionsUseCase lists live sessions for an account. Expiry is
// enforced by the read predicate, never by a background timer.
type ListActiveSessionsUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u ListActiveSessionsUseCase) Execute(ctx context.Context, accountID string) ([]entities.RoleSession, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, fmt.Errorf("%w: account id is required", domainerrors.ErrValidation)
	}
	return u.Repository.ListActiveSessions(ctx, strings.TrimSpace(accountID), u.Clock.Now().UTC())
}
