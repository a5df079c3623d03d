package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "aegis/contexts/identity-access/session-authority/application"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	"aegis/contexts/identity-access/session-authority/ports"
)

// RevokeSessionUseCase deactivates one live session. The operation is not
// idempotent: a second revoke of the same session reports NotFound.
type RevokeSessionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u RevokeSessionUseCase) Execute(ctx context.Context, sessionID string) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id is required", domainerrors.ErrValidation)
	}

	revoked, err := u.Repository.DeactivateSession(ctx, strings.TrimSpace(sessionID), u.Clock.Now().UTC())
	if err != nil {
		return err
	}
	if !revoked {
		return fmt.Errorf("%w: no active session %s", domainerrors.ErrNotFound, sessionID)
	}

	logger.Info("role session revoked",
		"event", "iam_session_revoked",
		"module", "identity-access/session-authority",
		"layer", "application",
		"session_id", sessionID,
	)
	return nil
}

// CleanupSessionsUseCase sweeps expired sessions. Each row update is
// independently idempotent, so repeated or interrupted sweeps are safe.
type CleanupSessionsUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u CleanupSessionsUseCase) Execute(ctx context.Context) (int64, error) {
	logger := application.ResolveLogger(u.Logger)

	swept, err := u.Repository.DeactivateExpiredSessions(ctx, u.Clock.Now().UTC())
	if err != nil {
		return 0, err
	}

	if swept > 0 {
		logger.Info("expired sessions swept",
			"event", "iam_sessions_swept",
			"module", "identity-access/session-authority",
			"layer", "application",
			"count", swept,
		)
	}
	return swept, nil
}
