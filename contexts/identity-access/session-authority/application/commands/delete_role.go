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

// DeleteRoleUseCase removes a role and its attachments.
type DeleteRoleUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u DeleteRoleUseCase) Execute(ctx context.Context, roleID string) error {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(roleID) == "" {
		return fmt.Errorf("%w: role id is required", domainerrors.ErrValidation)
	}

	if err := u.Repository.DeleteRole(ctx, strings.TrimSpace(roleID)); err != nil {
		return err
	}

	logger.Info("role deleted",
		"event", "iam_role_deleted",
		"module", "identity-access/session-authority",
		"layer", "application",
		"role_id", roleID,
	)
	return nil
}
