package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "aegis/contexts/identity-access/session-authority/application"
	"aegis/contexts/identity-access/session-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	"aegis/contexts/identity-access/session-authority/domain/policy"
	"aegis/contexts/identity-access/session-authority/ports"
)

// UpdateRoleCommand carries optional mutations; nil fields stay unchanged.
type UpdateRoleCommand struct {
	RoleID             string
	Description        *string
	TrustPolicy        []byte
	MaxSessionDuration *int
}

// UpdateRoleUseCase applies partial role mutations.
type UpdateRoleUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u UpdateRoleUseCase) Execute(ctx context.Context, cmd UpdateRoleCommand) (entities.Role, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.RoleID) == "" {
		return entities.Role{}, fmt.Errorf("%w: role id is required", domainerrors.ErrValidation)
	}
	if cmd.MaxSessionDuration != nil && *cmd.MaxSessionDuration <= 0 {
		return entities.Role{}, fmt.Errorf("%w: max session duration must be positive", domainerrors.ErrValidation)
	}

	update := ports.RoleUpdate{
		RoleID:             strings.TrimSpace(cmd.RoleID),
		Description:        cmd.Description,
		MaxSessionDuration: cmd.MaxSessionDuration,
		UpdatedAt:          u.Clock.Now().UTC(),
	}

	if len(cmd.TrustPolicy) > 0 {
		doc, err := policy.Parse(cmd.TrustPolicy)
		if err != nil {
			return entities.Role{}, fmt.Errorf("%w: trust policy is not valid JSON", domainerrors.ErrValidation)
		}
		if result := policy.ValidateTrustDocument(doc); !result.Valid {
			return entities.Role{}, fmt.Errorf("%w: trust policy invalid: %s",
				domainerrors.ErrValidation, strings.Join(result.Defects, "; "))
		}
		update.TrustPolicy = &doc
	}

	role, err := u.Repository.UpdateRole(ctx, update)
	if err != nil {
		return entities.Role{}, err
	}

	logger.Info("role updated",
		"event", "iam_role_updated",
		"module", "identity-access/session-authority",
		"layer", "application",
		"role_id", role.ID,
		"account_id", role.AccountID,
	)
	return role, nil
}
