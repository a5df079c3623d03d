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

// CreateRoleCommand is the transport-agnostic input for role creation.
type CreateRoleCommand struct {
	AccountID          string
	Name               string
	Description        string
	TrustPolicy        []byte
	MaxSessionDuration int
}

// CreateRoleUseCase persists a new role after trust-document validation.
// Name uniqueness per account is enforced by the store's unique index.
type CreateRoleUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreateRoleUseCase) Execute(ctx context.Context, cmd CreateRoleCommand) (entities.Role, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.AccountID) == "" {
		return entities.Role{}, fmt.Errorf("%w: account id is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return entities.Role{}, fmt.Errorf("%w: role name is required", domainerrors.ErrValidation)
	}
	if len(cmd.TrustPolicy) == 0 {
		return entities.Role{}, fmt.Errorf("%w: trust policy document is required", domainerrors.ErrValidation)
	}

	doc, err := policy.Parse(cmd.TrustPolicy)
	if err != nil {
		return entities.Role{}, fmt.Errorf("%w: trust policy is not valid JSON", domainerrors.ErrValidation)
	}
	if result := policy.ValidateTrustDocument(doc); !result.Valid {
		return entities.Role{}, fmt.Errorf("%w: trust policy invalid: %s",
			domainerrors.ErrValidation, strings.Join(result.Defects, "; "))
	}

	maxDuration := cmd.MaxSessionDuration
	if maxDuration <= 0 {
		maxDuration = entities.DefaultMaxSessionDuration
	}

	roleID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Role{}, err
	}

	now := u.Clock.Now().UTC()
	role := entities.Role{
		ID:                 roleID,
		AccountID:          strings.TrimSpace(cmd.AccountID),
		Name:               strings.TrimSpace(cmd.Name),
		Description:        strings.TrimSpace(cmd.Description),
		TrustPolicy:        doc,
		MaxSessionDuration: maxDuration,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := u.Repository.CreateRole(ctx, role); err != nil {
		logger.Error("create role failed",
			"event", "iam_create_role_failed",
			"module", "identity-access/session-authority",
			"layer", "application",
			"account_id", role.AccountID,
			"role_name", role.Name,
			"error", err.Error(),
		)
		return entities.Role{}, err
	}

	logger.Info("role created",
		"event", "iam_role_created",
		"module", "identity-access/session-authority",
		"layer", "application",
		"account_id", role.AccountID,
		"role_id", role.ID,
		"role_name", role.Name,
	)
	return role, nil
}
