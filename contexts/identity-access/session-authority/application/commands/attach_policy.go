package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "aegis/contexts/identity-access/session-authority/application"
	"aegis/contexts/identity-access/session-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	"aegis/contexts/identity-access/session-authority/domain/services"
	"aegis/contexts/identity-access/session-authority/ports"
)

// AttachPolicyCommand references a policy by id, ARN, or literal name.
type AttachPolicyCommand struct {
	RoleID           string
	PolicyIdentifier string
}

// AttachPolicyUseCase joins a policy to a role inside one account.
type AttachPolicyUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u AttachPolicyUseCase) Execute(ctx context.Context, cmd AttachPolicyCommand) (entities.PolicyAttachment, error) {
	logger := application.ResolveLogger(u.Logger)

	role, target, err := resolveRoleAndPolicy(ctx, u.Repository, cmd.RoleID, cmd.PolicyIdentifier)
	if err != nil {
		return entities.PolicyAttachment{}, err
	}

	attachment := entities.PolicyAttachment{
		RoleID:     role.ID,
		PolicyID:   target.ID,
		AccountID:  role.AccountID,
		AttachedAt: u.Clock.Now().UTC(),
	}
	if err := u.Repository.AttachPolicy(ctx, attachment); err != nil {
		return entities.PolicyAttachment{}, err
	}

	logger.Info("policy attached",
		"event", "iam_policy_attached",
		"module", "identity-access/session-authority",
		"layer", "application",
		"role_id", role.ID,
		"policy_id", target.ID,
		"account_id", role.AccountID,
	)
	return attachment, nil
}

// DetachPolicyUseCase removes a role/policy join. Detaching a join that
// does not exist is a NotFound, not a no-op.
type DetachPolicyUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u DetachPolicyUseCase) Execute(ctx context.Context, cmd AttachPolicyCommand) error {
	logger := application.ResolveLogger(u.Logger)

	role, target, err := resolveRoleAndPolicy(ctx, u.Repository, cmd.RoleID, cmd.PolicyIdentifier)
	if err != nil {
		return err
	}

	if err := u.Repository.DetachPolicy(ctx, role.ID, target.ID); err != nil {
		return err
	}

	logger.Info("policy detached",
		"event", "iam_policy_detached",
		"module", "identity-access/session-authority",
		"layer", "application",
		"role_id", role.ID,
		"policy_id", target.ID,
	)
	return nil
}

// resolveRoleAndPolicy loads the role, classifies the raw policy reference
// through the three-branch tagged resolution, and resolves it within the
// role's account only. Cross-account references surface as NotFound.
func resolveRoleAndPolicy(
	ctx context.Context,
	repository ports.Repository,
	roleID string,
	rawIdentifier string,
) (entities.Role, entities.Policy, error) {
	if strings.TrimSpace(roleID) == "" {
		return entities.Role{}, entities.Policy{}, fmt.Errorf("%w: role id is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(rawIdentifier) == "" {
		return entities.Role{}, entities.Policy{}, fmt.Errorf("%w: policy identifier is required", domainerrors.ErrValidation)
	}

	role, err := repository.GetRole(ctx, strings.TrimSpace(roleID))
	if err != nil {
		return entities.Role{}, entities.Policy{}, err
	}

	identifier := services.ResolvePolicyIdentifier(rawIdentifier)

	var target entities.Policy
	switch identifier.Kind {
	case services.PolicyIdentifierID:
		target, err = repository.GetPolicyByID(ctx, role.AccountID, identifier.Value)
	case services.PolicyIdentifierARN, services.PolicyIdentifierName:
		target, err = repository.GetPolicyByName(ctx, role.AccountID, identifier.Value)
	}
	if err != nil {
		return entities.Role{}, entities.Policy{}, err
	}
	return role, target, nil
}
