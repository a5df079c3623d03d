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

// GetRoleUseCase loads one role by id.
type GetRoleUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u GetRoleUseCase) Execute(ctx context.Context, roleID string) (entities.Role, error) {
	if strings.TrimSpace(roleID) == "" {
		return entities.Role{}, fmt.Errorf("%w: role id is required", domainerrors.ErrValidation)
	}
	return u.Repository.GetRole(ctx, strings.TrimSpace(roleID))
}

// ListRolesUseCase lists every role inside one account.
type ListRolesUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListRolesUseCase) Execute(ctx context.Context, accountID string) ([]entities.Role, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, fmt.Errorf("%w: account id is required", domainerrors.ErrValidation)
	}
	return u.Repository.ListRolesByAccount(ctx, strings.TrimSpace(accountID))
}

// ListRolePoliciesUseCase lists the permission policies attached to a role.
type ListRolePoliciesUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u ListRolePoliciesUseCase) Execute(ctx context.Context, roleID string) ([]entities.Policy, error) {
	if strings.TrimSpace(roleID) == "" {
		return nil, fmt.Errorf("%w: role id is required", domainerrors.ErrValidation)
	}
	if _, err := u.Repository.GetRole(ctx, strings.TrimSpace(roleID)); err != nil {
		return nil, err
	}
	return u.Repository.ListRolePolicies(ctx, strings.TrimSpace(roleID))
}
