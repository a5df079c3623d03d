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

// CreatePolicyCommand is the transport-agnostic input for policy creation.
type CreatePolicyCommand struct {
	AccountID string
	Name      string
	Document  []byte
	Type      string
}

// CreatePolicyUseCase persists a new permission policy.
type CreatePolicyUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreatePolicyUseCase) Execute(ctx context.Context, cmd CreatePolicyCommand) (entities.Policy, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.AccountID) == "" {
		return entities.Policy{}, fmt.Errorf("%w: account id is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return entities.Policy{}, fmt.Errorf("%w: policy name is required", domainerrors.ErrValidation)
	}
	if len(cmd.Document) == 0 {
		return entities.Policy{}, fmt.Errorf("%w: policy document is required", domainerrors.ErrValidation)
	}

	doc, err := policy.Parse(cmd.Document)
	if err != nil {
		return entities.Policy{}, fmt.Errorf("%w: policy document is not valid JSON", domainerrors.ErrValidation)
	}

	policyType := entities.PolicyType(strings.TrimSpace(cmd.Type))
	if policyType == "" {
		policyType = entities.PolicyTypeManaged
	}

	policyID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Policy{}, err
	}

	now := u.Clock.Now().UTC()
	item := entities.Policy{
		ID:        policyID,
		AccountID: strings.TrimSpace(cmd.AccountID),
		Name:      strings.TrimSpace(cmd.Name),
		Document:  doc,
		Type:      policyType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.Repository.CreatePolicy(ctx, item); err != nil {
		return entities.Policy{}, err
	}

	logger.Info("policy created",
		"event", "iam_policy_created",
		"module", "identity-access/session-authority",
		"layer", "application",
		"account_id", item.AccountID,
		"policy_id", item.ID,
		"policy_name", item.Name,
	)
	return item, nil
}
