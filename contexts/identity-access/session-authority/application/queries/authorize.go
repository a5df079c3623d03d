package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "aegis/contexts/identity-access/session-authority/application"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	"aegis/contexts/identity-access/session-authority/domain/policy"
	"aegis/contexts/identity-access/session-authority/ports"
)

// AuthorizeQuery is one policy decision point question: may the principal
// perform the action on the resource under the role's attached policies.
type AuthorizeQuery struct {
	RoleID    string
	Principal string
	Action    string
	Resource  string
}

// AuthorizeDecision reports the combined evaluation outcome.
type AuthorizeDecision struct {
	Decision  policy.Decision `json:"decision"`
	Allowed   bool            `json:"allowed"`
	CheckedAt time.Time       `json:"checked_at"`
}

// AuthorizeUseCase evaluates the permission documents attached to a role.
type AuthorizeUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u AuthorizeUseCase) Execute(ctx context.Context, query AuthorizeQuery) (AuthorizeDecision, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(query.RoleID) == "" {
		return AuthorizeDecision{}, fmt.Errorf("%w: role id is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(query.Action) == "" {
		return AuthorizeDecision{}, fmt.Errorf("%w: action is required", domainerrors.ErrValidation)
	}

	if _, err := u.Repository.GetRole(ctx, strings.TrimSpace(query.RoleID)); err != nil {
		return AuthorizeDecision{}, err
	}
	attached, err := u.Repository.ListRolePolicies(ctx, strings.TrimSpace(query.RoleID))
	if err != nil {
		return AuthorizeDecision{}, err
	}

	documents := make([]policy.Document, 0, len(attached))
	for _, item := range attached {
		documents = append(documents, item.Document)
	}

	decision := policy.Evaluate(documents, policy.EvaluationInput{
		Principal: query.Principal,
		Action:    query.Action,
		Resource:  query.Resource,
	})

	if decision != policy.DecisionAllow {
		logger.Debug("authorization denied",
			"event", "iam_authorize_denied",
			"module", "identity-access/session-authority",
			"layer", "application",
			"role_id", query.RoleID,
			"principal", query.Principal,
			"action", query.Action,
			"decision", string(decision),
		)
	}

	return AuthorizeDecision{
		Decision:  decision,
		Allowed:   decision == policy.DecisionAllow,
		CheckedAt: u.Clock.Now().UTC(),
	}, nil
}
