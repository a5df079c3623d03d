package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "aegis/contexts/identity-access/session-authority/application"
	"aegis/contexts/identity-access/session-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	"aegis/contexts/identity-access/session-authority/domain/policy"
	"aegis/contexts/identity-access/session-authority/ports"
	"aegis/internal/shared/events"
)

// AssumeRoleCommand is the transport-agnostic input for assuming a role.
type AssumeRoleCommand struct {
	RoleID          string
	UserID          string
	SessionName     string
	DurationSeconds int
}

// AssumeRoleUseCase evaluates the role trust document for the calling
// principal, mints a one-time credential triad, and persists the session
// carrying only the token fingerprint.
type AssumeRoleUseCase struct {
	Repository  ports.Repository
	Credentials ports.CredentialIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Publisher   ports.EventPublisher
	Logger      *slog.Logger
}

func (u AssumeRoleUseCase) Execute(ctx context.Context, cmd AssumeRoleCommand) (entities.AssumedSession, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.RoleID) == "" {
		return entities.AssumedSession{}, fmt.Errorf("%w: role id is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(cmd.UserID) == "" {
		return entities.AssumedSession{}, fmt.Errorf("%w: user id is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(cmd.SessionName) == "" {
		return entities.AssumedSession{}, fmt.Errorf("%w: session name is required", domainerrors.ErrValidation)
	}

	role, err := u.Repository.GetRole(ctx, strings.TrimSpace(cmd.RoleID))
	if err != nil {
		return entities.AssumedSession{}, err
	}

	duration := cmd.DurationSeconds
	if duration <= 0 {
		duration = role.MaxSessionDuration
	}
	if duration > role.MaxSessionDuration {
		return entities.AssumedSession{}, fmt.Errorf("%w: requested duration %ds exceeds role maximum %ds",
			domainerrors.ErrValidation, duration, role.MaxSessionDuration)
	}

	decision := policy.Evaluate([]policy.Document{role.TrustPolicy}, policy.EvaluationInput{
		Principal: strings.TrimSpace(cmd.UserID),
		Action:    policy.AssumeRoleAction,
	})
	if decision != policy.DecisionAllow {
		logger.Warn("assume role denied",
			"event", "iam_assume_role_denied",
			"module", "identity-access/session-authority",
			"layer", "application",
			"role_id", role.ID,
			"user_id", cmd.UserID,
			"decision", string(decision),
		)
		return entities.AssumedSession{}, domainerrors.ErrAssumeRoleDenied
	}

	sessionID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.AssumedSession{}, err
	}

	assumedAt := u.Clock.Now().UTC()
	expiresAt := assumedAt.Add(time.Duration(duration) * time.Second)

	credentials, fingerprint, err := u.Credentials.Issue(ctx, role.ID, cmd.SessionName, expiresAt)
	if err != nil {
		return entities.AssumedSession{}, err
	}

	session := entities.RoleSession{
		ID:               sessionID,
		RoleID:           role.ID,
		UserID:           strings.TrimSpace(cmd.UserID),
		SessionName:      strings.TrimSpace(cmd.SessionName),
		TokenFingerprint: fingerprint,
		AssumedAt:        assumedAt,
		ExpiresAt:        expiresAt,
		IsActive:         true,
	}
	if err := u.Repository.CreateSession(ctx, session); err != nil {
		return entities.AssumedSession{}, err
	}

	u.publishAssumed(ctx, role, session)

	logger.Info("role assumed",
		"event", "iam_role_assumed",
		"module", "identity-access/session-authority",
		"layer", "application",
		"role_id", role.ID,
		"session_id", session.ID,
		"user_id", session.UserID,
		"expires_at", session.ExpiresAt,
	)
	return entities.AssumedSession{Session: session, Credentials: credentials}, nil
}

func (u AssumeRoleUseCase) publishAssumed(ctx context.Context, role entities.Role, session entities.RoleSession) {
	if u.Publisher == nil {
		return
	}
	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return
	}
	_ = u.Publisher.Publish(ctx, events.TypeRoleAssumed, events.Envelope{
		EventID:        eventID,
		EventType:      events.TypeRoleAssumed,
		SourceService:  "identity-access/session-authority",
		OccurredAtUTC:  session.AssumedAt,
		EntityType:     "role_session",
		EntityID:       session.ID,
		PayloadVersion: 1,
		Payload: map[string]any{
			"role_id":    role.ID,
			"account_id": role.AccountID,
			"user_id":    session.UserID,
			"expires_at": session.ExpiresAt,
		},
	})
}
