package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"

	application "aegis/contexts/identity-access/session-authority/application"
	"aegis/contexts/identity-access/session-authority/application/commands"
	"aegis/contexts/identity-access/session-authority/application/queries"
	"aegis/contexts/identity-access/session-authority/domain/entities"
	httptransport "aegis/contexts/identity-access/session-authority/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	CreateRole       commands.CreateRoleUseCase
	UpdateRole       commands.UpdateRoleUseCase
	DeleteRole       commands.DeleteRoleUseCase
	CreatePolicy     commands.CreatePolicyUseCase
	AttachPolicy     commands.AttachPolicyUseCase
	DetachPolicy     commands.DetachPolicyUseCase
	AssumeRole       commands.AssumeRoleUseCase
	RevokeSession    commands.RevokeSessionUseCase
	CleanupSessions  commands.CleanupSessionsUseCase
	GetRole          queries.GetRoleUseCase
	ListRoles        queries.ListRolesUseCase
	ListRolePolicies queries.ListRolePoliciesUseCase
	GetSession       queries.GetSessionUseCase
	ListSessions     queries.ListActiveSessionsUseCase
	ValidateTrust    queries.ValidateTrustPolicyUseCase
	Authorize        queries.AuthorizeUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateRoleHandler(ctx context.Context, request httptransport.CreateRoleRequest) (httptransport.RoleDTO, error) {
	role, err := h.CreateRole.Execute(ctx, commands.CreateRoleCommand{
		AccountID:          request.AccountID,
		Name:               request.Name,
		Description:        request.Description,
		TrustPolicy:        request.TrustPolicy,
		MaxSessionDuration: request.MaxSessionDuration,
	})
	if err != nil {
		return httptransport.RoleDTO{}, err
	}
	return roleDTO(role), nil
}

func (h Handler) GetRoleHandler(ctx context.Context, roleID string) (httptransport.RoleDTO, error) {
	role, err := h.GetRole.Execute(ctx, roleID)
	if err != nil {
		return httptransport.RoleDTO{}, err
	}
	return roleDTO(role), nil
}

func (h Handler) ListRolesHandler(ctx context.Context, accountID string) (httptransport.ListRolesResponse, error) {
	roles, err := h.ListRoles.Execute(ctx, accountID)
	if err != nil {
		return httptransport.ListRolesResponse{}, err
	}
	items := make([]httptransport.RoleDTO, 0, len(roles))
	for _, role := range roles {
		items = append(items, roleDTO(role))
	}
	return httptransport.ListRolesResponse{AccountID: accountID, Roles: items}, nil
}

func (h Handler) UpdateRoleHandler(ctx context.Context, roleID string, request httptransport.UpdateRoleRequest) (httptransport.RoleDTO, error) {
	role, err := h.UpdateRole.Execute(ctx, commands.UpdateRoleCommand{
		RoleID:             roleID,
		Description:        request.Description,
		TrustPolicy:        request.TrustPolicy,
		MaxSessionDuration: request.MaxSessionDuration,
	})
	if err != nil {
		return httptransport.RoleDTO{}, err
	}
	return roleDTO(role), nil
}

func (h Handler) DeleteRoleHandler(ctx context.Context, roleID string) error {
	return h.DeleteRole.Execute(ctx, roleID)
}

func (h Handler) CreatePolicyHandler(ctx context.Context, request httptransport.CreatePolicyRequest) (httptransport.PolicyDTO, error) {
	item, err := h.CreatePolicy.Execute(ctx, commands.CreatePolicyCommand{
		AccountID: request.AccountID,
		Name:      request.Name,
		Document:  request.Document,
		Type:      request.Type,
	})
	if err != nil {
		return httptransport.PolicyDTO{}, err
	}
	return policyDTO(item), nil
}

func (h Handler) AttachPolicyHandler(ctx context.Context, roleID string, request httptransport.AttachPolicyRequest) (httptransport.AttachPolicyResponse, error) {
	attachment, err := h.AttachPolicy.Execute(ctx, commands.AttachPolicyCommand{
		RoleID:           roleID,
		PolicyIdentifier: request.PolicyIdentifier,
	})
	if err != nil {
		return httptransport.AttachPolicyResponse{}, err
	}
	return httptransport.AttachPolicyResponse{
		RoleID:     attachment.RoleID,
		PolicyID:   attachment.PolicyID,
		AccountID:  attachment.AccountID,
		AttachedAt: attachment.AttachedAt,
	}, nil
}

func (h Handler) DetachPolicyHandler(ctx context.Context, roleID string, request httptransport.AttachPolicyRequest) error {
	return h.DetachPolicy.Execute(ctx, commands.AttachPolicyCommand{
		RoleID:           roleID,
		PolicyIdentifier: request.PolicyIdentifier,
	})
}

func (h Handler) ListRolePoliciesHandler(ctx context.Context, roleID string) (httptransport.ListRolePoliciesResponse, error) {
	policies, err := h.ListRolePolicies.Execute(ctx, roleID)
	if err != nil {
		return httptransport.ListRolePoliciesResponse{}, err
	}
	items := make([]httptransport.PolicyDTO, 0, len(policies))
	for _, item := range policies {
		items = append(items, policyDTO(item))
	}
	return httptransport.ListRolePoliciesResponse{RoleID: roleID, Policies: items}, nil
}

func (h Handler) AssumeRoleHandler(ctx context.Context, roleID string, request httptransport.AssumeRoleRequest) (httptransport.AssumeRoleResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http assume role received",
		"event", "iam_http_assume_role_received",
		"module", "identity-access/session-authority",
		"layer", "transport",
		"role_id", roleID,
		"user_id", request.UserID,
	)

	assumed, err := h.AssumeRole.Execute(ctx, commands.AssumeRoleCommand{
		RoleID:          roleID,
		UserID:          request.UserID,
		SessionName:     request.SessionName,
		DurationSeconds: request.DurationSeconds,
	})
	if err != nil {
		return httptransport.AssumeRoleResponse{}, err
	}
	return httptransport.AssumeRoleResponse{
		Session: sessionDTO(assumed.Session),
		Credentials: httptransport.CredentialsDTO{
			AccessKeyID:     assumed.Credentials.AccessKeyID,
			SecretAccessKey: assumed.Credentials.SecretAccessKey,
			SessionToken:    assumed.Credentials.SessionToken,
			Expiration:      assumed.Credentials.Expiration,
		},
	}, nil
}

func (h Handler) GetSessionHandler(ctx context.Context, sessionID string) (httptransport.SessionDTO, error) {
	session, err := h.GetSession.Execute(ctx, sessionID)
	if err != nil {
		return httptransport.SessionDTO{}, err
	}
	return sessionDTO(session), nil
}

func (h Handler) ListSessionsHandler(ctx context.Context, accountID string) (httptransport.ListSessionsResponse, error) {
	sessions, err := h.ListSessions.Execute(ctx, accountID)
	if err != nil {
		return httptransport.ListSessionsResponse{}, err
	}
	items := make([]httptransport.SessionDTO, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, sessionDTO(session))
	}
	return httptransport.ListSessionsResponse{AccountID: accountID, Sessions: items}, nil
}

func (h Handler) RevokeSessionHandler(ctx context.Context, sessionID string) error {
	return h.RevokeSession.Execute(ctx, sessionID)
}

func (h Handler) CleanupSessionsHandler(ctx context.Context) (httptransport.CleanupResponse, error) {
	swept, err := h.CleanupSessions.Execute(ctx)
	if err != nil {
		return httptransport.CleanupResponse{}, err
	}
	return httptransport.CleanupResponse{Swept: swept}, nil
}

func (h Handler) ValidateTrustPolicyHandler(ctx context.Context, request httptransport.ValidatePolicyRequest) httptransport.ValidatePolicyResponse {
	result := h.ValidateTrust.Execute(ctx, request.Document)
	return httptransport.ValidatePolicyResponse{Valid: result.Valid, Defects: result.Defects}
}

func (h Handler) AuthorizeHandler(ctx context.Context, request httptransport.AuthorizeRequest) (httptransport.AuthorizeResponse, error) {
	decision, err := h.Authorize.Execute(ctx, queries.AuthorizeQuery{
		RoleID:    request.RoleID,
		Principal: request.Principal,
		Action:    request.Action,
		Resource:  request.Resource,
	})
	if err != nil {
		return httptransport.AuthorizeResponse{}, err
	}
	return httptransport.AuthorizeResponse{
		Decision:  string(decision.Decision),
		Allowed:   decision.Allowed,
		CheckedAt: decision.CheckedAt,
	}, nil
}

func roleDTO(role entities.Role) httptransport.RoleDTO {
	raw, _ := json.Marshal(role.TrustPolicy)
	return httptransport.RoleDTO{
		RoleID:             role.ID,
		AccountID:          role.AccountID,
		Name:               role.Name,
		Description:        role.Description,
		TrustPolicy:        raw,
		MaxSessionDuration: role.MaxSessionDuration,
		CreatedAt:          role.CreatedAt,
		UpdatedAt:          role.UpdatedAt,
	}
}

func policyDTO(item entities.Policy) httptransport.PolicyDTO {
	raw, _ := json.Marshal(item.Document)
	return httptransport.PolicyDTO{
		PolicyID:  item.ID,
		AccountID: item.AccountID,
		Name:      item.Name,
		Document:  raw,
		Type:      string(item.Type),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func sessionDTO(session entities.RoleSession) httptransport.SessionDTO {
	return httptransport.SessionDTO{
		SessionID:   session.ID,
		RoleID:      session.RoleID,
		UserID:      session.UserID,
		SessionName: session.SessionName,
		AssumedAt:   session.AssumedAt,
		ExpiresAt:   session.ExpiresAt,
		IsActive:    session.IsActive,
	}
}
