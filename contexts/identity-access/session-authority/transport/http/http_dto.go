package httptransport

import (
	"encoding/json"
	"time"
)

// CreateRoleRequest is the request body for role creation.
type CreateRoleRequest struct {
	AccountID          string          `json:"account_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	TrustPolicy        json.RawMessage `json:"trust_policy"`
	MaxSessionDuration int             `json:"max_session_duration,omitempty"`
}

// UpdateRoleRequest carries optional mutations; omitted fields are kept.
type UpdateRoleRequest struct {
	Description        *string         `json:"description,omitempty"`
	TrustPolicy        json.RawMessage `json:"trust_policy,omitempty"`
	MaxSessionDuration *int            `json:"max_session_duration,omitempty"`
}

// RoleDTO is the wire form of a role.
type RoleDTO struct {
	RoleID             string          `json:"role_id"`
	AccountID          string          `json:"account_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	TrustPolicy        json.RawMessage `json:"trust_policy"`
	MaxSessionDuration int             `json:"max_session_duration"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type ListRolesResponse struct {
	AccountID string    `json:"account_id"`
	Roles     []RoleDTO `json:"roles"`
}

// CreatePolicyRequest is the request body for policy creation.
type CreatePolicyRequest struct {
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Document  json.RawMessage `json:"document"`
	Type      string          `json:"type,omitempty"`
}

type PolicyDTO struct {
	PolicyID  string          `json:"policy_id"`
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Document  json.RawMessage `json:"document"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ListRolePoliciesResponse struct {
	RoleID   string      `json:"role_id"`
	Policies []PolicyDTO `json:"policies"`
}

// AttachPolicyRequest references a policy by id, ARN, or literal name.
type AttachPolicyRequest struct {
	PolicyIdentifier string `json:"policy_identifier"`
}

type AttachPolicyResponse struct {
	RoleID     string    `json:"role_id"`
	PolicyID   string    `json:"policy_id"`
	AccountID  string    `json:"account_id"`
	AttachedAt time.Time `json:"attached_at"`
}

// AssumeRoleRequest is the request body for assuming a role.
type AssumeRoleRequest struct {
	UserID          string `json:"user_id"`
	SessionName     string `json:"session_name"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// CredentialsDTO is the one-time plaintext triad. It appears only in the
// assume-role response and is never returned again.
type CredentialsDTO struct {
	AccessKeyID     string    `json:"access_key_id"`
	SecretAccessKey string    `json:"secret_access_key"`
	SessionToken    string    `json:"session_token"`
	Expiration      time.Time `json:"expiration"`
}

type SessionDTO struct {
	SessionID   string    `json:"session_id"`
	RoleID      string    `json:"role_id"`
	UserID      string    `json:"user_id"`
	SessionName string    `json:"session_name"`
	AssumedAt   time.Time `json:"assumed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsActive    bool      `json:"is_active"`
}

type AssumeRoleResponse struct {
	Session     SessionDTO     `json:"session"`
	Credentials CredentialsDTO `json:"credentials"`
}

type ListSessionsResponse struct {
	AccountID string       `json:"account_id"`
	Sessions  []SessionDTO `json:"sessions"`
}

type CleanupResponse struct {
	Swept int64 `json:"swept"`
}

// ValidatePolicyRequest wraps a raw document for validation.
type ValidatePolicyRequest struct {
	Document json.RawMessage `json:"document"`
}

type ValidatePolicyResponse struct {
	Valid   bool     `json:"valid"`
	Defects []string `json:"defects"`
}

// AuthorizeRequest is one policy decision point question.
type AuthorizeRequest struct {
	RoleID    string `json:"role_id"`
	Principal string `json:"principal"`
	Action    string `json:"action"`
	Resource  string `json:"resource,omitempty"`
}

type AuthorizeResponse struct {
	Decision  string    `json:"decision"`
	Allowed   bool      `json:"allowed"`
	CheckedAt time.Time `json:"checked_at"`
}

// ErrorResponse is the uniform error body for this module's endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
