package entities

import (
	"time"

	"aegis/contexts/identity-access/session-authority/domain/policy"
)

// DefaultMaxSessionDuration applies when a role is created without an
// explicit ceiling (one hour, in seconds).
const DefaultMaxSessionDuration = 3600

// Role is an assumable identity scoped to one account. The trust document
// governs who may assume it; Name is unique within AccountID.
type Role struct {
	ID                 string          `json:"role_id"`
	AccountID          string          `json:"account_id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	TrustPolicy        policy.Document `json:"trust_policy"`
	MaxSessionDuration int             `json:"max_session_duration"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// PolicyType distinguishes standalone managed policies from inline ones.
type PolicyType string

const (
	PolicyTypeManaged PolicyType = "managed"
	PolicyTypeInline  PolicyType = "inline"
)

// Policy is a named permission document scoped to one account.
type Policy struct {
	ID        string          `json:"policy_id"`
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Document  policy.Document `json:"document"`
	Type      PolicyType      `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PolicyAttachment joins a role and a policy. Both sides must share one
// account; the store enforces the pair's uniqueness.
type PolicyAttachment struct {
	RoleID     string    `json:"role_id"`
	PolicyID   string    `json:"policy_id"`
	AccountID  string    `json:"account_id"`
	AttachedAt time.Time `json:"attached_at"`
}
