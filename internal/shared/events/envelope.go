package events

import "time"

// Envelope is the shared event shape published by aegis modules.
// Events are observability-only; consumers must tolerate loss.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SourceService  string    `json:"source_service"`
	OccurredAtUTC  time.Time `json:"occurred_at_utc"`
	CorrelationID  string    `json:"correlation_id,omitempty"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	PayloadVersion int       `json:"payload_version"`
	Payload        any       `json:"payload"`
}

// Event types emitted by the identity-access context.
const (
	TypeRoleAssumed       = "iam.role_assumed"
	TypeTokenRevoked      = "iam.token_revoked"
	TypeUserTokensRevoked = "iam.user_tokens_revoked"
)
