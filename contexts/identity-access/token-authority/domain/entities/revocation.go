package entities

import "time"

// RevocationKind distinguishes a single-token marker from a blanket
// revoke-all marker.
type RevocationKind string

const (
	RevocationKindToken   RevocationKind = "token"
	RevocationKindBlanket RevocationKind = "user-blanket"
)

// RevocationEntry is one revoked-token marker. The fingerprint keys the
// entry; blanket markers use a synthetic per-user fingerprint. Entries
// need not outlive the original token's natural expiry.
type RevocationEntry struct {
	Fingerprint string         `json:"fingerprint"`
	Kind        RevocationKind `json:"kind"`
	UserID      string         `json:"user_id"`
	AccountID   string         `json:"account_id"`
	Reason      string         `json:"reason,omitempty"`
	ClientInfo  string         `json:"client_info,omitempty"`
	RevokedAt   time.Time      `json:"revoked_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
}

// BlanketFingerprint is the synthetic store key for a revoke-all marker.
func BlanketFingerprint(accountID, userID string) string {
	return string(RevocationKindBlanket) + ":" + accountID + ":" + userID
}

// BlacklistStats reports per-tier entry counts for observability.
type BlacklistStats struct {
	CacheEntries    int64 `json:"cache_entries"`
	StoreEntries    int64 `json:"store_entries"`
	FallbackEnabled bool  `json:"fallback_enabled"`
	MemoryMode      bool  `json:"memory_mode"`
}
