package entities

import "time"

// RoleSession is the persisted record of one assumed role. Only the
// irreversible fingerprint of the session token is ever stored.
type RoleSession struct {
	ID               string    `json:"session_id"`
	RoleID           string    `json:"role_id"`
	UserID           string    `json:"user_id"`
	SessionName      string    `json:"session_name"`
	TokenFingerprint string    `json:"-"`
	AssumedAt        time.Time `json:"assumed_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	IsActive         bool      `json:"is_active"`
}

// Active reports whether the session is live at the given instant.
func (s RoleSession) Active(now time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(now)
}

// IssuedCredentials is the plaintext credential triad minted by assumeRole.
// It exists only in the creation response and is never persisted.
type IssuedCredentials struct {
	AccessKeyID     string    `json:"access_key_id"`
	SecretAccessKey string    `json:"secret_access_key"`
	SessionToken    string    `json:"session_token"`
	Expiration      time.Time `json:"expiration"`
}

// AssumedSession pairs the persisted session row with its one-time
// credentials. Later reads of the session return RoleSession alone.
type AssumedSession struct {
	Session     RoleSession       `json:"session"`
	Credentials IssuedCredentials `json:"credentials"`
}
