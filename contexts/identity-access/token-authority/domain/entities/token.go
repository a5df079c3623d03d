package entities

import "time"

// TokenType is the claim binding a bearer token to its verification
// context. A token of one type never verifies under the other.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenPair is the issued access/refresh pair. Each side is signed with
// an independent secret so compromising one cannot forge the other.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AccessClaims is the decoded claim set of an access token.
type AccessClaims struct {
	UserID    string    `json:"user_id"`
	AccountID string    `json:"account_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsRoot    bool      `json:"is_root"`
	TokenType TokenType `json:"token_type"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RefreshClaims is the decoded claim set of a refresh token.
type RefreshClaims struct {
	UserID    string    `json:"user_id"`
	AccountID string    `json:"account_id"`
	TokenType TokenType `json:"token_type"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
