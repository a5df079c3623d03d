package httptransport

import "time"

// LoginRequest is the email/password body for root-credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IAMLoginRequest is the account-scoped IAM user login body.
type IAMLoginRequest struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// UserDTO is the wire form of the authenticated principal.
type UserDTO struct {
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsRoot    bool   `json:"is_root"`
}

// TokenPairDTO carries the issued pair. ExpiresIn is the access token's
// lifetime in seconds.
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type LoginResponse struct {
	User   UserDTO      `json:"user"`
	Tokens TokenPairDTO `json:"tokens"`
}

// RefreshRequest presents the refresh token to exchange for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	Tokens TokenPairDTO `json:"tokens"`
}

// LogoutRequest carries whichever tokens the caller still holds; either
// may be omitted.
type LogoutRequest struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserID       string `json:"user_id"`
	AccountID    string `json:"account_id"`
	Reason       string `json:"reason,omitempty"`
	ClientInfo   string `json:"client_info,omitempty"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// RevokeAllRequest invalidates every outstanding token for one user.
type RevokeAllRequest struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Reason    string `json:"reason,omitempty"`
}

type RevokeAllResponse struct {
	Message string `json:"message"`
}

// VerifyRequest wraps a bearer token for explicit verification.
type VerifyRequest struct {
	Token string `json:"token"`
}

type VerifyResponse struct {
	Valid     bool      `json:"valid"`
	UserID    string    `json:"user_id,omitempty"`
	AccountID string    `json:"account_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsRoot    bool      `json:"is_root,omitempty"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

type BlacklistStatsResponse struct {
	CacheEntries    int64 `json:"cache_entries"`
	StoreEntries    int64 `json:"store_entries"`
	FallbackEnabled bool  `json:"fallback_enabled"`
	MemoryMode      bool  `json:"memory_mode"`
}

type CleanupResponse struct {
	Swept int64 `json:"swept"`
}

// ErrorResponse is the uniform error body for this module's endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
