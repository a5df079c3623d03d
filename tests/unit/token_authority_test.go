package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	tokenauthority "aegis/contexts/identity-access/token-authority"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	httptransport "aegis/contexts/identity-access/token-authority/transport/http"
)

func login(t *testing.T, module tokenauthority.Module) httptransport.LoginResponse {
	t.Helper()
	resp, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "root@example.com",
		Password: "root-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return resp
}

func TestLoginIssuesVerifiablePair(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)
	resp := login(t, module)

	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens")
	}
	if resp.User.UserID != "root-user" || !resp.User.IsRoot {
		t.Fatalf("unexpected user: %+v", resp.User)
	}

	verified, err := module.Handler.VerifyAccessHandler(context.Background(), httptransport.VerifyRequest{
		Token: resp.Tokens.AccessToken,
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !verified.Valid || verified.UserID != "root-user" {
		t.Fatalf("expected valid access token, got %+v", verified)
	}
}

func TestLoginRejectsBadPasswordAndUnknownUser(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)

	_, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "root@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "no-such@example.com",
		Password: "root-password",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestIAMLoginWithAccountScopedCredentials(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)

	resp, err := module.Handler.IAMLoginHandler(context.Background(), httptransport.IAMLoginRequest{
		AccountID: "dev-account",
		Username:  "root",
		Password:  "root-password",
	})
	if err != nil {
		t.Fatalf("iam login failed: %v", err)
	}
	if resp.User.AccountID != "dev-account" {
		t.Fatalf("unexpected account: %+v", resp.User)
	}

	_, err = module.Handler.IAMLoginHandler(context.Background(), httptransport.IAMLoginRequest{
		AccountID: "other-account",
		Username:  "root",
		Password:  "root-password",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials across accounts, got %v", err)
	}
}

func TestAccessTokenRejectedOnRefreshEndpoint(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)
	resp := login(t, module)

	_, err := module.Handler.RefreshHandler(context.Background(), httptransport.RefreshRequest{
		RefreshToken: resp.Tokens.AccessToken,
	})
	if !errors.Is(err, domainerrors.ErrTokenType) {
		t.Fatalf("expected ErrTokenType, got %v", err)
	}
}

func TestRefreshIssuesNewPairWithoutRotation(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)
	resp := login(t, module)

	refreshed, err := module.Handler.RefreshHandler(context.Background(), httptransport.RefreshRequest{
		RefreshToken: resp.Tokens.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.Tokens.AccessToken == "" {
		t.Fatalf("expected fresh access token")
	}

	// No rotation: the old refresh token stays usable.
	if _, err := module.Handler.RefreshHandler(context.Background(), httptransport.RefreshRequest{
		RefreshToken: resp.Tokens.RefreshToken,
	}); err != nil {
		t.Fatalf("old refresh token must remain valid: %v", err)
	}
}

func TestRefreshRejectedForInactiveUser(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)
	resp := login(t, module)

	module.Store.SetUserActive("root-user", false)

	_, err := module.Handler.RefreshHandler(context.Background(), httptransport.RefreshRequest{
		RefreshToken: resp.Tokens.RefreshToken,
	})
	if !errors.Is(err, domainerrors.ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
}

func TestLogoutRevokesPresentedTokens(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)
	resp := login(t, module)

	if _, err := module.Handler.LogoutHandler(context.Background(), httptransport.LogoutRequest{
		AccessToken:  resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
		UserID:       resp.User.UserID,
		AccountID:    resp.User.AccountID,
		Reason:       "user logout",
	}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	verified, err := module.Handler.VerifyAccessHandler(context.Background(), httptransport.VerifyRequest{
		Token: resp.Tokens.AccessToken,
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified.Valid {
		t.Fatalf("revoked access token must not verify")
	}

	if _, err := module.Handler.RefreshHandler(context.Background(), httptransport.RefreshRequest{
		RefreshToken: resp.Tokens.RefreshToken,
	}); !errors.Is(err, domainerrors.ErrRevoked) {
		t.Fatalf("expected ErrRevoked on refresh after logout, got %v", err)
	}
}

func TestLogoutWithMissingTokensIsQuiet(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)

	if _, err := module.Handler.LogoutHandler(context.Background(), httptransport.LogoutRequest{
		UserID:    "root-user",
		AccountID: "dev-account",
	}); err != nil {
		t.Fatalf("logout with no tokens must succeed: %v", err)
	}
}

func TestRevokeAllInvalidatesEarlierTokensOnly(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)
	before := login(t, module)

	// Tokens must be strictly older than the blanket marker.
	module.Store.Advance(time.Second)

	if _, err := module.Handler.RevokeAllHandler(context.Background(), httptransport.RevokeAllRequest{
		AccountID: before.User.AccountID,
		UserID:    before.User.UserID,
		Reason:    "credentials leaked",
	}); err != nil {
		t.Fatalf("revoke all failed: %v", err)
	}

	verified, err := module.Handler.VerifyAccessHandler(context.Background(), httptransport.VerifyRequest{
		Token: before.Tokens.AccessToken,
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified.Valid {
		t.Fatalf("token issued before the blanket marker must be invalid")
	}

	module.Store.Advance(time.Second)
	after := login(t, module)
	verified, err = module.Handler.VerifyAccessHandler(context.Background(), httptransport.VerifyRequest{
		Token: after.Tokens.AccessToken,
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !verified.Valid {
		t.Fatalf("token issued after the blanket marker must verify")
	}
}

func TestBlacklistStatsAndCleanup(t *testing.T) {
	module := tokenauthority.NewInMemoryModule(nil)
	resp := login(t, module)

	if _, err := module.Handler.LogoutHandler(context.Background(), httptransport.LogoutRequest{
		AccessToken: resp.Tokens.AccessToken,
		UserID:      resp.User.UserID,
		AccountID:   resp.User.AccountID,
	}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	stats := module.Handler.BlacklistStatsHandler(context.Background())
	if stats.StoreEntries != 1 || stats.CacheEntries != 1 {
		t.Fatalf("expected 1/1 ledger entries, got cache=%d store=%d", stats.CacheEntries, stats.StoreEntries)
	}
	if !stats.MemoryMode {
		t.Fatalf("in-memory module must report memory mode")
	}

	module.Store.Advance(8 * 24 * time.Hour)
	swept, err := module.Handler.CleanupHandler(context.Background())
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if swept.Swept != 1 {
		t.Fatalf("expected 1 swept entry, got %d", swept.Swept)
	}
}
