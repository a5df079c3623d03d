package jwtcodec

import (
	"errors"
	"testing"
	"time"

	"aegis/contexts/identity-access/token-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
)

func testCodec() Codec {
	return New([]byte("access-secret"), []byte("refresh-secret"), "aegis-test")
}

func accessClaims(now time.Time) entities.AccessClaims {
	return entities.AccessClaims{
		UserID:    "user-1",
		AccountID: "acct-1",
		Username:  "root",
		Email:     "root@example.com",
		IsRoot:    true,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestSignAndParseAccessRoundTrip(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC().Truncate(time.Second)

	token, err := codec.SignAccess(accessClaims(now))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	parsed, err := codec.ParseAccess(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.UserID != "user-1" || parsed.AccountID != "acct-1" || !parsed.IsRoot {
		t.Fatalf("unexpected claims: %+v", parsed)
	}
	if !parsed.IssuedAt.Equal(now) {
		t.Fatalf("issuedAt = %v, want %v", parsed.IssuedAt, now)
	}
}

func TestAccessTokenRejectedUnderRefreshSecret(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC()

	token, err := codec.SignAccess(accessClaims(now))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := codec.ParseRefresh(token); !errors.Is(err, domainerrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestExpiredTokenRejectedAsInvalidSignature(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC()

	claims := accessClaims(now.Add(-2 * time.Hour))
	claims.ExpiresAt = now.Add(-time.Hour)
	token, err := codec.SignAccess(claims)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := codec.ParseAccess(token); !errors.Is(err, domainerrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for expired token, got %v", err)
	}
}

func TestPeekTypeWithoutVerification(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC()

	refresh, err := codec.SignRefresh(entities.RefreshClaims{
		UserID:    "user-1",
		AccountID: "acct-1",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	tokenType, err := codec.PeekType(refresh)
	if err != nil {
		t.Fatalf("peek failed: %v", err)
	}
	if tokenType != entities.TokenTypeRefresh {
		t.Fatalf("peeked type = %s, want refresh", tokenType)
	}

	// Peek works even when the verifying codec holds different secrets.
	other := New([]byte("a"), []byte("b"), "other")
	if tokenType, err = other.PeekType(refresh); err != nil || tokenType != entities.TokenTypeRefresh {
		t.Fatalf("unverified peek failed: type=%s err=%v", tokenType, err)
	}
}

func TestPeekExpiryMatchesSignedExpiry(t *testing.T) {
	codec := testCodec()
	now := time.Now().UTC().Truncate(time.Second)

	token, err := codec.SignAccess(accessClaims(now))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	exp, err := codec.PeekExpiry(token)
	if err != nil {
		t.Fatalf("peek expiry failed: %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Fatalf("exp = %v, want %v", exp, now.Add(time.Hour))
	}
}

func TestFingerprintStableAndDistinct(t *testing.T) {
	codec := testCodec()
	if codec.Fingerprint("token-a") != codec.Fingerprint("token-a") {
		t.Fatalf("fingerprint must be deterministic")
	}
	if codec.Fingerprint("token-a") == codec.Fingerprint("token-b") {
		t.Fatalf("distinct tokens must not collide")
	}
	if len(codec.Fingerprint("token-a")) != 64 {
		t.Fatalf("fingerprint must be a sha256 hex digest")
	}
}
