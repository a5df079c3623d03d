package application

import (
	"context"
	"testing"
	"time"

	"aegis/contexts/identity-access/token-authority/adapters/memory"
	"aegis/contexts/identity-access/token-authority/domain/entities"
)

func newLedger(store *memory.Store, fallback bool) *RevocationLedger {
	return &RevocationLedger{
		Cache:           memory.NewCache(store),
		Store:           store,
		Clock:           store,
		FallbackEnabled: fallback,
	}
}

func tokenEntry(store *memory.Store, fingerprint string, ttl time.Duration) entities.RevocationEntry {
	now := store.Now().UTC()
	return entities.RevocationEntry{
		Fingerprint: fingerprint,
		Kind:        entities.RevocationKindToken,
		UserID:      "user-1",
		AccountID:   "acct-1",
		Reason:      "logout",
		RevokedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func TestRevokeTokenThenObservedRevoked(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store, true)

	if err := ledger.RevokeToken(context.Background(), tokenEntry(store, "fp-1", time.Hour)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	revoked, err := ledger.IsTokenRevoked(context.Background(), "fp-1")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !revoked {
		t.Fatalf("expected token revoked")
	}
}

func TestRevocationSurvivesCacheLossWithFallback(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store, true)

	if err := ledger.RevokeToken(context.Background(), tokenEntry(store, "fp-restart", time.Hour)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	// A fresh cache over the same durable store models a process restart.
	restarted := newLedger(store, true)
	revoked, err := restarted.IsTokenRevoked(context.Background(), "fp-restart")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !revoked {
		t.Fatalf("revocation must survive cache loss when fallback is enabled")
	}

	// The read-through must repopulate the fresh cache.
	count, err := restarted.Cache.Count(context.Background())
	if err != nil {
		t.Fatalf("cache count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 cache entry after read-through, got %d", count)
	}
}

func TestCacheMissWithoutFallbackIsNotRevoked(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store, true)

	if err := ledger.RevokeToken(context.Background(), tokenEntry(store, "fp-stale", time.Hour)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	restarted := newLedger(store, false)
	revoked, err := restarted.IsTokenRevoked(context.Background(), "fp-stale")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if revoked {
		t.Fatalf("fallback disabled: a cache miss is an accepted staleness window")
	}
}

func TestExpiredEntryNoLongerReportsRevoked(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store, true)

	if err := ledger.RevokeToken(context.Background(), tokenEntry(store, "fp-exp", time.Minute)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	store.Advance(2 * time.Minute)

	revoked, err := ledger.IsTokenRevoked(context.Background(), "fp-exp")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if revoked {
		t.Fatalf("entry past natural token expiry must not report revoked")
	}

	swept, err := ledger.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if swept != 1 {
		t.Fatalf("expected 1 swept entry, got %d", swept)
	}
	if again, _ := ledger.Cleanup(context.Background()); again != 0 {
		t.Fatalf("second cleanup must sweep nothing, got %d", again)
	}
}

func TestBlanketMarkerScopedToUser(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store, true)

	entry, err := ledger.RevokeAllUserTokens(context.Background(), "acct-1", "user-1", "credentials leaked", time.Hour)
	if err != nil {
		t.Fatalf("revoke all failed: %v", err)
	}
	if entry.Kind != entities.RevocationKindBlanket {
		t.Fatalf("expected blanket kind, got %s", entry.Kind)
	}

	at, found, err := ledger.BlanketRevokedAt(context.Background(), "acct-1", "user-1")
	if err != nil {
		t.Fatalf("blanket lookup failed: %v", err)
	}
	if !found || !at.Equal(entry.RevokedAt) {
		t.Fatalf("expected marker at %v, got found=%v at=%v", entry.RevokedAt, found, at)
	}

	if _, found, _ := ledger.BlanketRevokedAt(context.Background(), "acct-1", "user-2"); found {
		t.Fatalf("blanket marker must not leak to another user")
	}
	if _, found, _ := ledger.BlanketRevokedAt(context.Background(), "acct-2", "user-1"); found {
		t.Fatalf("blanket marker must not leak to another account")
	}
}

func TestBlanketMarkerSurvivesCacheLoss(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store, true)

	entry, err := ledger.RevokeAllUserTokens(context.Background(), "acct-1", "user-1", "", time.Hour)
	if err != nil {
		t.Fatalf("revoke all failed: %v", err)
	}

	restarted := newLedger(store, true)
	at, found, err := restarted.BlanketRevokedAt(context.Background(), "acct-1", "user-1")
	if err != nil {
		t.Fatalf("blanket lookup failed: %v", err)
	}
	if !found || !at.Equal(entry.RevokedAt) {
		t.Fatalf("blanket marker must survive cache loss, found=%v", found)
	}
}

func TestStatsCountsBothTiers(t *testing.T) {
	store := memory.NewStore()
	ledger := newLedger(store, true)
	ledger.MemoryMode = true

	if err := ledger.RevokeToken(context.Background(), tokenEntry(store, "fp-a", time.Hour)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := ledger.RevokeToken(context.Background(), tokenEntry(store, "fp-b", time.Hour)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	stats := ledger.Stats(context.Background())
	if stats.CacheEntries != 2 || stats.StoreEntries != 2 {
		t.Fatalf("expected 2/2 entries, got cache=%d store=%d", stats.CacheEntries, stats.StoreEntries)
	}
	if !stats.FallbackEnabled || !stats.MemoryMode {
		t.Fatalf("expected fallback and memory mode flags set")
	}
}
