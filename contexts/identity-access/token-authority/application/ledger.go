package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"aegis/contexts/identity-access/token-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	"aegis/contexts/identity-access/token-authority/ports"
)

const (
	tokenKeyPrefix = "blacklist:token:"
	revokedMarker  = "revoked"
)

// RevocationLedger is the hybrid two-tier revoked-token tracker. Tier 1
// is a low-latency cache keyed by token fingerprint; Tier 2 is the
// durable store shared by every instance and authoritative across
// restarts.
//
// Failure semantics: Tier-1 unavailability degrades latency only. A
// Tier-2 write failure during a revoke fails loudly with
// ErrRevocationUnavailable, except in the explicit non-production
// in-memory mode.
type RevocationLedger struct {
	Cache ports.RevocationCache
	Store ports.RevocationStore
	Clock ports.Clock
	// FallbackEnabled controls whether a Tier-1 miss consults Tier 2.
	// With fallback disabled a miss is treated as not-revoked: an
	// accepted staleness window, not a bug.
	FallbackEnabled bool
	// MemoryMode marks the single-process in-memory configuration.
	MemoryMode bool
	Logger     *slog.Logger
}

// IsTokenRevoked checks Tier 1 first and, when fallback is enabled,
// reads through to Tier 2 on a miss, writing the result back to Tier 1.
func (l *RevocationLedger) IsTokenRevoked(ctx context.Context, fingerprint string) (bool, error) {
	logger := ResolveLogger(l.Logger)
	key := tokenKeyPrefix + fingerprint

	_, hit, err := l.Cache.Get(ctx, key)
	if err != nil {
		// Tier-1 outage: correctness falls back to Tier 2 when allowed.
		logger.Warn("revocation cache read failed",
			"event", "iam_revocation_cache_read_failed",
			"module", "identity-access/token-authority",
			"layer", "application",
			"error", err.Error(),
		)
	} else if hit {
		return true, nil
	}

	if !l.FallbackEnabled {
		return false, nil
	}

	entry, found, err := l.Store.Get(ctx, fingerprint)
	if err != nil {
		return false, fmt.Errorf("%w: %s", domainerrors.ErrRevocationUnavailable, err.Error())
	}
	if !found {
		return false, nil
	}

	now := l.Clock.Now().UTC()
	if !entry.ExpiresAt.After(now) {
		// Past the token's natural expiry; signature verification
		// rejects it anyway.
		return false, nil
	}

	// Read-through: repopulate Tier 1 for the marker's remaining life.
	if err := l.Cache.Set(ctx, key, revokedMarker, entry.ExpiresAt.Sub(now)); err != nil {
		logger.Warn("revocation cache writeback failed",
			"event", "iam_revocation_cache_writeback_failed",
			"module", "identity-access/token-authority",
			"layer", "application",
			"error", err.Error(),
		)
	}
	return true, nil
}

// RevokeToken writes both tiers. Once it returns nil, any later
// fallback-enabled check observes the token as revoked.
func (l *RevocationLedger) RevokeToken(ctx context.Context, entry entities.RevocationEntry) error {
	logger := ResolveLogger(l.Logger)

	if err := l.Store.Put(ctx, entry); err != nil {
		return fmt.Errorf("%w: %s", domainerrors.ErrRevocationUnavailable, err.Error())
	}

	now := l.Clock.Now().UTC()
	ttl := entry.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil
	}
	if err := l.Cache.Set(ctx, tokenKeyPrefix+entry.Fingerprint, revokedMarker, ttl); err != nil {
		logger.Warn("revocation cache write failed",
			"event", "iam_revocation_cache_write_failed",
			"module", "identity-access/token-authority",
			"layer", "application",
			"fingerprint", entry.Fingerprint,
			"error", err.Error(),
		)
	}
	return nil
}

// RevokeAllUserTokens inserts a blanket marker. Verification rejects any
// token whose issuedAt predates the user's latest marker.
func (l *RevocationLedger) RevokeAllUserTokens(ctx context.Context, accountID, userID, reason string, maxTokenLifetime time.Duration) (entities.RevocationEntry, error) {
	logger := ResolveLogger(l.Logger)
	now := l.Clock.Now().UTC()

	entry := entities.RevocationEntry{
		Fingerprint: entities.BlanketFingerprint(accountID, userID),
		Kind:        entities.RevocationKindBlanket,
		UserID:      userID,
		AccountID:   accountID,
		Reason:      reason,
		RevokedAt:   now,
		ExpiresAt:   now.Add(maxTokenLifetime),
	}
	if err := l.Store.Put(ctx, entry); err != nil {
		return entities.RevocationEntry{}, fmt.Errorf("%w: %s", domainerrors.ErrRevocationUnavailable, err.Error())
	}

	if err := l.Cache.Set(ctx, "blacklist:"+entry.Fingerprint, now.Format(time.RFC3339Nano), maxTokenLifetime); err != nil {
		logger.Warn("revocation cache write failed",
			"event", "iam_revocation_cache_write_failed",
			"module", "identity-access/token-authority",
			"layer", "application",
			"fingerprint", entry.Fingerprint,
			"error", err.Error(),
		)
	}
	return entry, nil
}

// BlanketRevokedAt returns the user's latest blanket-marker timestamp.
func (l *RevocationLedger) BlanketRevokedAt(ctx context.Context, accountID, userID string) (time.Time, bool, error) {
	logger := ResolveLogger(l.Logger)
	fingerprint := entities.BlanketFingerprint(accountID, userID)
	key := "blacklist:" + fingerprint

	value, hit, err := l.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("revocation cache read failed",
			"event", "iam_revocation_cache_read_failed",
			"module", "identity-access/token-authority",
			"layer", "application",
			"error", err.Error(),
		)
	} else if hit {
		if at, parseErr := time.Parse(time.RFC3339Nano, value); parseErr == nil {
			return at, true, nil
		}
	}

	if !l.FallbackEnabled {
		return time.Time{}, false, nil
	}

	entry, found, err := l.Store.Get(ctx, fingerprint)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s", domainerrors.ErrRevocationUnavailable, err.Error())
	}
	if !found {
		return time.Time{}, false, nil
	}

	now := l.Clock.Now().UTC()
	if remaining := entry.ExpiresAt.Sub(now); remaining > 0 {
		_ = l.Cache.Set(ctx, key, entry.RevokedAt.Format(time.RFC3339Nano), remaining)
	}
	return entry.RevokedAt, true, nil
}

// Cleanup removes entries past the original token's natural expiry.
// Each row deletion is independently idempotent.
func (l *RevocationLedger) Cleanup(ctx context.Context) (int64, error) {
	return l.Store.DeleteExpired(ctx, l.Clock.Now().UTC())
}

// Stats reports per-tier counts. Failures here are swallowed: stats are
// best-effort observability and never interrupt callers.
func (l *RevocationLedger) Stats(ctx context.Context) entities.BlacklistStats {
	logger := ResolveLogger(l.Logger)
	stats := entities.BlacklistStats{
		FallbackEnabled: l.FallbackEnabled,
		MemoryMode:      l.MemoryMode,
	}

	if count, err := l.Cache.Count(ctx); err == nil {
		stats.CacheEntries = count
	} else {
		logger.Warn("revocation cache count failed",
			"event", "iam_revocation_stats_failed",
			"module", "identity-access/token-authority",
			"layer", "application",
			"tier", "cache",
			"error", err.Error(),
		)
	}
	if count, err := l.Store.Count(ctx); err == nil {
		stats.StoreEntries = count
	} else {
		logger.Warn("revocation store count failed",
			"event", "iam_revocation_stats_failed",
			"module", "identity-access/token-authority",
			"layer", "application",
			"tier", "store",
			"error", err.Error(),
		)
	}
	return stats
}

// Close flushes and disconnects the Tier-1 cache connection.
func (l *RevocationLedger) Close() error {
	return l.Cache.Close()
}
