package queries

import (
	"context"
	"log/slog"

	application "aegis/contexts/identity-access/token-authority/application"
	"aegis/contexts/identity-access/token-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	"aegis/contexts/identity-access/token-authority/ports"
)

// VerifyAccessTokenUseCase authenticates one bearer access token.
//
// Order of checks: the revocation ledger first, then a cheap unsigned
// type peek, then the full signature+expiry verification — no claim is
// trusted for an authorization decision before the signature verifies —
// and finally the user's blanket revoke-all marker against issuedAt.
type VerifyAccessTokenUseCase struct {
	Ledger *application.RevocationLedger
	Codec  ports.TokenCodec
	Logger *slog.Logger
}

func (u VerifyAccessTokenUseCase) Execute(ctx context.Context, token string) (entities.AccessClaims, error) {
	logger := application.ResolveLogger(u.Logger)

	revoked, err := u.Ledger.IsTokenRevoked(ctx, u.Codec.Fingerprint(token))
	if err != nil {
		return entities.AccessClaims{}, err
	}
	if revoked {
		return entities.AccessClaims{}, domainerrors.ErrRevoked
	}

	tokenType, err := u.Codec.PeekType(token)
	if err != nil {
		return entities.AccessClaims{}, err
	}
	if tokenType != entities.TokenTypeAccess {
		return entities.AccessClaims{}, domainerrors.ErrTokenType
	}

	claims, err := u.Codec.ParseAccess(token)
	if err != nil {
		return entities.AccessClaims{}, err
	}

	blanketAt, found, err := u.Ledger.BlanketRevokedAt(ctx, claims.AccountID, claims.UserID)
	if err != nil {
		return entities.AccessClaims{}, err
	}
	if found && claims.IssuedAt.Before(blanketAt) {
		logger.Info("access token rejected by blanket revocation",
			"event", "iam_token_blanket_rejected",
			"module", "identity-access/token-authority",
			"layer", "application",
			"user_id", claims.UserID,
			"account_id", claims.AccountID,
		)
		return entities.AccessClaims{}, domainerrors.ErrRevoked
	}
	return claims, nil
}

// VerifyRefreshTokenUseCase mirrors access verification with the refresh
// secret and type.
type VerifyRefreshTokenUseCase struct {
	Ledger *application.RevocationLedger
	Codec  ports.TokenCodec
	Logger *slog.Logger
}

func (u VerifyRefreshTokenUseCase) Execute(ctx context.Context, token string) (entities.RefreshClaims, error) {
	revoked, err := u.Ledger.IsTokenRevoked(ctx, u.Codec.Fingerprint(token))
	if err != nil {
		return entities.RefreshClaims{}, err
	}
	if revoked {
		return entities.RefreshClaims{}, domainerrors.ErrRevoked
	}

	tokenType, err := u.Codec.PeekType(token)
	if err != nil {
		return entities.RefreshClaims{}, err
	}
	if tokenType != entities.TokenTypeRefresh {
		return entities.RefreshClaims{}, domainerrors.ErrTokenType
	}

	claims, err := u.Codec.ParseRefresh(token)
	if err != nil {
		return entities.RefreshClaims{}, err
	}

	blanketAt, found, err := u.Ledger.BlanketRevokedAt(ctx, claims.AccountID, claims.UserID)
	if err != nil {
		return entities.RefreshClaims{}, err
	}
	if found && claims.IssuedAt.Before(blanketAt) {
		return entities.RefreshClaims{}, domainerrors.ErrRevoked
	}
	return claims, nil
}
