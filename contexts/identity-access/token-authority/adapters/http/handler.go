package httpadapter

import (
	"context"
	"errors"
	"log/slog"

	application "aegis/contexts/identity-access/token-authority/application"
	"aegis/contexts/identity-access/token-authority/application/commands"
	"aegis/contexts/identity-access/token-authority/application/queries"
	"aegis/contexts/identity-access/token-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	httptransport "aegis/contexts/identity-access/token-authority/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	Login         commands.LoginWithCredentialsUseCase
	IAMLogin      commands.LoginWithIAMCredentialsUseCase
	Refresh       commands.RefreshTokensUseCase
	Logout        commands.LogoutUseCase
	RevokeAll     commands.RevokeAllUserTokensUseCase
	Cleanup       commands.CleanupTokensUseCase
	VerifyAccess  queries.VerifyAccessTokenUseCase
	VerifyRefresh queries.VerifyRefreshTokenUseCase
	Ledger        *application.RevocationLedger
	Logger        *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, request httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Login.Execute(ctx, request.Email, request.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return loginResponse(result), nil
}

func (h Handler) IAMLoginHandler(ctx context.Context, request httptransport.IAMLoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.IAMLogin.Execute(ctx, request.AccountID, request.Username, request.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return loginResponse(result), nil
}

func (h Handler) RefreshHandler(ctx context.Context, request httptransport.RefreshRequest) (httptransport.RefreshResponse, error) {
	tokens, err := h.Refresh.Execute(ctx, request.RefreshToken)
	if err != nil {
		return httptransport.RefreshResponse{}, err
	}
	return httptransport.RefreshResponse{Tokens: tokenPairDTO(tokens)}, nil
}

func (h Handler) LogoutHandler(ctx context.Context, request httptransport.LogoutRequest) (httptransport.LogoutResponse, error) {
	err := h.Logout.Execute(ctx, commands.LogoutCommand{
		AccessToken:  request.AccessToken,
		RefreshToken: request.RefreshToken,
		UserID:       request.UserID,
		AccountID:    request.AccountID,
		Reason:       request.Reason,
		ClientInfo:   request.ClientInfo,
	})
	if err != nil {
		return httptransport.LogoutResponse{}, err
	}
	return httptransport.LogoutResponse{Message: "logged out"}, nil
}

func (h Handler) RevokeAllHandler(ctx context.Context, request httptransport.RevokeAllRequest) (httptransport.RevokeAllResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http revoke-all received",
		"event", "iam_http_revoke_all_received",
		"module", "identity-access/token-authority",
		"layer", "transport",
		"user_id", request.UserID,
		"account_id", request.AccountID,
	)

	if err := h.RevokeAll.Execute(ctx, request.AccountID, request.UserID, request.Reason); err != nil {
		return httptransport.RevokeAllResponse{}, err
	}
	return httptransport.RevokeAllResponse{Message: "all user tokens revoked"}, nil
}

// VerifyAccessHandler reports token validity in-band: verification
// failures other than infrastructure outages map to valid=false rather
// than a transport error.
func (h Handler) VerifyAccessHandler(ctx context.Context, request httptransport.VerifyRequest) (httptransport.VerifyResponse, error) {
	claims, err := h.VerifyAccess.Execute(ctx, request.Token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrRevocationUnavailable) {
			return httptransport.VerifyResponse{}, err
		}
		return httptransport.VerifyResponse{Valid: false}, nil
	}
	return httptransport.VerifyResponse{
		Valid:     true,
		UserID:    claims.UserID,
		AccountID: claims.AccountID,
		Username:  claims.Username,
		Email:     claims.Email,
		IsRoot:    claims.IsRoot,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (h Handler) VerifyRefreshHandler(ctx context.Context, request httptransport.VerifyRequest) (httptransport.VerifyResponse, error) {
	claims, err := h.VerifyRefresh.Execute(ctx, request.Token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrRevocationUnavailable) {
			return httptransport.VerifyResponse{}, err
		}
		return httptransport.VerifyResponse{Valid: false}, nil
	}
	return httptransport.VerifyResponse{
		Valid:     true,
		UserID:    claims.UserID,
		AccountID: claims.AccountID,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (h Handler) BlacklistStatsHandler(ctx context.Context) httptransport.BlacklistStatsResponse {
	stats := h.Ledger.Stats(ctx)
	return httptransport.BlacklistStatsResponse{
		CacheEntries:    stats.CacheEntries,
		StoreEntries:    stats.StoreEntries,
		FallbackEnabled: stats.FallbackEnabled,
		MemoryMode:      stats.MemoryMode,
	}
}

func (h Handler) CleanupHandler(ctx context.Context) (httptransport.CleanupResponse, error) {
	swept, err := h.Cleanup.Execute(ctx)
	if err != nil {
		return httptransport.CleanupResponse{}, err
	}
	return httptransport.CleanupResponse{Swept: swept}, nil
}

func loginResponse(result commands.LoginResult) httptransport.LoginResponse {
	return httptransport.LoginResponse{
		User: httptransport.UserDTO{
			UserID:    result.User.ID,
			AccountID: result.User.AccountID,
			Username:  result.User.Username,
			Email:     result.User.Email,
			IsRoot:    result.User.IsRoot,
		},
		Tokens: tokenPairDTO(result.Tokens),
	}
}

func tokenPairDTO(tokens entities.TokenPair) httptransport.TokenPairDTO {
	return httptransport.TokenPairDTO{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    tokens.ExpiresIn,
	}
}
