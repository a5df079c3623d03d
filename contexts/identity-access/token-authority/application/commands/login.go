package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "aegis/contexts/identity-access/token-authority/application"
	"aegis/contexts/identity-access/token-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	"aegis/contexts/identity-access/token-authority/ports"
)

// LoginResult pairs the authenticated user with a fresh token pair.
type LoginResult struct {
	User   entities.User      `json:"user"`
	Tokens entities.TokenPair `json:"tokens"`
}

// LoginWithCredentialsUseCase authenticates by email/password against the
// external user directory and issues a token pair.
type LoginWithCredentialsUseCase struct {
	Directory ports.UserDirectory
	Generate  GenerateTokensUseCase
	Logger    *slog.Logger
}

func (u LoginWithCredentialsUseCase) Execute(ctx context.Context, email string, password string) (LoginResult, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(email) == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: email and password are required", domainerrors.ErrValidation)
	}

	user, err := u.Directory.AuthenticateUser(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return LoginResult{}, err
	}
	if user == nil {
		logger.Info("login rejected",
			"event", "iam_login_rejected",
			"module", "identity-access/token-authority",
			"layer", "application",
			"email", email,
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return LoginResult{}, domainerrors.ErrInactiveUser
	}

	tokens, err := u.Generate.Execute(ctx, *user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: *user, Tokens: tokens}, nil
}

// LoginWithIAMCredentialsUseCase authenticates an account-scoped IAM user
// by account id, username, and password.
type LoginWithIAMCredentialsUseCase struct {
	Directory ports.UserDirectory
	Generate  GenerateTokensUseCase
	Logger    *slog.Logger
}

func (u LoginWithIAMCredentialsUseCase) Execute(ctx context.Context, accountID string, username string, password string) (LoginResult, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(accountID) == "" || strings.TrimSpace(username) == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: account id, username, and password are required", domainerrors.ErrValidation)
	}

	user, err := u.Directory.AuthenticateIAMUser(ctx, strings.TrimSpace(accountID), strings.TrimSpace(username), password)
	if err != nil {
		return LoginResult{}, err
	}
	if user == nil {
		logger.Info("iam login rejected",
			"event", "iam_login_rejected",
			"module", "identity-access/token-authority",
			"layer", "application",
			"account_id", accountID,
			"username", username,
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return LoginResult{}, domainerrors.ErrInactiveUser
	}

	tokens, err := u.Generate.Execute(ctx, *user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: *user, Tokens: tokens}, nil
}
