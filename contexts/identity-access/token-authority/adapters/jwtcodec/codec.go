package jwtcodec

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"aegis/contexts/identity-access/token-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/token-authority/domain/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Codec implements ports.TokenCodec over HMAC-SHA256 compact tokens.
// The access and refresh secrets are independent so that compromising
// one cannot forge tokens of the other type.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

func New(accessSecret, refreshSecret []byte, issuer string) Codec {
	return Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		issuer:        issuer,
	}
}

type accessTokenClaims struct {
	UserID    string `json:"userId"`
	AccountID string `json:"accountId"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	IsRoot    bool   `json:"isRoot,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type refreshTokenClaims struct {
	UserID    string `json:"userId"`
	AccountID string `json:"accountId"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

func (c Codec) SignAccess(claims entities.AccessClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims{
		UserID:    claims.UserID,
		AccountID: claims.AccountID,
		Username:  claims.Username,
		Email:     claims.Email,
		IsRoot:    claims.IsRoot,
		TokenType: string(entities.TokenTypeAccess),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	signed, err := token.SignedString(c.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (c Codec) SignRefresh(claims entities.RefreshClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshTokenClaims{
		UserID:    claims.UserID,
		AccountID: claims.AccountID,
		TokenType: string(entities.TokenTypeRefresh),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	signed, err := token.SignedString(c.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

func (c Codec) ParseAccess(raw string) (entities.AccessClaims, error) {
	var claims accessTokenClaims
	if err := c.parse(raw, &claims, c.accessSecret); err != nil {
		return entities.AccessClaims{}, err
	}
	if claims.TokenType != string(entities.TokenTypeAccess) {
		return entities.AccessClaims{}, domainerrors.ErrTokenType
	}
	return entities.AccessClaims{
		UserID:    claims.UserID,
		AccountID: claims.AccountID,
		Username:  claims.Username,
		Email:     claims.Email,
		IsRoot:    claims.IsRoot,
		TokenType: entities.TokenTypeAccess,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c Codec) ParseRefresh(raw string) (entities.RefreshClaims, error) {
	var claims refreshTokenClaims
	if err := c.parse(raw, &claims, c.refreshSecret); err != nil {
		return entities.RefreshClaims{}, err
	}
	if claims.TokenType != string(entities.TokenTypeRefresh) {
		return entities.RefreshClaims{}, domainerrors.ErrTokenType
	}
	return entities.RefreshClaims{
		UserID:    claims.UserID,
		AccountID: claims.AccountID,
		TokenType: entities.TokenTypeRefresh,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c Codec) parse(raw string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// Bad signature and natural expiry are indistinguishable to the
		// caller: both mean the token cannot be trusted.
		return fmt.Errorf("%w: %s", domainerrors.ErrInvalidSignature, err.Error())
	}
	if !token.Valid {
		return domainerrors.ErrInvalidSignature
	}
	return nil
}

func (c Codec) PeekType(raw string) (entities.TokenType, error) {
	claims, err := c.peek(raw)
	if err != nil {
		return "", err
	}
	tokenType, _ := claims["type"].(string)
	return entities.TokenType(tokenType), nil
}

func (c Codec) PeekExpiry(raw string) (time.Time, error) {
	claims, err := c.peek(raw)
	if err != nil {
		return time.Time{}, err
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", domainerrors.ErrInvalidSignature)
	}
	return time.Unix(int64(exp), 0).UTC(), nil
}

func (c Codec) peek(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrInvalidSignature, err.Error())
	}
	return claims, nil
}

// Fingerprint is the irreversible digest used as the revocation key.
func (c Codec) Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
