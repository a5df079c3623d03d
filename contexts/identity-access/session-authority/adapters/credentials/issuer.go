package credentials

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"aegis/contexts/identity-access/session-authority/domain/entities"
)

// Issuer mints temporary credential triads from the process entropy
// source. The session token is returned to the caller exactly once; only
// its SHA-256 fingerprint may be persisted.
type Issuer struct{}

func NewIssuer() Issuer { return Issuer{} }

const accessKeyPrefix = "AGIA"

func (Issuer) Issue(_ context.Context, roleID string, sessionName string, expiresAt time.Time) (entities.IssuedCredentials, string, error) {
	keyID := make([]byte, 8)
	if _, err := rand.Read(keyID); err != nil {
		return entities.IssuedCredentials{}, "", fmt.Errorf("mint access key id: %w", err)
	}
	secret, err := randomToken(30)
	if err != nil {
		return entities.IssuedCredentials{}, "", fmt.Errorf("mint secret access key: %w", err)
	}
	token, err := randomToken(48)
	if err != nil {
		return entities.IssuedCredentials{}, "", fmt.Errorf("mint session token: %w", err)
	}

	sessionToken := strings.Join([]string{roleID, sessionName, token}, ".")
	creds := entities.IssuedCredentials{
		AccessKeyID:     accessKeyPrefix + strings.ToUpper(hex.EncodeToString(keyID)),
		SecretAccessKey: secret,
		SessionToken:    sessionToken,
		Expiration:      expiresAt,
	}
	return creds, Fingerprint(sessionToken), nil
}

// Fingerprint is the irreversible digest stored in place of a raw token.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomToken(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
