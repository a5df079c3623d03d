package errors

import "errors"

var (
	// ErrValidation covers missing or malformed request input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals an absent user or row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials signals a failed email/password or IAM login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRevoked signals a token the revocation ledger reports revoked,
	// including blanket revoke-all markers.
	ErrRevoked = errors.New("token revoked")
	// ErrTokenType signals a type claim that does not match the
	// verification context.
	ErrTokenType = errors.New("unexpected token type")
	// ErrInvalidSignature covers bad signatures and expired tokens alike.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrInactiveUser signals a refresh attempt for a deactivated user.
	ErrInactiveUser = errors.New("user is not active")
	// ErrRevocationUnavailable signals that the durable revocation tier
	// rejected a write. A revoke must fail loudly, never silently.
	ErrRevocationUnavailable = errors.New("revocation store unavailable")
)
