package errors

import "errors"

var (
	// ErrValidation covers missing or out-of-range request input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers absent rows and cross-account access alike, so a
	// caller can never distinguish "exists elsewhere" from "does not exist".
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a store-enforced uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrExpired signals a session read past its expiry instant.
	ErrExpired = errors.New("expired")
	// ErrAssumeRoleDenied signals a trust evaluation that did not allow
	// the calling principal.
	ErrAssumeRoleDenied = errors.New("assume role denied by trust policy")
)
