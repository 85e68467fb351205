// Package common defines shared constants, helpers, and sentinel errors used
// across the auth service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Token errors. ErrInvalidToken covers signature, structure and expiry
	// failures; kind and claim-shape violations get their own sentinels so
	// callers can tell a replayed token apart from a garbage one.
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenKind = errors.New("wrong token kind")
	ErrMissingClaim   = errors.New("missing claim")

	// Auth flow errors.
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("incorrect identifier or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("could not validate credentials")
)
