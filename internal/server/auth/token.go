// Package auth implements the token subsystem: signed, typed, expiring JWTs
// for the access, refresh, email-verification and password-reset flows, plus
// password hashing.
//
// Every token carries a kind claim fixed at issuance. Parse checks the kind
// against what the caller expects, so a token minted for one purpose (say, a
// password reset) is never accepted where another kind is required (say, as
// an access token).
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/murof-net/auth/internal/common"
)

// Kind is the declared purpose of a token.
type Kind string

const (
	KindAccess            Kind = "access"
	KindRefresh           Kind = "refresh"
	KindEmailVerification Kind = "email_verification"
	KindPasswordReset     Kind = "password_reset"
)

// Claims is the signed payload. Subject is the user id for access/refresh
// tokens and the email address for verification/reset tokens. Username is
// present only on access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Kind     Kind   `json:"type"`
}

// Lifetimes holds the per-kind validity durations. They are configuration,
// fixed for the process lifetime, never adjusted per token.
type Lifetimes struct {
	Access            time.Duration
	Refresh           time.Duration
	EmailVerification time.Duration
	PasswordReset     time.Duration
}

// DefaultLifetimes returns the standard policy: 30 minutes for access,
// 7 days for refresh, 24 hours for email verification, 15 minutes for
// password reset.
func DefaultLifetimes() Lifetimes {
	return Lifetimes{
		Access:            30 * time.Minute,
		Refresh:           7 * 24 * time.Hour,
		EmailVerification: 24 * time.Hour,
		PasswordReset:     15 * time.Minute,
	}
}

// For returns the lifetime configured for the given kind.
func (l Lifetimes) For(kind Kind) time.Duration {
	switch kind {
	case KindAccess:
		return l.Access
	case KindRefresh:
		return l.Refresh
	case KindEmailVerification:
		return l.EmailVerification
	case KindPasswordReset:
		return l.PasswordReset
	}
	return 0
}

// Issuer mints and parses tokens with a shared HMAC secret. Secret, signing
// method and lifetimes are fixed at construction.
type Issuer struct {
	secret    []byte
	method    jwt.SigningMethod
	lifetimes Lifetimes
	now       func() time.Time
}

// NewIssuer builds an Issuer for the given HMAC algorithm name ("HS256",
// "HS384" or "HS512"). Non-HMAC algorithms are rejected: verification runs
// with the same shared secret used for signing.
func NewIssuer(secret []byte, algorithm string, lifetimes Lifetimes) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("empty signing secret")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not HMAC-based", algorithm)
	}
	return &Issuer{
		secret:    secret,
		method:    method,
		lifetimes: lifetimes,
		now:       time.Now,
	}, nil
}

// AccessToken mints an access token for the given user.
func (i *Issuer) AccessToken(userID, username string) (string, error) {
	return i.issue(KindAccess, userID, username)
}

// RefreshToken mints a refresh token for the given user.
func (i *Issuer) RefreshToken(userID, username string) (string, error) {
	return i.issue(KindRefresh, userID, username)
}

// EmailVerificationToken mints a token proving ownership of email.
func (i *Issuer) EmailVerificationToken(email string) (string, error) {
	return i.issue(KindEmailVerification, email, "")
}

// PasswordResetToken mints a short-lived token allowing a password change
// for the account owning email.
func (i *Issuer) PasswordResetToken(email string) (string, error) {
	return i.issue(KindPasswordReset, email, "")
}

func (i *Issuer) issue(kind Kind, subject, username string) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetimes.For(kind))),
		},
		Username: username,
		Kind:     kind,
	}

	tokenString, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Parse verifies signature and expiry, then checks that the token was minted
// for the expected kind and carries the claims that kind requires.
//
// Errors: common.ErrInvalidToken for signature, structure or expiry failures
// (no grace window on expiry), common.ErrWrongTokenKind when the kind claim
// does not match, common.ErrMissingClaim when the subject — or, for access
// and refresh tokens, the username — is absent.
func (i *Issuer) Parse(tokenString string, expected Kind) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{i.method.Alg()}), jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.Kind != expected {
		return nil, common.ErrWrongTokenKind
	}
	if claims.Subject == "" {
		return nil, common.ErrMissingClaim
	}
	if (expected == KindAccess || expected == KindRefresh) && claims.Username == "" {
		return nil, common.ErrMissingClaim
	}

	return claims, nil
}
