package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/murof-net/auth/internal/common"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("super-secret")

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	i, err := NewIssuer(testSecret, "HS256", DefaultLifetimes())
	require.NoError(t, err)
	return i
}

func issueKind(t *testing.T, i *Issuer, kind Kind) string {
	t.Helper()
	var tok string
	var err error
	switch kind {
	case KindAccess:
		tok, err = i.AccessToken("user-123", "alice")
	case KindRefresh:
		tok, err = i.RefreshToken("user-123", "alice")
	case KindEmailVerification:
		tok, err = i.EmailVerificationToken("a@x.com")
	case KindPasswordReset:
		tok, err = i.PasswordResetToken("a@x.com")
	}
	require.NoError(t, err)
	return tok
}

func TestNewIssuer(t *testing.T) {
	tests := []struct {
		name      string
		secret    []byte
		algorithm string
		wantErr   bool
	}{
		{"hs256", testSecret, "HS256", false},
		{"hs512", testSecret, "HS512", false},
		{"empty secret", nil, "HS256", true},
		{"unknown algorithm", testSecret, "HS666", true},
		{"non-hmac algorithm", testSecret, "RS256", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIssuer(tt.secret, tt.algorithm, DefaultLifetimes())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIssueAndParse_AllKinds(t *testing.T) {
	i := newTestIssuer(t)

	for _, kind := range []Kind{KindAccess, KindRefresh, KindEmailVerification, KindPasswordReset} {
		t.Run(string(kind), func(t *testing.T) {
			tok := issueKind(t, i, kind)

			claims, err := i.Parse(tok, kind)
			require.NoError(t, err)
			require.Equal(t, kind, claims.Kind)

			switch kind {
			case KindAccess, KindRefresh:
				require.Equal(t, "user-123", claims.Subject)
				require.Equal(t, "alice", claims.Username)
			default:
				require.Equal(t, "a@x.com", claims.Subject)
				require.Empty(t, claims.Username)
			}
		})
	}
}

func TestParse_WrongKindRejected(t *testing.T) {
	i := newTestIssuer(t)
	kinds := []Kind{KindAccess, KindRefresh, KindEmailVerification, KindPasswordReset}

	for _, minted := range kinds {
		tok := issueKind(t, i, minted)
		for _, expected := range kinds {
			if expected == minted {
				continue
			}
			_, err := i.Parse(tok, expected)
			require.ErrorIs(t, err, common.ErrWrongTokenKind,
				"token of kind %s must not parse as %s", minted, expected)
		}
	}
}

func TestParse_Expired(t *testing.T) {
	i := newTestIssuer(t)
	tok, err := i.AccessToken("user-123", "alice")
	require.NoError(t, err)

	// one second past expiry is already too late
	i.now = func() time.Time {
		return time.Now().Add(i.lifetimes.Access + time.Second)
	}

	_, err = i.Parse(tok, KindAccess)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_StillValidJustBeforeExpiry(t *testing.T) {
	i := newTestIssuer(t)
	tok, err := i.AccessToken("user-123", "alice")
	require.NoError(t, err)

	i.now = func() time.Time {
		return time.Now().Add(i.lifetimes.Access - time.Minute)
	}

	_, err = i.Parse(tok, KindAccess)
	require.NoError(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	i := newTestIssuer(t)
	tok, err := i.AccessToken("user-123", "alice")
	require.NoError(t, err)

	other, err := NewIssuer([]byte("other-secret"), "HS256", DefaultLifetimes())
	require.NoError(t, err)

	_, err = other.Parse(tok, KindAccess)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	i := newTestIssuer(t)

	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		_, err := i.Parse(tok, KindAccess)
		require.ErrorIs(t, err, common.ErrInvalidToken)
	}
}

func TestParse_UnsignedTokenRejected(t *testing.T) {
	i := newTestIssuer(t)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Username: "alice",
		Kind:     KindAccess,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = i.Parse(tok, KindAccess)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_MissingClaims(t *testing.T) {
	i := newTestIssuer(t)

	sign := func(c Claims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(testSecret)
		require.NoError(t, err)
		return tok
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	t.Run("no subject", func(t *testing.T) {
		tok := sign(Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
			Username:         "alice",
			Kind:             KindAccess,
		})
		_, err := i.Parse(tok, KindAccess)
		require.ErrorIs(t, err, common.ErrMissingClaim)
	})

	t.Run("no username on refresh", func(t *testing.T) {
		tok := sign(Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123", ExpiresAt: exp},
			Kind:             KindRefresh,
		})
		_, err := i.Parse(tok, KindRefresh)
		require.ErrorIs(t, err, common.ErrMissingClaim)
	})

	t.Run("no expiry", func(t *testing.T) {
		tok := sign(Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
			Username:         "alice",
			Kind:             KindAccess,
		})
		_, err := i.Parse(tok, KindAccess)
		require.ErrorIs(t, err, common.ErrInvalidToken)
	})

	t.Run("username not required for verification tokens", func(t *testing.T) {
		tok := sign(Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "a@x.com", ExpiresAt: exp},
			Kind:             KindEmailVerification,
		})
		_, err := i.Parse(tok, KindEmailVerification)
		require.NoError(t, err)
	})
}

func TestLifetimes_For(t *testing.T) {
	l := DefaultLifetimes()
	require.Equal(t, 30*time.Minute, l.For(KindAccess))
	require.Equal(t, 7*24*time.Hour, l.For(KindRefresh))
	require.Equal(t, 24*time.Hour, l.For(KindEmailVerification))
	require.Equal(t, 15*time.Minute, l.For(KindPasswordReset))
	require.Zero(t, l.For(Kind("bogus")))
}

func TestLifetimes_Overridable(t *testing.T) {
	custom := Lifetimes{
		Access:            time.Minute,
		Refresh:           time.Hour,
		EmailVerification: time.Hour,
		PasswordReset:     time.Minute,
	}
	i, err := NewIssuer(testSecret, "HS256", custom)
	require.NoError(t, err)

	tok, err := i.AccessToken("user-123", "alice")
	require.NoError(t, err)

	claims, err := i.Parse(tok, KindAccess)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	require.Equal(t, time.Minute, lifetime)
}

func TestParseErrors_AreDistinct(t *testing.T) {
	require.False(t, errors.Is(common.ErrWrongTokenKind, common.ErrInvalidToken))
	require.False(t, errors.Is(common.ErrMissingClaim, common.ErrInvalidToken))
}
