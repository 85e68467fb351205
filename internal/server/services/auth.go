// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, email verification, login, token
// refresh, current-user resolution, and password resets.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/murof-net/auth/internal/common"
	"github.com/murof-net/auth/internal/dbx"
	"github.com/murof-net/auth/internal/logging"
	"github.com/murof-net/auth/internal/server/auth"
	"github.com/murof-net/auth/internal/server/config"
	"github.com/murof-net/auth/internal/server/mail"
	"github.com/murof-net/auth/internal/server/models"
	"github.com/murof-net/auth/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// RegistrationResult is returned for every registration attempt except a
// username collision. The message is identical whether or not a user was
// actually created, so the response does not reveal that an email address is
// already registered.
type RegistrationResult struct {
	Message string
	Email   string
}

const (
	registrationMessage = "User registration successful, please check your email"
	resetRequestMessage = "If an account exists for %s, a password reset link has been sent"
)

// dummyHash is compared against when the user does not exist, so a failed
// login costs the same whether the username or the password was wrong.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService orchestrates the authentication flows against the user store,
// the token issuer, and the mail dispatcher.
type AuthService struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	issuer  *auth.Issuer
	mailer  mail.Dispatcher
	logger  logging.Logger
	baseURL string
}

// NewAuthService constructs an AuthService from its collaborators and the
// server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer,
	mailer mail.Dispatcher, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:      db,
		repos:   m,
		issuer:  issuer,
		mailer:  mailer,
		logger:  logger.With("module", "auth_service"),
		baseURL: cfg.PublicBaseURL,
	}
}

// Register creates an unverified account and emails a verification link.
//
// A taken username fails with common.ErrUsernameTaken. A taken email address
// does NOT fail: the owner gets a warning email and the caller gets the same
// RegistrationResult as a real registration. Mail dispatch is best-effort;
// a delivery failure is logged and never changes the outcome.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*RegistrationResult, error) {
	repo := s.repos.Users(s.db)

	if _, err := repo.FindByUsername(ctx, username); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		subject, body := mail.WarningEmail(username, email)
		if err := s.mailer.Send(ctx, email, subject, body); err != nil {
			s.logger.Error(ctx, "sending warning email", "error", err)
		}
		return &RegistrationResult{Message: registrationMessage, Email: email}, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := repo.Create(ctx, user); err != nil {
		// Lost a race against a concurrent registration with the same
		// username or email. The store's unique constraints decide.
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrUsernameTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issuer.EmailVerificationToken(email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	subject, body := mail.VerificationEmail(s.baseURL, username, email, token)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		s.logger.Error(ctx, "sending verification email", "error", err)
	}

	s.logger.Info(ctx, "user registered", "username", username)
	return &RegistrationResult{Message: registrationMessage, Email: email}, nil
}

// VerifyEmail marks the account named by a verification token as verified.
// Verifying an already-verified account succeeds again (idempotent).
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.issuer.Parse(token, auth.KindEmailVerification)
	if err != nil {
		return err
	}
	email := claims.Subject

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)
		user, err := repo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUserNotFound
			}
			return fmt.Errorf("error finding user: %w", err)
		}
		if user.Verified {
			return nil
		}
		user.Verified = true
		return repo.Save(ctx, user)
	})
}

// Login verifies credentials and mints a token pair. The identifier is an
// email address when it contains '@', a username otherwise. A missing user
// and a wrong password both yield common.ErrInvalidCredentials; a correct
// password on an unverified account yields common.ErrEmailNotVerified.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	repo := s.repos.Users(s.db)

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = repo.FindByEmail(ctx, identifier)
	} else {
		user, err = repo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a comparison so a missing user costs the same
			auth.CheckPassword(password, dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, common.ErrEmailNotVerified
	}

	return s.tokenPair(user)
}

// Refresh validates a refresh token and mints a new access token. The
// refresh token itself is echoed back untouched and stays valid until its
// own expiry; it is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.issuer.Parse(refreshToken, auth.KindRefresh)
	if err != nil {
		return nil, err
	}

	access, err := s.issuer.AccessToken(claims.Subject, claims.Username)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// CurrentUser resolves an access token to the user it was minted for. Any
// failure — bad token, wrong kind, unknown user — collapses to
// common.ErrUnauthenticated.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.issuer.Parse(accessToken, auth.KindAccess)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.repos.Users(s.db).FindByUsername(ctx, claims.Username)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}
	return user, nil
}

// RequestPasswordReset emails a reset link when an account exists for the
// address. The returned message is identical either way, so the endpoint
// cannot be used to probe which addresses are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	message := fmt.Sprintf(resetRequestMessage, common.MaskEmail(email))

	user, err := s.repos.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return message, nil
		}
		return "", common.ErrorInternal
	}

	token, err := s.issuer.PasswordResetToken(email)
	if err != nil {
		return "", common.ErrorInternal
	}
	subject, body := mail.PasswordResetEmail(s.baseURL, user.Username, email, token)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		s.logger.Error(ctx, "sending password reset email", "error", err)
	}

	return message, nil
}

// ResetPassword sets a new password for the account named by a valid
// password-reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.issuer.Parse(token, auth.KindPasswordReset)
	if err != nil {
		return err
	}

	repo := s.repos.Users(s.db)
	user, err := repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return fmt.Errorf("error finding user: %w", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}
	user.PasswordHash = hash

	if err := repo.Save(ctx, user); err != nil {
		return fmt.Errorf("error saving user: %w", err)
	}

	s.logger.Info(ctx, "password reset", "username", user.Username)
	return nil
}

func (s *AuthService) tokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.issuer.AccessToken(user.ID, user.Username)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.issuer.RefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
