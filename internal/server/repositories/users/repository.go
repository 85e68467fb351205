// Package users provides persistence for account records.
package users

import (
	"context"

	"github.com/murof-net/auth/internal/server/models"
)

// Repository is the user store contract consumed by the auth service.
// Implementations must enforce username/email uniqueness atomically.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}
