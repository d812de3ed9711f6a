package repositories

import (
	"context"

	"toyshop/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateAccessFailedCount(ctx context.Context, id string, count int) error
	AddClaim(ctx context.Context, claim *models.UserClaim) error
}
