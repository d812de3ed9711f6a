package repositories

import (
	"context"

	"toyshop/internal/models"
)

// ToyRepository defines the interface for toy data access.
type ToyRepository interface {
	GetAll(ctx context.Context) ([]models.Toy, error)
	GetByID(ctx context.Context, id string) (*models.Toy, error)
	Create(ctx context.Context, toy *models.Toy) error
	Update(ctx context.Context, toy *models.Toy) error
	Delete(ctx context.Context, id string) error
}
