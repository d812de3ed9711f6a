package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"toyshop/internal/models"
)

// GORMToyRepository is a GORM implementation of ToyRepository.
type GORMToyRepository struct {
	db *gorm.DB
}

// NewGORMToyRepository creates a new instance of GORMToyRepository.
func NewGORMToyRepository(db *gorm.DB) *GORMToyRepository {
	return &GORMToyRepository{
		db: db,
	}
}

// GetAll retrieves all toys from the database.
func (r *GORMToyRepository) GetAll(ctx context.Context) ([]models.Toy, error) {
	var toys []models.Toy
	if err := r.db.WithContext(ctx).Find(&toys).Error; err != nil {
		return nil, fmt.Errorf("failed to get all toys: %w", err)
	}
	return toys, nil
}

// GetByID retrieves a single toy by its ID. The read takes no write lock;
// it is the plain lookup Update and Delete use for their existence checks.
func (r *GORMToyRepository) GetByID(ctx context.Context, id string) (*models.Toy, error) {
	var toy models.Toy
	if err := r.db.WithContext(ctx).First(&toy, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("toy with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get toy by ID %s: %w", id, err)
	}
	return &toy, nil
}

// Create inserts a new toy.
func (r *GORMToyRepository) Create(ctx context.Context, toy *models.Toy) error {
	res := r.db.WithContext(ctx).Create(toy)
	if res.Error != nil {
		return fmt.Errorf("failed to create toy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("create toy %s: %w", toy.ID, ErrNothingPersisted)
	}
	return nil
}

// Update replaces every column of the stored toy. Zero rows affected means
// the row disappeared between the caller's existence check and this write.
func (r *GORMToyRepository) Update(ctx context.Context, toy *models.Toy) error {
	// Not Save: Save re-inserts when the UPDATE hits zero rows, which would
	// mask the row vanishing between the existence check and this write.
	res := r.db.WithContext(ctx).Model(&models.Toy{}).Where("id = ?", toy.ID).
		Select("*").Omit("id").Updates(toy)
	if res.Error != nil {
		return fmt.Errorf("failed to update toy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update toy %s: %w", toy.ID, ErrNothingPersisted)
	}
	return nil
}

// Delete removes a toy by its ID. The delete is physical.
func (r *GORMToyRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Toy{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete toy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete toy %s: %w", id, ErrNothingPersisted)
	}
	return nil
}
