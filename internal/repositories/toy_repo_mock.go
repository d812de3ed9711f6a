package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"toyshop/internal/models"
)

// MockToyRepository is an in-memory implementation of ToyRepository.
type MockToyRepository struct {
	toys map[string]models.Toy
	mu   sync.RWMutex
}

// NewMockToyRepository creates a new instance of MockToyRepository.
func NewMockToyRepository() *MockToyRepository {
	return &MockToyRepository{
		toys: make(map[string]models.Toy),
	}
}

// GetAll returns all toys.
func (r *MockToyRepository) GetAll(ctx context.Context) ([]models.Toy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	toyList := make([]models.Toy, 0, len(r.toys))
	for _, t := range r.toys {
		toyList = append(toyList, t)
	}
	return toyList, nil
}

// GetByID returns a toy by its ID.
func (r *MockToyRepository) GetByID(ctx context.Context, id string) (*models.Toy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	toy, ok := r.toys[id]
	if !ok {
		return nil, fmt.Errorf("toy with ID %s: %w", id, ErrNotFound)
	}
	return &toy, nil
}

// Create adds a new toy.
func (r *MockToyRepository) Create(ctx context.Context, toy *models.Toy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if toy.ID == "" {
		toy.ID = uuid.New().String()
	}
	r.toys[toy.ID] = *toy
	return nil
}

// Update replaces an existing toy. A missing ID reports ErrNothingPersisted,
// mirroring the zero-rows-affected outcome of the GORM repository.
func (r *MockToyRepository) Update(ctx context.Context, toy *models.Toy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.toys[toy.ID]
	if !ok {
		return fmt.Errorf("update toy %s: %w", toy.ID, ErrNothingPersisted)
	}
	r.toys[toy.ID] = *toy
	return nil
}

// Delete removes a toy by its ID.
func (r *MockToyRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.toys[id]
	if !ok {
		return fmt.Errorf("delete toy %s: %w", id, ErrNothingPersisted)
	}
	delete(r.toys, id)
	return nil
}

// Count reports how many toys are stored. Test helper.
func (r *MockToyRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.toys)
}
