package services

import (
	"context"

	"github.com/google/uuid"

	"toyshop/internal/models"
	"toyshop/internal/repositories"
)

// ToyService handles business logic related to toys.
type ToyService struct {
	repo repositories.ToyRepository
}

// NewToyService creates a new ToyService.
func NewToyService(repo repositories.ToyRepository) *ToyService {
	return &ToyService{
		repo: repo,
	}
}

// GetAllToys retrieves all toys. There is no pagination or filtering; an
// empty store yields an empty list.
func (s *ToyService) GetAllToys(ctx context.Context) ([]models.Toy, error) {
	return s.repo.GetAll(ctx)
}

// GetToyByID retrieves a single toy by its ID.
func (s *ToyService) GetToyByID(ctx context.Context, id string) (*models.Toy, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateToy validates the command, assigns a fresh identifier and persists
// the toy. Any id carried in the command body is ignored and IsActive is
// forced true. Nothing is persisted when validation fails.
func (s *ToyService) CreateToy(ctx context.Context, cmd models.ToyCommand) (*models.Toy, error) {
	toy, errs := models.ToyFromCommand(uuid.New().String(), cmd)
	if errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	if err := s.repo.Create(ctx, toy); err != nil {
		return nil, err
	}
	return toy, nil
}

// UpdateToy replaces the toy stored under id. The existence check runs
// before validation, so an unknown id reports not-found even when the body
// is invalid. The path id wins over any id in the command body. The check
// and the write are separate statements; a row deleted in between surfaces
// as ErrNothingPersisted from the repository.
func (s *ToyService) UpdateToy(ctx context.Context, id string, cmd models.ToyCommand) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	toy, errs := models.ToyFromCommand(id, cmd)
	if errs != nil {
		return &ValidationError{Fields: errs}
	}
	return s.repo.Update(ctx, toy)
}

// DeleteToy removes the toy stored under id after an existence check.
func (s *ToyService) DeleteToy(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
