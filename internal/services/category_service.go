package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/models"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
)

type CategoryService struct {
	cats repo.Categories
}

func NewCategoryService(cats repo.Categories) *CategoryService {
	return &CategoryService{cats: cats}
}

func (s *CategoryService) Create(ctx context.Context, workspaceID, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, fmt.Errorf("%w: name required", ErrInvalid)
	}
	return s.cats.Create(ctx, models.Category{WorkspaceID: workspaceID, Name: name})
}

func (s *CategoryService) List(ctx context.Context, workspaceID string) ([]models.Category, error) {
	return s.cats.ListByWorkspace(ctx, workspaceID)
}

func (s *CategoryService) get(ctx context.Context, workspaceID, categoryID string) (models.Category, error) {
	c, err := s.cats.GetByID(ctx, categoryID)
	if err != nil {
		return models.Category{}, err
	}
	if c.WorkspaceID != workspaceID {
		return models.Category{}, repo.ErrNotFound
	}
	return c, nil
}

func (s *CategoryService) Rename(ctx context.Context, workspaceID, categoryID, name string) (models.Category, error) {
	if _, err := s.get(ctx, workspaceID, categoryID); err != nil {
		return models.Category{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, fmt.Errorf("%w: name required", ErrInvalid)
	}
	if err := s.cats.Rename(ctx, categoryID, name); err != nil {
		return models.Category{}, err
	}
	return s.cats.GetByID(ctx, categoryID)
}

// Delete removes the category; transactions that pointed at it become
// uncategorized rather than disappearing.
func (s *CategoryService) Delete(ctx context.Context, workspaceID, categoryID string) error {
	if _, err := s.get(ctx, workspaceID, categoryID); err != nil {
		return err
	}
	return s.cats.Delete(ctx, categoryID)
}
