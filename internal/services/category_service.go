package services

import (
	"context"
	"errors"
	"fmt"

	"geddit/internal/models"
	"geddit/internal/repository"

	"gorm.io/gorm"
)

// CategoryService handles the shared category reference data
type CategoryService struct {
	repo *repository.Repository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo *repository.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// GetCategoryByName retrieves a category by name
func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.repo.GetCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// ListCategories retrieves all categories sorted by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID uint) error {
	if _, err := s.repo.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.repo.DeleteCategory(ctx, categoryID)
}
