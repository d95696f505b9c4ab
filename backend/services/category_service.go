package services

import (
	"context"
	"strings"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService struct {
	store  Store
	logger *zap.Logger
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("categories.Create", "Category name is required")
	}
	category := &models.Category{Name: name}
	if err := s.store.Categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("category created", zap.String("name", name))
	return category, nil
}

func (s *CategoryService) Rename(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("categories.Rename", "Category name is required")
	}
	category := &models.Category{ID: id, Name: name}
	if err := s.store.Categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Categories.Delete(ctx, id)
}

// Resolve accepts a category id or name. An empty reference means no category;
// anything that does not resolve is a validation failure.
func (s *CategoryService) Resolve(ctx context.Context, ref string) (*uuid.UUID, error) {
	const op = "categories.Resolve"

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	var (
		category *models.Category
		err      error
	)
	if id, perr := uuid.Parse(ref); perr == nil {
		category, err = s.store.Categories.FindByID(ctx, id)
	} else {
		category, err = s.store.Categories.FindByName(ctx, ref)
	}
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Validation(op, "Invalid category")
		}
		return nil, err
	}
	return &category.ID, nil
}
