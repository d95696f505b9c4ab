package postgres

import (
	"context"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	return translate("categories.Create", err, "", "Category already exists")
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate("categories.FindByID", err, "Category not found", "")
	}
	return &category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&category).Error; err != nil {
		return nil, translate("categories.FindByName", err, "Category not found", "")
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Internal("categories.List", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	const op = "categories.Update"

	res := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{"name": category.Name, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return translate(op, res.Error, "", "Category already exists")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(op, "Category not found")
	}
	err := r.db.WithContext(ctx).First(category, "id = ?", category.ID).Error
	return translate(op, err, "Category not found", "")
}

// Delete detaches the category from its courses through ON DELETE SET NULL.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal("categories.Delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("categories.Delete", "Category not found")
	}
	return nil
}
