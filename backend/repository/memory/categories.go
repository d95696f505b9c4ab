package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
)

type CategoryRepository struct {
	db *DB
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, c := range r.db.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return apperr.Conflict("categories.Create", "Category already exists")
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := r.db.now()
	category.CreatedAt, category.UpdatedAt = now, now
	r.db.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.categories[id]
	if !ok {
		return nil, apperr.NotFound("categories.FindByID", "Category not found")
	}
	return &c, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, c := range r.db.categories {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, apperr.NotFound("categories.FindByName", "Category not found")
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	categories := make([]models.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.categories[category.ID]
	if !ok {
		return apperr.NotFound("categories.Update", "Category not found")
	}
	for id, c := range r.db.categories {
		if id != category.ID && strings.EqualFold(c.Name, category.Name) {
			return apperr.Conflict("categories.Update", "Category already exists")
		}
	}
	stored.Name = category.Name
	stored.UpdatedAt = r.db.now()
	r.db.categories[category.ID] = stored
	*category = stored
	return nil
}

// Delete removes the category and detaches it from its courses.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[id]; !ok {
		return apperr.NotFound("categories.Delete", "Category not found")
	}
	delete(r.db.categories, id)
	for courseID, c := range r.db.courses {
		if c.CategoryID != nil && *c.CategoryID == id {
			c.CategoryID = nil
			r.db.courses[courseID] = c
		}
	}
	return nil
}
