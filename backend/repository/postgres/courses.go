package postgres

import (
	"context"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRepository struct {
	db *gorm.DB
}

func orderedModules(db *gorm.DB) *gorm.DB {
	return db.Order("sequence_order ASC")
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	for i := range course.Modules {
		course.Modules[i].SequenceOrder = i + 1
	}
	err := r.db.WithContext(ctx).Create(course).Error
	if err != nil && isForeignKeyViolation(err) {
		return apperr.Wrap("courses.Create", apperr.ErrNotFound, "Instructor or category not found", err)
	}
	return translate("courses.Create", err, "", "")
}

func (r *CourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Preload("Modules", orderedModules).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, translate("courses.FindByID", err, "Course not found", "")
	}
	return &course, nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error) {
	courses := make([]models.Course, 0, len(ids))
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Modules", orderedModules).
		Where("id IN ?", ids).
		Find(&courses).Error
	if err != nil {
		return nil, apperr.Internal("courses.FindByIDs", err)
	}
	return inOrder(ids, courses, func(c models.Course) uuid.UUID { return c.ID }), nil
}

func (r *CourseRepository) List(ctx context.Context, f services.CourseFilter) ([]models.Course, error) {
	q := r.db.WithContext(ctx).Preload("Modules", orderedModules)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.InstructorID != nil {
		q = q.Where("instructor_id = ?", *f.InstructorID)
	}
	if f.Search != "" {
		q = q.Where("title ILIKE ?", "%"+f.Search+"%")
	}

	var courses []models.Course
	if err := q.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, apperr.Internal("courses.List", err)
	}
	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const op = "courses.Update"

	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"title":       course.Title,
			"description": course.Description,
			"price":       course.Price,
			"thumbnail":   course.Thumbnail,
			"category_id": course.CategoryID,
			"updated_at":  now,
		})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return apperr.Wrap(op, apperr.ErrValidation, "Invalid category", res.Error)
		}
		return apperr.Internal(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(op, "Course not found")
	}
	course.UpdatedAt = now
	return nil
}

// Delete relies on ON DELETE CASCADE for modules, enrollments, completions and reviews.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal("courses.Delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("courses.Delete", "Course not found")
	}
	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&count).Error; err != nil {
		return 0, apperr.Internal("courses.Count", err)
	}
	return count, nil
}

// AddModule holds the course row lock while picking the next position.
func (r *CourseRepository) AddModule(ctx context.Context, module *models.Module) error {
	const op = "courses.AddModule"

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&course, "id = ?", module.CourseID).Error
		if err != nil {
			return translate(op, err, "Course not found", "")
		}

		var last int
		err = tx.Model(&models.Module{}).
			Where("course_id = ?", module.CourseID).
			Select("COALESCE(MAX(sequence_order), 0)").
			Scan(&last).Error
		if err != nil {
			return apperr.Internal(op, err)
		}

		module.SequenceOrder = last + 1
		if err := tx.Create(module).Error; err != nil {
			return apperr.Internal(op, err)
		}
		return nil
	})
}

func (r *CourseRepository) UpdateModule(ctx context.Context, module *models.Module) error {
	const op = "courses.UpdateModule"

	res := r.db.WithContext(ctx).
		Model(&models.Module{}).
		Where("id = ? AND course_id = ?", module.ID, module.CourseID).
		Updates(map[string]interface{}{
			"title":      module.Title,
			"video_url":  module.VideoURL,
			"pdf_url":    module.PDFURL,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return apperr.Internal(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(op, "Module not found")
	}
	err := r.db.WithContext(ctx).First(module, "id = ?", module.ID).Error
	return translate(op, err, "Module not found", "")
}

func (r *CourseRepository) DeleteModule(ctx context.Context, courseID, moduleID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND course_id = ?", moduleID, courseID).
		Delete(&models.Module{})
	if res.Error != nil {
		return apperr.Internal("courses.DeleteModule", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("courses.DeleteModule", "Module not found")
	}
	return nil
}
