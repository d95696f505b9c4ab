package postgres

import (
	"context"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return translate("users.Create", err, "", "User already exists")
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate("users.FindByID", err, "User not found", "")
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate("users.FindByEmail", err, "User not found", "")
	}
	return &user, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperr.Internal("users.FindByIDs", err)
	}
	return inOrder(ids, users, func(u models.User) uuid.UUID { return u.ID }), nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, apperr.Internal("users.List", err)
	}
	return users, nil
}

func (r *UserRepository) ListInstructorsByStatus(ctx context.Context, status string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND instructor_status = ?", models.RoleInstructor, status).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, apperr.Internal("users.ListInstructorsByStatus", err)
	}
	return users, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, apperr.Internal("users.CountByRole", err)
	}
	return count, nil
}

func (r *UserRepository) SetInstructorStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("instructor_status", status)
	if res.Error != nil {
		return apperr.Internal("users.SetInstructorStatus", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("users.SetInstructorStatus", "User not found")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	const op = "users.Delete"

	var reviewed []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", id).Error; err != nil {
			return translate(op, err, "User not found", "")
		}

		var owned int64
		if err := tx.Model(&models.Course{}).Where("instructor_id = ?", id).Count(&owned).Error; err != nil {
			return apperr.Internal(op, err)
		}
		if owned > 0 {
			return apperr.Conflict(op, "User still owns courses")
		}

		if err := tx.Model(&models.Review{}).Where("student_id = ?", id).Distinct().Pluck("course_id", &reviewed).Error; err != nil {
			return apperr.Internal(op, err)
		}
		// Lock the affected courses in a stable order before touching their reviews.
		if len(reviewed) > 0 {
			var locked []models.Course
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				Where("id IN ?", reviewed).
				Order("id").
				Find(&locked).Error
			if err != nil {
				return apperr.Internal(op, err)
			}
		}

		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			if isForeignKeyViolation(err) {
				return apperr.Wrap(op, apperr.ErrConflict, "User still owns courses", err)
			}
			return apperr.Internal(op, err)
		}
		for _, courseID := range reviewed {
			if _, err := recomputeAvg(tx, courseID); err != nil {
				return apperr.Internal(op, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}
