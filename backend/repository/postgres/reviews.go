package postgres

import (
	"context"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

// lockCourse takes the course row lock that serializes review writes per course.
func lockCourse(tx *gorm.DB, op string, courseID uuid.UUID) error {
	var course models.Course
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&course, "id = ?", courseID).Error
	return translate(op, err, "Course not found", "")
}

func (r *ReviewRepository) AddAndRecompute(ctx context.Context, review *models.Review) (float64, error) {
	const op = "reviews.AddAndRecompute"

	var avg float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCourse(tx, op, review.CourseID); err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return translate(op, err, "", "Already reviewed")
		}
		var err error
		if avg, err = recomputeAvg(tx, review.CourseID); err != nil {
			return apperr.Internal(op, err)
		}
		return nil
	})
	return avg, err
}

func (r *ReviewRepository) DeleteAndRecompute(ctx context.Context, courseID, reviewID uuid.UUID) (float64, error) {
	const op = "reviews.DeleteAndRecompute"

	var avg float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCourse(tx, op, courseID); err != nil {
			return err
		}
		res := tx.Where("id = ? AND course_id = ?", reviewID, courseID).Delete(&models.Review{})
		if res.Error != nil {
			return apperr.Internal(op, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(op, "Review not found")
		}
		var err error
		if avg, err = recomputeAvg(tx, courseID); err != nil {
			return apperr.Internal(op, err)
		}
		return nil
	})
	return avg, err
}

func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperr.Internal("reviews.ListByCourse", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, apperr.Internal("reviews.ListAll", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) CountByCourse(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []countRow
	if len(courseIDs) > 0 {
		err := r.db.WithContext(ctx).
			Model(&models.Review{}).
			Select("course_id AS id, COUNT(*) AS count").
			Where("course_id IN ?", courseIDs).
			Group("course_id").
			Scan(&rows).Error
		if err != nil {
			return nil, apperr.Internal("reviews.CountByCourse", err)
		}
	}
	return countsByID(courseIDs, rows), nil
}
