package postgres

import (
	"context"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func (r *EnrollmentRepository) Enroll(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (bool, error) {
	const op = "enrollments.Enroll"

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Enrollment{UserID: userID, CourseID: courseID, EnrolledAt: at})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return false, apperr.Wrap(op, apperr.ErrNotFound, "User or course not found", res.Error)
		}
		return false, apperr.Internal(op, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("enrollments.IsEnrolled", err)
	}
	return count > 0, nil
}

func (r *EnrollmentRepository) CourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Order("enrolled_at ASC").
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, apperr.Internal("enrollments.CourseIDs", err)
	}
	return ids, nil
}

func (r *EnrollmentRepository) StudentIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Order("enrolled_at ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, apperr.Internal("enrollments.StudentIDs", err)
	}
	return ids, nil
}

func (r *EnrollmentRepository) CountStudents(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []countRow
	if len(courseIDs) > 0 {
		err := r.db.WithContext(ctx).
			Model(&models.Enrollment{}).
			Select("course_id AS id, COUNT(*) AS count").
			Where("course_id IN ?", courseIDs).
			Group("course_id").
			Scan(&rows).Error
		if err != nil {
			return nil, apperr.Internal("enrollments.CountStudents", err)
		}
	}
	return countsByID(courseIDs, rows), nil
}

type ProgressRepository struct {
	db *gorm.DB
}

func (r *ProgressRepository) MarkCompleted(ctx context.Context, entry *models.CompletedModule) (bool, error) {
	const op = "progress.MarkCompleted"

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return false, apperr.Wrap(op, apperr.ErrNotFound, "User or course not found", res.Error)
		}
		return false, apperr.Internal(op, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *ProgressRepository) ListCompleted(ctx context.Context, userID uuid.UUID, courseIDs ...uuid.UUID) ([]models.CompletedModule, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(courseIDs) > 0 {
		q = q.Where("course_id IN ?", courseIDs)
	}

	entries := make([]models.CompletedModule, 0)
	if err := q.Order("completed_at ASC").Find(&entries).Error; err != nil {
		return nil, apperr.Internal("progress.ListCompleted", err)
	}
	return entries, nil
}
