package services

import (
	"context"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService struct {
	store   Store
	courses *CourseService
	reviews *ReviewService
	logger  *zap.Logger
}

type Stats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalCourses     int64 `json:"totalCourses"`
	TotalStudents    int64 `json:"totalStudents"`
	TotalInstructors int64 `json:"totalInstructors"`
}

func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.TotalUsers, err = s.store.Users.CountByRole(ctx, ""); err != nil {
		return nil, err
	}
	if stats.TotalCourses, err = s.store.Courses.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalStudents, err = s.store.Users.CountByRole(ctx, models.RoleStudent); err != nil {
		return nil, err
	}
	if stats.TotalInstructors, err = s.store.Users.CountByRole(ctx, models.RoleInstructor); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	return s.store.Users.List(ctx)
}

// DeleteUser removes a non-admin account other than the caller's. Accounts that
// still own courses cannot be removed.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	const op = "admin.DeleteUser"

	if actorID == userID {
		return apperr.Validation(op, "You cannot delete yourself")
	}
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return apperr.Forbidden(op, "Cannot delete another admin")
	}

	reviewed, err := s.store.Users.Delete(ctx, userID)
	if err != nil {
		return err
	}
	s.reviews.forget(ctx, reviewed...)

	s.logger.Info("user deleted",
		zap.String("user_id", userID.String()),
		zap.String("by", actorID.String()),
	)
	return nil
}

func (s *AdminService) Courses(ctx context.Context) ([]CourseSummary, error) {
	return s.courses.List(ctx, "", "")
}

func (s *AdminService) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	if err := s.store.Courses.Delete(ctx, courseID); err != nil {
		return err
	}
	s.reviews.forget(ctx, courseID)
	s.logger.Info("course removed by admin", zap.String("course_id", courseID.String()))
	return nil
}
