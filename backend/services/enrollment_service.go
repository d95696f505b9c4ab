package services

import (
	"context"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EnrollmentService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// Membership is the enrollment view returned after Enroll.
type Membership struct {
	CourseID        uuid.UUID `json:"courseId"`
	UserID          uuid.UUID `json:"userId"`
	AlreadyEnrolled bool      `json:"alreadyEnrolled"`
	Students        int       `json:"students"`
}

// Enroll records membership once. Enrolling again is a no-op reported through
// AlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*Membership, error) {
	if _, err := s.store.Courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	added, err := s.store.Enrollments.Enroll(ctx, userID, courseID, s.now())
	if err != nil {
		return nil, err
	}
	if added {
		s.logger.Info("enrollment created",
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID.String()),
		)
	}

	students, err := s.store.Enrollments.StudentIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &Membership{
		CourseID:        courseID,
		UserID:          userID,
		AlreadyEnrolled: !added,
		Students:        len(students),
	}, nil
}

func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	return s.store.Enrollments.IsEnrolled(ctx, userID, courseID)
}

// EnrolledCourses returns the user's courses in enrollment order.
func (s *EnrollmentService) EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]models.Course, error) {
	ids, err := s.store.Enrollments.CourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.Courses.FindByIDs(ctx, ids)
}

func (s *EnrollmentService) Students(ctx context.Context, courseID uuid.UUID) ([]models.User, error) {
	if _, err := s.store.Courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	ids, err := s.store.Enrollments.StudentIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.store.Users.FindByIDs(ctx, ids)
}
