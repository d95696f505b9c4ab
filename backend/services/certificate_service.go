package services

import (
	"context"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/google/uuid"
)

type CertificateService struct {
	store    Store
	progress *ProgressService
	now      func() time.Time
}

// Certificate is computed on request and never stored.
type Certificate struct {
	StudentName    string    `json:"studentName"`
	CourseTitle    string    `json:"courseTitle"`
	InstructorName string    `json:"instructorName"`
	CompletedAt    time.Time `json:"completedAt"` // time of issue
	// LastModuleCompletedAt is when the final counted module was completed.
	LastModuleCompletedAt *time.Time `json:"lastModuleCompletedAt,omitempty"`
}

func (s *CertificateService) Issue(ctx context.Context, userID, courseID uuid.UUID) (*Certificate, error) {
	const op = "certificates.Issue"

	course, err := s.store.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.store.Enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.Forbidden(op, "Not enrolled")
	}

	progress, entries, err := s.progress.courseProgress(ctx, userID, course)
	if err != nil {
		return nil, err
	}
	if progress.Progress != 100 {
		return nil, apperr.Forbidden(op, "Course not completed")
	}

	student, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	instructorName := "Instructor"
	instructor, err := s.store.Users.FindByID(ctx, course.InstructorID)
	switch {
	case err == nil && instructor.Name != "":
		instructorName = instructor.Name
	case err != nil && !apperr.IsNotFound(err):
		return nil, err
	}

	cert := &Certificate{
		StudentName:    student.Name,
		CourseTitle:    course.Title,
		InstructorName: instructorName,
		CompletedAt:    s.now(),
	}
	for _, e := range entries {
		if cert.LastModuleCompletedAt == nil || e.CompletedAt.After(*cert.LastModuleCompletedAt) {
			at := e.CompletedAt
			cert.LastModuleCompletedAt = &at
		}
	}
	return cert, nil
}
