package services

import (
	"context"
	"math"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProgressService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

type Completion struct {
	CourseID         uuid.UUID `json:"courseId"`
	ModuleID         uuid.UUID `json:"moduleId"`
	AlreadyCompleted bool      `json:"alreadyCompleted"`
}

// CompleteModule marks a module of an enrolled course as done. Repeating it is a
// no-op reported through AlreadyCompleted.
func (s *ProgressService) CompleteModule(ctx context.Context, userID, courseID, moduleID uuid.UUID) (*Completion, error) {
	const op = "progress.CompleteModule"

	if _, err := s.store.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	course, err := s.store.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.HasModule(moduleID) {
		return nil, apperr.NotFound(op, "Module not found")
	}
	enrolled, err := s.store.Enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.Forbidden(op, "Not enrolled")
	}

	added, err := s.store.Progress.MarkCompleted(ctx, &models.CompletedModule{
		UserID:      userID,
		CourseID:    courseID,
		ModuleID:    moduleID,
		CompletedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	if added {
		s.logger.Debug("module completed",
			zap.String("user_id", userID.String()),
			zap.String("course_id", courseID.String()),
			zap.String("module_id", moduleID.String()),
		)
	}

	return &Completion{CourseID: courseID, ModuleID: moduleID, AlreadyCompleted: !added}, nil
}

func (s *ProgressService) GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, error) {
	course, err := s.store.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	progress, _, err := s.courseProgress(ctx, userID, course)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// GetProgressForAllEnrolled computes progress for every enrolled course with one
// course lookup and one completion lookup.
func (s *ProgressService) GetProgressForAllEnrolled(ctx context.Context, userID uuid.UUID) ([]models.CourseProgress, error) {
	if _, err := s.store.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.store.Enrollments.CourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]models.CourseProgress, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	courses, err := s.store.Courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.Progress.ListCompleted(ctx, userID, ids...)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[uuid.UUID][]models.CompletedModule)
	for _, e := range entries {
		byCourse[e.CourseID] = append(byCourse[e.CourseID], e)
	}
	for i := range courses {
		result = append(result, computeProgress(&courses[i], byCourse[courses[i].ID]))
	}
	return result, nil
}

// courseProgress also returns the entries that counted toward the percentage.
func (s *ProgressService) courseProgress(ctx context.Context, userID uuid.UUID, course *models.Course) (*models.CourseProgress, []models.CompletedModule, error) {
	entries, err := s.store.Progress.ListCompleted(ctx, userID, course.ID)
	if err != nil {
		return nil, nil, err
	}
	counted := make([]models.CompletedModule, 0, len(entries))
	for _, e := range entries {
		if course.HasModule(e.ModuleID) {
			counted = append(counted, e)
		}
	}
	progress := computeProgress(course, counted)
	return &progress, counted, nil
}

// computeProgress only counts entries for modules the course still has.
func computeProgress(course *models.Course, entries []models.CompletedModule) models.CourseProgress {
	completed := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		if course.HasModule(e.ModuleID) {
			completed = append(completed, e.ModuleID)
		}
	}
	return models.CourseProgress{
		CourseID:         course.ID,
		Progress:         Percent(len(completed), len(course.Modules)),
		TotalModules:     len(course.Modules),
		CompletedModules: completed,
	}
}

// Percent rounds half-up; a course without modules is at 0.
func Percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
