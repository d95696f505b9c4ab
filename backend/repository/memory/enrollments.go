package memory

import (
	"context"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
)

type EnrollmentRepository struct {
	db *DB
}

func (r *EnrollmentRepository) Enroll(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[userID]; !ok {
		return false, apperr.NotFound("enrollments.Enroll", "User not found")
	}
	if _, ok := r.db.courses[courseID]; !ok {
		return false, apperr.NotFound("enrollments.Enroll", "Course not found")
	}
	key := enrollmentKey{userID, courseID}
	if _, ok := r.db.enrolled[key]; ok {
		return false, nil
	}
	r.db.enrolled[key] = struct{}{}
	r.db.enrollments = append(r.db.enrollments, models.Enrollment{UserID: userID, CourseID: courseID, EnrolledAt: at})
	return true, nil
}

func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.enrolled[enrollmentKey{userID, courseID}]
	return ok, nil
}

func (r *EnrollmentRepository) CourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ids := make([]uuid.UUID, 0)
	for _, e := range r.db.enrollments {
		if e.UserID == userID {
			ids = append(ids, e.CourseID)
		}
	}
	return ids, nil
}

func (r *EnrollmentRepository) StudentIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ids := make([]uuid.UUID, 0)
	for _, e := range r.db.enrollments {
		if e.CourseID == courseID {
			ids = append(ids, e.UserID)
		}
	}
	return ids, nil
}

func (r *EnrollmentRepository) CountStudents(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	want := make(map[uuid.UUID]struct{}, len(courseIDs))
	counts := make(map[uuid.UUID]int64, len(courseIDs))
	for _, id := range courseIDs {
		want[id] = struct{}{}
		counts[id] = 0
	}
	for _, e := range r.db.enrollments {
		if _, ok := want[e.CourseID]; ok {
			counts[e.CourseID]++
		}
	}
	return counts, nil
}

type ProgressRepository struct {
	db *DB
}

func (r *ProgressRepository) MarkCompleted(ctx context.Context, entry *models.CompletedModule) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, c := range r.db.completed {
		if c.UserID == entry.UserID && c.CourseID == entry.CourseID && c.ModuleID == entry.ModuleID {
			return false, nil
		}
	}
	r.db.completed = append(r.db.completed, *entry)
	return true, nil
}

func (r *ProgressRepository) ListCompleted(ctx context.Context, userID uuid.UUID, courseIDs ...uuid.UUID) ([]models.CompletedModule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	want := make(map[uuid.UUID]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		want[id] = struct{}{}
	}
	entries := make([]models.CompletedModule, 0)
	for _, c := range r.db.completed {
		if c.UserID != userID {
			continue
		}
		if len(want) > 0 {
			if _, ok := want[c.CourseID]; !ok {
				continue
			}
		}
		entries = append(entries, c)
	}
	return entries, nil
}
