// Package postgres implements the repository contracts on gorm. Constraints live
// in the goose migrations; this package translates their violations.
package postgres

import (
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func NewStore(db *gorm.DB) services.Store {
	return services.Store{
		Users:       &UserRepository{db: db},
		Courses:     &CourseRepository{db: db},
		Enrollments: &EnrollmentRepository{db: db},
		Progress:    &ProgressRepository{db: db},
		Reviews:     &ReviewRepository{db: db},
		Categories:  &CategoryRepository{db: db},
	}
}

// inOrder reorders rows to follow ids, dropping ids without a row.
func inOrder[T any](ids []uuid.UUID, rows []T, key func(T) uuid.UUID) []T {
	byID := make(map[uuid.UUID]T, len(rows))
	for _, r := range rows {
		byID[key(r)] = r
	}
	out := make([]T, 0, len(rows))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// recomputeAvg rewrites avg_rating from the review table and returns it.
func recomputeAvg(tx *gorm.DB, courseID uuid.UUID) (float64, error) {
	var avg float64
	err := tx.Raw(`
		UPDATE courses
		SET avg_rating = COALESCE((SELECT AVG(rating)::float8 FROM reviews WHERE course_id = ?), 0),
		    updated_at = now()
		WHERE id = ?
		RETURNING avg_rating`, courseID, courseID).Scan(&avg).Error
	return avg, err
}

type countRow struct {
	ID    uuid.UUID
	Count int64
}

func countsByID(ids []uuid.UUID, rows []countRow) map[uuid.UUID]int64 {
	counts := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		counts[id] = 0
	}
	for _, r := range rows {
		counts[r.ID] = r.Count
	}
	return counts
}
