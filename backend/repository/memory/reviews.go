package memory

import (
	"context"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
)

type ReviewRepository struct {
	db *DB
}

func (r *ReviewRepository) AddAndRecompute(ctx context.Context, review *models.Review) (float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses[review.CourseID]; !ok {
		return 0, apperr.NotFound("reviews.AddAndRecompute", "Course not found")
	}
	for _, rv := range r.db.reviews {
		if rv.CourseID == review.CourseID && rv.StudentID == review.StudentID {
			return 0, apperr.Conflict("reviews.AddAndRecompute", "Already reviewed")
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = r.db.now()
	}
	r.db.reviews = append(r.db.reviews, *review)
	return r.db.recomputeAvg(review.CourseID), nil
}

func (r *ReviewRepository) DeleteAndRecompute(ctx context.Context, courseID, reviewID uuid.UUID) (float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.courses[courseID]; !ok {
		return 0, apperr.NotFound("reviews.DeleteAndRecompute", "Course not found")
	}
	found := false
	r.db.reviews = filter(r.db.reviews, func(rv models.Review) bool {
		if rv.ID == reviewID && rv.CourseID == courseID {
			found = true
			return false
		}
		return true
	})
	if !found {
		return 0, apperr.NotFound("reviews.DeleteAndRecompute", "Review not found")
	}
	return r.db.recomputeAvg(courseID), nil
}

// ListByCourse returns the course's reviews newest first.
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Review, error) {
	return r.collect(func(rv models.Review) bool { return rv.CourseID == courseID }), nil
}

func (r *ReviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	return r.collect(func(models.Review) bool { return true }), nil
}

func (r *ReviewRepository) CountByCourse(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	counts := make(map[uuid.UUID]int64, len(courseIDs))
	for _, id := range courseIDs {
		counts[id] = 0
	}
	for _, rv := range r.db.reviews {
		if _, ok := counts[rv.CourseID]; ok {
			counts[rv.CourseID]++
		}
	}
	return counts, nil
}

func (r *ReviewRepository) collect(keep func(models.Review) bool) []models.Review {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	reviews := make([]models.Review, 0)
	for i := len(r.db.reviews) - 1; i >= 0; i-- {
		if rv := r.db.reviews[i]; keep(rv) {
			reviews = append(reviews, rv)
		}
	}
	return reviews
}
