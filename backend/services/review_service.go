package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService struct {
	store  Store
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

type ReviewAuthor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

type ReviewView struct {
	ID        uuid.UUID    `json:"id"`
	Student   ReviewAuthor `json:"student"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
}

type ReviewSummary struct {
	CourseID  uuid.UUID    `json:"courseId"`
	Reviews   []ReviewView `json:"reviews"`
	AvgRating float64      `json:"avgRating"`
}

// ModeratedReview is the flattened row admins browse.
type ModeratedReview struct {
	CourseID    uuid.UUID    `json:"courseId"`
	CourseTitle string       `json:"courseTitle"`
	ReviewID    uuid.UUID    `json:"reviewId"`
	Student     ReviewAuthor `json:"student"`
	Rating      int          `json:"rating"`
	Comment     string       `json:"comment"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func summaryVersionKey(courseID uuid.UUID) string {
	return fmt.Sprintf("reviews:course:%s:v", courseID)
}

func summaryKey(courseID uuid.UUID, version int64) string {
	return fmt.Sprintf("reviews:course:%s:%d", courseID, version)
}

// summaryVersion reads the course's summary generation. Writers bump it after
// committing, so a fill that raced a write lands under a key nobody reads again.
func (s *ReviewService) summaryVersion(ctx context.Context, courseID uuid.UUID) int64 {
	var version int64
	if err := s.cache.Get(ctx, summaryVersionKey(courseID), &version); err != nil {
		return 0
	}
	return version
}

// AddReview stores one review per (student, course) for enrolled students and
// returns it with the course's new average.
func (s *ReviewService) AddReview(ctx context.Context, userID, courseID uuid.UUID, rating int, comment string) (*models.Review, float64, error) {
	const op = "reviews.Add"

	if rating < 1 || rating > 5 {
		return nil, 0, apperr.Validation(op, "Rating must be between 1 and 5")
	}
	if _, err := s.store.Courses.FindByID(ctx, courseID); err != nil {
		return nil, 0, err
	}
	enrolled, err := s.store.Enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, 0, err
	}
	if !enrolled {
		return nil, 0, apperr.Forbidden(op, "Enroll to review")
	}

	review := &models.Review{
		CourseID:  courseID,
		StudentID: userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: s.now(),
	}
	avg, err := s.store.Reviews.AddAndRecompute(ctx, review)
	if err != nil {
		return nil, 0, err
	}
	s.forget(ctx, courseID)

	s.logger.Info("review added",
		zap.String("course_id", courseID.String()),
		zap.String("student_id", userID.String()),
		zap.Int("rating", rating),
		zap.Float64("avg_rating", avg),
	)
	return review, avg, nil
}

// DeleteReview removes a review and returns the recomputed average.
func (s *ReviewService) DeleteReview(ctx context.Context, courseID, reviewID uuid.UUID) (float64, error) {
	avg, err := s.store.Reviews.DeleteAndRecompute(ctx, courseID, reviewID)
	if err != nil {
		return 0, err
	}
	s.forget(ctx, courseID)

	s.logger.Info("review removed",
		zap.String("course_id", courseID.String()),
		zap.String("review_id", reviewID.String()),
		zap.Float64("avg_rating", avg),
	)
	return avg, nil
}

func (s *ReviewService) GetReviews(ctx context.Context, courseID uuid.UUID) (*ReviewSummary, error) {
	var key string
	if s.cache != nil {
		key = summaryKey(courseID, s.summaryVersion(ctx, courseID))
		var cached ReviewSummary
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		s.logger.Debug("review summary cache miss", zap.String("course_id", courseID.String()), zap.Error(err))
	}

	course, err := s.store.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.store.Reviews.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	authors, err := s.authors(ctx, reviews)
	if err != nil {
		return nil, err
	}

	summary := &ReviewSummary{
		CourseID:  courseID,
		Reviews:   make([]ReviewView, 0, len(reviews)),
		AvgRating: course.AvgRating,
	}
	for _, r := range reviews {
		author := authors[r.StudentID]
		author.Email = ""
		summary.Reviews = append(summary.Reviews, ReviewView{
			ID:        r.ID,
			Student:   author,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
			s.logger.Warn("review summary cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

func (s *ReviewService) ListAllReviews(ctx context.Context) ([]ModeratedReview, error) {
	reviews, err := s.store.Reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	authors, err := s.authors(ctx, reviews)
	if err != nil {
		return nil, err
	}

	courseIDs := uniqueIDs(reviews, func(r models.Review) uuid.UUID { return r.CourseID })
	courses, err := s.store.Courses.FindByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	titles := make(map[uuid.UUID]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}

	rows := make([]ModeratedReview, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, ModeratedReview{
			CourseID:    r.CourseID,
			CourseTitle: titles[r.CourseID],
			ReviewID:    r.ID,
			Student:     authors[r.StudentID],
			Rating:      r.Rating,
			Comment:     r.Comment,
			CreatedAt:   r.CreatedAt,
		})
	}
	return rows, nil
}

func (s *ReviewService) authors(ctx context.Context, reviews []models.Review) (map[uuid.UUID]ReviewAuthor, error) {
	ids := uniqueIDs(reviews, func(r models.Review) uuid.UUID { return r.StudentID })
	users, err := s.store.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authors := make(map[uuid.UUID]ReviewAuthor, len(users))
	for _, u := range users {
		authors[u.ID] = ReviewAuthor{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	for _, id := range ids {
		if _, ok := authors[id]; !ok {
			authors[id] = ReviewAuthor{ID: id}
		}
	}
	return authors, nil
}

// forget moves the courses to a new summary generation. A failure only costs
// staleness up to the TTL.
func (s *ReviewService) forget(ctx context.Context, courseIDs ...uuid.UUID) {
	if s.cache == nil {
		return
	}
	for _, id := range courseIDs {
		if _, err := s.cache.Incr(ctx, summaryVersionKey(id)); err != nil {
			s.logger.Warn("review summary cache invalidation failed",
				zap.String("course_id", id.String()),
				zap.Error(err),
			)
		}
	}
}

func uniqueIDs[T any](items []T, key func(T) uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id := key(item)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
