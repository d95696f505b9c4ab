package services

import (
	"context"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
)

// Repositories return *apperr.Error values: NotFound for missing rows, Conflict for
// unique violations, Internal for everything else.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListInstructorsByStatus(ctx context.Context, status string) ([]models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error) // empty role counts everyone
	SetInstructorStatus(ctx context.Context, id uuid.UUID, status string) error
	// Delete removes the user with their enrollments, completions and reviews,
	// recomputes avgRating of every course they had reviewed and returns those
	// course ids.
	Delete(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
}

type CourseFilter struct {
	CategoryID   *uuid.UUID
	InstructorID *uuid.UUID
	Search       string
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	// FindByID loads the course with its modules in sequence order.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// AddModule appends the module after the course's last one.
	AddModule(ctx context.Context, module *models.Module) error
	UpdateModule(ctx context.Context, module *models.Module) error
	DeleteModule(ctx context.Context, courseID, moduleID uuid.UUID) error
}

// EnrollmentRepository stores membership once; both directions are queries over it.
type EnrollmentRepository interface {
	// Enroll inserts the (user, course) pair unless present and reports whether it did.
	Enroll(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (bool, error)
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	CourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	StudentIDs(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
	CountStudents(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type ProgressRepository interface {
	// MarkCompleted inserts the entry unless one exists for the same
	// (user, course, module) and reports whether it did.
	MarkCompleted(ctx context.Context, entry *models.CompletedModule) (bool, error)
	// ListCompleted returns the user's entries in completion order, restricted to
	// courseIDs when any are given.
	ListCompleted(ctx context.Context, userID uuid.UUID, courseIDs ...uuid.UUID) ([]models.CompletedModule, error)
}

type ReviewRepository interface {
	// AddAndRecompute inserts the review and rewrites the course's avgRating from the
	// stored reviews, atomically and serialized per course. It returns the new average.
	AddAndRecompute(ctx context.Context, review *models.Review) (float64, error)
	// DeleteAndRecompute removes the review and rewrites avgRating the same way.
	DeleteAndRecompute(ctx context.Context, courseID, reviewID uuid.UUID) (float64, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	CountByCourse(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cache is the JSON cache used for review summaries. A miss is any error.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Incr atomically increments the integer under key, starting from 0.
	Incr(ctx context.Context, key string) (int64, error)
}

// TokenIssuer signs the bearer credential handed out on login.
type TokenIssuer interface {
	Issue(userID uuid.UUID, role string) (string, error)
}

// Store bundles every repository; constructed once per process.
type Store struct {
	Users       UserRepository
	Courses     CourseRepository
	Enrollments EnrollmentRepository
	Progress    ProgressRepository
	Reviews     ReviewRepository
	Categories  CategoryRepository
}
