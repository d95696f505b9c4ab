// Package services holds the learning-platform operations. Each service talks to
// storage only through the repository contracts in repositories.go and returns
// *apperr.Error values that the HTTP layer maps to statuses.
package services

import (
	"time"

	"go.uber.org/zap"
)

type Options struct {
	Tokens   TokenIssuer
	Cache    Cache // optional
	CacheTTL time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

type Services struct {
	Auth         *AuthService
	Instructors  *InstructorService
	Categories   *CategoryService
	Courses      *CourseService
	Enrollments  *EnrollmentService
	Progress     *ProgressService
	Reviews      *ReviewService
	Certificates *CertificateService
	Admin        *AdminService
}

func New(store Store, opts Options) *Services {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	instructors := &InstructorService{store: store, logger: opts.Logger}
	categories := &CategoryService{store: store, logger: opts.Logger}
	progress := &ProgressService{store: store, logger: opts.Logger, now: opts.Now}
	reviews := &ReviewService{store: store, cache: opts.Cache, ttl: opts.CacheTTL, logger: opts.Logger, now: opts.Now}
	courses := &CourseService{store: store, categories: categories, reviews: reviews, logger: opts.Logger}

	return &Services{
		Auth:         &AuthService{store: store, tokens: opts.Tokens, instructors: instructors, logger: opts.Logger},
		Instructors:  instructors,
		Categories:   categories,
		Courses:      courses,
		Enrollments:  &EnrollmentService{store: store, logger: opts.Logger, now: opts.Now},
		Progress:     progress,
		Reviews:      reviews,
		Certificates: &CertificateService{store: store, progress: progress, now: opts.Now},
		Admin:        &AdminService{store: store, courses: courses, reviews: reviews, logger: opts.Logger},
	}
}
