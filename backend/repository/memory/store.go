// Package memory is a process-local implementation of the repository contracts.
// It mirrors the Postgres schema's constraints (unique keys, cascades, restrict on
// course owners) so service behaviour is the same on both backends. Every method
// runs under one mutex, which also gives the per-course serialization the review
// aggregate needs.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/google/uuid"
)

type enrollmentKey struct {
	userID   uuid.UUID
	courseID uuid.UUID
}

type DB struct {
	mu sync.RWMutex

	users      map[uuid.UUID]models.User
	userOrder  []uuid.UUID
	courses    map[uuid.UUID]models.Course
	courseSeq  map[uuid.UUID]int
	modules    map[uuid.UUID]models.Module
	categories map[uuid.UUID]models.Category

	enrollments []models.Enrollment
	enrolled    map[enrollmentKey]struct{}
	completed   []models.CompletedModule
	reviews     []models.Review

	seq int
	now func() time.Time
}

func New() *DB {
	return &DB{
		users:      make(map[uuid.UUID]models.User),
		courses:    make(map[uuid.UUID]models.Course),
		courseSeq:  make(map[uuid.UUID]int),
		modules:    make(map[uuid.UUID]models.Module),
		categories: make(map[uuid.UUID]models.Category),
		enrolled:   make(map[enrollmentKey]struct{}),
		now:        time.Now,
	}
}

// Store exposes the database through the service repository contracts.
func (db *DB) Store() services.Store {
	return services.Store{
		Users:       &UserRepository{db: db},
		Courses:     &CourseRepository{db: db},
		Enrollments: &EnrollmentRepository{db: db},
		Progress:    &ProgressRepository{db: db},
		Reviews:     &ReviewRepository{db: db},
		Categories:  &CategoryRepository{db: db},
	}
}

// courseWithModules must be called with db.mu held.
func (db *DB) courseWithModules(id uuid.UUID) (models.Course, bool) {
	course, ok := db.courses[id]
	if !ok {
		return models.Course{}, false
	}
	course.Modules = nil
	for _, m := range db.modules {
		if m.CourseID == id {
			course.Modules = append(course.Modules, m)
		}
	}
	sort.Slice(course.Modules, func(i, j int) bool {
		return course.Modules[i].SequenceOrder < course.Modules[j].SequenceOrder
	})
	return course, true
}

// recomputeAvg must be called with db.mu held for writing.
func (db *DB) recomputeAvg(courseID uuid.UUID) float64 {
	course, ok := db.courses[courseID]
	if !ok {
		return 0
	}
	var sum, count int
	for _, r := range db.reviews {
		if r.CourseID == courseID {
			sum += r.Rating
			count++
		}
	}
	course.AvgRating = 0
	if count > 0 {
		course.AvgRating = float64(sum) / float64(count)
	}
	db.courses[courseID] = course
	return course.AvgRating
}

// deleteCourseRows cascades a course delete. Must be called with db.mu held.
func (db *DB) deleteCourseRows(courseID uuid.UUID) {
	delete(db.courses, courseID)
	delete(db.courseSeq, courseID)
	for id, m := range db.modules {
		if m.CourseID == courseID {
			delete(db.modules, id)
		}
	}
	db.enrollments = filter(db.enrollments, func(e models.Enrollment) bool {
		if e.CourseID == courseID {
			delete(db.enrolled, enrollmentKey{e.UserID, e.CourseID})
			return false
		}
		return true
	})
	db.completed = filter(db.completed, func(c models.CompletedModule) bool { return c.CourseID != courseID })
	db.reviews = filter(db.reviews, func(r models.Review) bool { return r.CourseID != courseID })
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
