package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/attthulll/Learnsphere---Backend/backend/repository/memory"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx   context.Context
	store services.Store
	svc   *services.Services
	jwt   *utils.JWTIssuer
	clock *clock
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFixture(t *testing.T, opts ...func(*services.Options)) *fixture {
	t.Helper()
	clk := &clock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	jwt := utils.NewJWTIssuer("test-secret", time.Hour)
	store := memory.New().Store()

	o := services.Options{Tokens: jwt, Now: clk.now}
	for _, opt := range opts {
		opt(&o)
	}
	return &fixture{
		ctx:   context.Background(),
		store: store,
		svc:   services.New(store, o),
		jwt:   jwt,
		clock: clk,
	}
}

func (f *fixture) user(t *testing.T, name, role string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Role: role}
	if role == models.RoleInstructor {
		u.InstructorStatus = models.StatusPtr(models.InstructorApproved)
	}
	require.NoError(t, f.store.Users.Create(f.ctx, u))
	return u
}

func (f *fixture) course(t *testing.T, instructor *models.User, modules ...string) *models.Course {
	t.Helper()
	in := services.CourseInput{Title: "Course by " + instructor.Name}
	for _, m := range modules {
		in.Modules = append(in.Modules, services.ModuleInput{Title: m})
	}
	course, err := f.svc.Courses.Create(f.ctx, instructor.ID, in)
	require.NoError(t, err)
	return course
}

func (f *fixture) enroll(t *testing.T, user *models.User, course *models.Course) {
	t.Helper()
	_, err := f.svc.Enrollments.Enroll(f.ctx, user.ID, course.ID)
	require.NoError(t, err)
}

func TestEnrollIsIdempotent(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1")

	first, err := f.svc.Enrollments.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, first.AlreadyEnrolled)

	second, err := f.svc.Enrollments.Enroll(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyEnrolled)
	assert.Equal(t, 1, second.Students)

	courses, err := f.svc.Enrollments.EnrolledCourses(f.ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course.ID, courses[0].ID)

	students, err := f.svc.Enrollments.Students(f.ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].ID)
}

func TestEnrollUnknownCourse(t *testing.T) {
	f := newFixture(t)
	student := f.user(t, "bob", models.RoleStudent)

	_, err := f.svc.Enrollments.Enroll(f.ctx, student.ID, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestCompleteModuleTwiceKeepsOneEntry(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1", "m2")
	f.enroll(t, student, course)
	m1 := course.Modules[0].ID

	res, err := f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, m1)
	require.NoError(t, err)
	assert.False(t, res.AlreadyCompleted)

	res, err = f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, m1)
	require.NoError(t, err)
	assert.True(t, res.AlreadyCompleted)

	entries, err := f.store.Progress.ListCompleted(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCompleteModuleChecks(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1")
	other := f.course(t, teacher, "x1")

	_, err := f.svc.Progress.CompleteModule(f.ctx, uuid.New(), course.ID, course.Modules[0].ID)
	assert.True(t, apperr.IsNotFound(err), "unknown user")

	_, err = f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, course.Modules[0].ID)
	assert.True(t, apperr.IsForbidden(err), "not enrolled")

	f.enroll(t, student, course)
	_, err = f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, other.Modules[0].ID)
	assert.True(t, apperr.IsNotFound(err), "module of another course")
}

func TestProgressPercentages(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1", "m2", "m3", "m4")
	empty := f.course(t, teacher)
	f.enroll(t, student, course)
	f.enroll(t, student, empty)

	for _, m := range course.Modules[:2] {
		_, err := f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, m.ID)
		require.NoError(t, err)
	}

	progress, err := f.svc.Progress.GetProgress(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.Progress)
	assert.Equal(t, 4, progress.TotalModules)

	progress, err = f.svc.Progress.GetProgress(f.ctx, student.ID, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Progress)

	all, err := f.svc.Progress.GetProgressForAllEnrolled(f.ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	byCourse := map[uuid.UUID]int{}
	for _, p := range all {
		byCourse[p.CourseID] = p.Progress
	}
	assert.Equal(t, map[uuid.UUID]int{course.ID: 50, empty.ID: 0}, byCourse)
}

func TestPercentRounding(t *testing.T) {
	assert.Equal(t, 50, services.Percent(2, 4))
	assert.Equal(t, 33, services.Percent(1, 3))
	assert.Equal(t, 67, services.Percent(2, 3))
	assert.Equal(t, 13, services.Percent(1, 8))
	assert.Equal(t, 0, services.Percent(5, 0))
	assert.Equal(t, 100, services.Percent(3, 3))
}

func TestDeletedModuleStopsCounting(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1", "m2")
	f.enroll(t, student, course)

	_, err := f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, course.Modules[0].ID)
	require.NoError(t, err)

	_, err = f.svc.Courses.DeleteModule(f.ctx, teacher.ID, course.ID, course.Modules[0].ID)
	require.NoError(t, err)

	progress, err := f.svc.Progress.GetProgress(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Progress)
	assert.Empty(t, progress.CompletedModules)

	entries, err := f.store.Progress.ListCompleted(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReviewAverageRoundTrip(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	alice := f.user(t, "alice", models.RoleStudent)
	bob := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1")
	f.enroll(t, alice, course)
	f.enroll(t, bob, course)

	_, avg, err := f.svc.Reviews.AddReview(f.ctx, alice.ID, course.ID, 4, "good")
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	low, avg, err := f.svc.Reviews.AddReview(f.ctx, bob.ID, course.ID, 2, "meh")
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)

	summary, err := f.svc.Reviews.GetReviews(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, summary.AvgRating)
	assert.Len(t, summary.Reviews, 2)

	avg, err = f.svc.Reviews.DeleteReview(f.ctx, course.ID, low.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	summary, err = f.svc.Reviews.GetReviews(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, summary.AvgRating)
	require.Len(t, summary.Reviews, 1)
	assert.Equal(t, "alice", summary.Reviews[0].Student.Name)

	reviews, err := f.svc.Reviews.ListAllReviews(f.ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, course.Title, reviews[0].CourseTitle)
}

func TestReviewPolicy(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1")

	_, _, err := f.svc.Reviews.AddReview(f.ctx, student.ID, course.ID, 5, "")
	assert.True(t, apperr.IsForbidden(err))
	assert.Equal(t, "Enroll to review", apperr.MessageOf(err))

	f.enroll(t, student, course)

	_, _, err = f.svc.Reviews.AddReview(f.ctx, student.ID, course.ID, 6, "")
	assert.Equal(t, apperr.ErrValidation, apperr.KindOf(err))

	_, _, err = f.svc.Reviews.AddReview(f.ctx, student.ID, course.ID, 5, "")
	require.NoError(t, err)

	_, _, err = f.svc.Reviews.AddReview(f.ctx, student.ID, course.ID, 1, "again")
	assert.True(t, apperr.IsConflict(err))

	_, err = f.svc.Reviews.GetReviews(f.ctx, uuid.New())
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.svc.Reviews.DeleteReview(f.ctx, course.ID, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestCertificateRequiresFullCompletion(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1", "m2", "m3", "m4")

	_, err := f.svc.Certificates.Issue(f.ctx, student.ID, course.ID)
	assert.True(t, apperr.IsForbidden(err), "not enrolled")

	f.enroll(t, student, course)
	for _, m := range course.Modules[:3] {
		f.clock.advance(time.Minute)
		_, err := f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, m.ID)
		require.NoError(t, err)
	}

	_, err = f.svc.Certificates.Issue(f.ctx, student.ID, course.ID)
	assert.True(t, apperr.IsForbidden(err))
	assert.Equal(t, "Course not completed", apperr.MessageOf(err))

	f.clock.advance(time.Minute)
	_, err = f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, course.Modules[3].ID)
	require.NoError(t, err)
	lastCompletion := f.clock.now()

	f.clock.advance(time.Hour)
	cert, err := f.svc.Certificates.Issue(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", cert.StudentName)
	assert.Equal(t, "ada", cert.InstructorName)
	assert.Equal(t, course.Title, cert.CourseTitle)
	assert.Equal(t, f.clock.now(), cert.CompletedAt)
	require.NotNil(t, cert.LastModuleCompletedAt)
	assert.Equal(t, lastCompletion, *cert.LastModuleCompletedAt)

	_, err = f.svc.Certificates.Issue(f.ctx, student.ID, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestTwoModuleScenario(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1", "m2")
	m1, m2 := course.Modules[0].ID, course.Modules[1].ID
	f.enroll(t, student, course)

	_, err := f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, m1)
	require.NoError(t, err)

	progress, err := f.svc.Progress.GetProgress(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.Progress)
	assert.Equal(t, []uuid.UUID{m1}, progress.CompletedModules)

	_, err = f.svc.Certificates.Issue(f.ctx, student.ID, course.ID)
	assert.True(t, apperr.IsForbidden(err))

	_, err = f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, m2)
	require.NoError(t, err)

	progress, err = f.svc.Progress.GetProgress(f.ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.Progress)

	_, err = f.svc.Certificates.Issue(f.ctx, student.ID, course.ID)
	assert.NoError(t, err)
}
