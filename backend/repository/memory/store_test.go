package memory

import (
	"context"
	"testing"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (*DB, *models.User, *models.User, *models.Course) {
	t.Helper()
	ctx := context.Background()
	db := New()
	store := db.Store()

	teacher := &models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleInstructor}
	student := &models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleStudent}
	require.NoError(t, store.Users.Create(ctx, teacher))
	require.NoError(t, store.Users.Create(ctx, student))

	course := &models.Course{
		Title:        "Go",
		InstructorID: teacher.ID,
		Modules:      []models.Module{{Title: "m1"}, {Title: "m2"}},
	}
	require.NoError(t, store.Courses.Create(ctx, course))
	return db, teacher, student, course
}

func TestUserEmailIsUnique(t *testing.T) {
	db, _, _, _ := seed(t)
	err := db.Store().Users.Create(context.Background(), &models.User{Name: "x", Email: "bob@example.com"})
	assert.True(t, apperr.IsConflict(err))
}

func TestCourseModulesAreOrdered(t *testing.T) {
	db, _, _, course := seed(t)
	ctx := context.Background()
	repo := db.Store().Courses

	m3 := &models.Module{CourseID: course.ID, Title: "m3"}
	require.NoError(t, repo.AddModule(ctx, m3))
	assert.Equal(t, 3, m3.SequenceOrder)

	got, err := repo.FindByID(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, got.Modules, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{got.Modules[0].Title, got.Modules[1].Title, got.Modules[2].Title})

	err = repo.DeleteModule(ctx, uuid.New(), m3.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestEnrollIsIdempotent(t *testing.T) {
	db, _, student, course := seed(t)
	ctx := context.Background()
	repo := db.Store().Enrollments

	added, err := repo.Enroll(ctx, student.ID, course.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Enroll(ctx, student.ID, course.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, added)

	courses, _ := repo.CourseIDs(ctx, student.ID)
	students, _ := repo.StudentIDs(ctx, course.ID)
	assert.Equal(t, []uuid.UUID{course.ID}, courses)
	assert.Equal(t, []uuid.UUID{student.ID}, students)
}

func TestReviewAggregate(t *testing.T) {
	db, teacher, student, course := seed(t)
	ctx := context.Background()
	repo := db.Store().Reviews

	avg, err := repo.AddAndRecompute(ctx, &models.Review{CourseID: course.ID, StudentID: student.ID, Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	low := &models.Review{CourseID: course.ID, StudentID: teacher.ID, Rating: 2}
	avg, err = repo.AddAndRecompute(ctx, low)
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)

	_, err = repo.AddAndRecompute(ctx, &models.Review{CourseID: course.ID, StudentID: student.ID, Rating: 5})
	assert.True(t, apperr.IsConflict(err))

	avg, err = repo.DeleteAndRecompute(ctx, course.ID, low.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	_, err = repo.DeleteAndRecompute(ctx, course.ID, low.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteUserCascades(t *testing.T) {
	db, teacher, student, course := seed(t)
	ctx := context.Background()
	store := db.Store()

	_, err := store.Enrollments.Enroll(ctx, student.ID, course.ID, time.Now())
	require.NoError(t, err)
	_, err = store.Reviews.AddAndRecompute(ctx, &models.Review{CourseID: course.ID, StudentID: student.ID, Rating: 5})
	require.NoError(t, err)

	_, err = store.Users.Delete(ctx, teacher.ID)
	assert.True(t, apperr.IsConflict(err))

	reviewed, err := store.Users.Delete(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{course.ID}, reviewed)

	got, err := store.Courses.FindByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Zero(t, got.AvgRating)

	students, _ := store.Enrollments.StudentIDs(ctx, course.ID)
	assert.Empty(t, students)
}

func TestDeleteCourseCascades(t *testing.T) {
	db, _, student, course := seed(t)
	ctx := context.Background()
	store := db.Store()

	_, err := store.Enrollments.Enroll(ctx, student.ID, course.ID, time.Now())
	require.NoError(t, err)
	_, err = store.Progress.MarkCompleted(ctx, &models.CompletedModule{
		UserID: student.ID, CourseID: course.ID, ModuleID: course.Modules[0].ID, CompletedAt: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, store.Courses.Delete(ctx, course.ID))

	ids, _ := store.Enrollments.CourseIDs(ctx, student.ID)
	assert.Empty(t, ids)
	entries, _ := store.Progress.ListCompleted(ctx, student.ID)
	assert.Empty(t, entries)
}

func TestCategoryNameIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := New().Store().Categories

	require.NoError(t, repo.Create(ctx, &models.Category{Name: "Design"}))
	err := repo.Create(ctx, &models.Category{Name: "design"})
	assert.True(t, apperr.IsConflict(err))

	got, err := repo.FindByName(ctx, "DESIGN")
	require.NoError(t, err)
	assert.Equal(t, "Design", got.Name)
}
