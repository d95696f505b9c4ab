//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/config"
	"github.com/attthulll/Learnsphere---Backend/backend/database"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "learnsphere",
			"POSTGRES_PASSWORD": "learnsphere",
			"POSTGRES_DB":       "learnsphere",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		Env:        "test",
		DBHost:     host,
		DBPort:     port.Port(),
		DBUser:     "learnsphere",
		DBPassword: "learnsphere",
		DBName:     "learnsphere",
		DBSSLMode:  "disable",
	}
	log := zap.NewNop()
	db, err := database.InitDB(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	migrator, err := database.NewMigrator(db, log)
	require.NoError(t, err)
	require.NoError(t, migrator.Run(ctx))
	return db
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := setupPostgres(t)
	store := NewStore(db)
	ctx := context.Background()

	teacher := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Role: models.RoleInstructor,
		InstructorStatus: models.StatusPtr(models.InstructorApproved)}
	require.NoError(t, store.Users.Create(ctx, teacher))
	err := store.Users.Create(ctx, &models.User{Name: "Dup", Email: "ada@example.com", PasswordHash: "x"})
	assert.True(t, apperr.IsConflict(err))

	var students []*models.User
	for _, name := range []string{"s1", "s2", "s3", "s4"} {
		u := &models.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: models.RoleStudent}
		require.NoError(t, store.Users.Create(ctx, u))
		students = append(students, u)
	}

	course := &models.Course{Title: "Go", InstructorID: teacher.ID, Modules: []models.Module{{Title: "m1"}, {Title: "m2"}}}
	require.NoError(t, store.Courses.Create(ctx, course))

	t.Run("modules keep order", func(t *testing.T) {
		m3 := &models.Module{CourseID: course.ID, Title: "m3"}
		require.NoError(t, store.Courses.AddModule(ctx, m3))
		assert.Equal(t, 3, m3.SequenceOrder)

		got, err := store.Courses.FindByID(ctx, course.ID)
		require.NoError(t, err)
		require.Len(t, got.Modules, 3)
		assert.Equal(t, "m1", got.Modules[0].Title)
		assert.Equal(t, "m3", got.Modules[2].Title)
	})

	t.Run("enroll and complete are idempotent", func(t *testing.T) {
		s := students[0]
		added, err := store.Enrollments.Enroll(ctx, s.ID, course.ID, time.Now())
		require.NoError(t, err)
		assert.True(t, added)
		added, err = store.Enrollments.Enroll(ctx, s.ID, course.ID, time.Now())
		require.NoError(t, err)
		assert.False(t, added)

		entry := &models.CompletedModule{UserID: s.ID, CourseID: course.ID, ModuleID: course.Modules[0].ID, CompletedAt: time.Now()}
		added, err = store.Progress.MarkCompleted(ctx, entry)
		require.NoError(t, err)
		assert.True(t, added)
		added, err = store.Progress.MarkCompleted(ctx, entry)
		require.NoError(t, err)
		assert.False(t, added)

		entries, err := store.Progress.ListCompleted(ctx, s.ID, course.ID)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("concurrent reviews keep the average exact", func(t *testing.T) {
		ratings := []int{5, 4, 2, 1}
		var wg sync.WaitGroup
		errs := make([]error, len(students))
		for i, s := range students {
			wg.Add(1)
			go func(i int, s *models.User) {
				defer wg.Done()
				_, errs[i] = store.Reviews.AddAndRecompute(ctx, &models.Review{CourseID: course.ID, StudentID: s.ID, Rating: ratings[i]})
			}(i, s)
		}
		wg.Wait()
		for _, err := range errs {
			require.NoError(t, err)
		}

		got, err := store.Courses.FindByID(ctx, course.ID)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, got.AvgRating, 1e-9)

		_, err = store.Reviews.AddAndRecompute(ctx, &models.Review{CourseID: course.ID, StudentID: students[0].ID, Rating: 3})
		assert.True(t, apperr.IsConflict(err))

		reviews, err := store.Reviews.ListByCourse(ctx, course.ID)
		require.NoError(t, err)
		var low *models.Review
		for i := range reviews {
			if reviews[i].Rating == 1 {
				low = &reviews[i]
			}
		}
		require.NotNil(t, low)
		avg, err := store.Reviews.DeleteAndRecompute(ctx, course.ID, low.ID)
		require.NoError(t, err)
		assert.InDelta(t, 11.0/3.0, avg, 1e-9)

		counts, err := store.Reviews.CountByCourse(ctx, []uuid.UUID{course.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(3), counts[course.ID])
	})

	t.Run("user delete cascades and recomputes", func(t *testing.T) {
		_, err := store.Users.Delete(ctx, teacher.ID)
		assert.True(t, apperr.IsConflict(err))

		reviewed, err := store.Users.Delete(ctx, students[0].ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{course.ID}, reviewed)
		got, err := store.Courses.FindByID(ctx, course.ID)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, got.AvgRating, 1e-9)

		ids, err := store.Enrollments.StudentIDs(ctx, course.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("course delete cascades", func(t *testing.T) {
		require.NoError(t, store.Courses.Delete(ctx, course.ID))
		reviews, err := store.Reviews.ListByCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)
		assert.True(t, apperr.IsNotFound(store.Courses.Delete(ctx, course.ID)))
	})

	t.Run("category names are case-insensitive", func(t *testing.T) {
		require.NoError(t, store.Categories.Create(ctx, &models.Category{Name: "Design"}))
		assert.True(t, apperr.IsConflict(store.Categories.Create(ctx, &models.Category{Name: "design"})))
		got, err := store.Categories.FindByName(ctx, "DESIGN")
		require.NoError(t, err)
		assert.Equal(t, "Design", got.Name)
	})
}
