package services_test

import (
	"testing"

	"github.com/attthulll/Learnsphere---Backend/backend/apperr"
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructorApprovalScenario(t *testing.T) {
	f := newFixture(t)

	user, err := f.svc.Auth.Register(f.ctx, services.RegisterInput{
		Name: "Ada", Email: "Ada@Example.com", Password: "secret123", Role: models.RoleInstructor,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.True(t, user.IsPending())

	_, err = f.svc.Auth.Login(f.ctx, "ada@example.com", "secret123")
	assert.True(t, apperr.IsForbidden(err))
	assert.Contains(t, apperr.MessageOf(err), "pending admin approval")

	pending, err := f.svc.Instructors.ListPending(f.ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, user.ID, pending[0].ID)

	changed, err := f.svc.Instructors.Approve(f.ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.svc.Instructors.Approve(f.ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, changed, "re-approve is a no-op")

	res, err := f.svc.Auth.Login(f.ctx, "ADA@example.com", "secret123")
	require.NoError(t, err)
	claims, err := f.jwt.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, claims.Role)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRejectedInstructorCannotLogin(t *testing.T) {
	f := newFixture(t)
	user, err := f.svc.Auth.Register(f.ctx, services.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "pw", Role: models.RoleInstructor,
	})
	require.NoError(t, err)

	_, err = f.svc.Instructors.Reject(f.ctx, user.ID)
	require.NoError(t, err)

	_, err = f.svc.Auth.Login(f.ctx, "ada@example.com", "pw")
	assert.True(t, apperr.IsForbidden(err))
	assert.Contains(t, apperr.MessageOf(err), "was rejected by admin")

	_, err = f.svc.Instructors.Approve(f.ctx, user.ID)
	require.NoError(t, err)
	_, err = f.svc.Auth.Login(f.ctx, "ada@example.com", "pw")
	assert.NoError(t, err)
}

func TestApproveRequiresInstructor(t *testing.T) {
	f := newFixture(t)
	student := f.user(t, "bob", models.RoleStudent)

	_, err := f.svc.Instructors.Approve(f.ctx, student.ID)
	assert.Equal(t, apperr.ErrValidation, apperr.KindOf(err))

	got, err := f.store.Users.FindByID(f.ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, got.InstructorStatus)
}

func TestRegisterAndLoginFailures(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Auth.Register(f.ctx, services.RegisterInput{Name: "x", Email: "x@example.com", Password: "pw", Role: models.RoleAdmin})
	assert.Equal(t, apperr.ErrValidation, apperr.KindOf(err))

	student, err := f.svc.Auth.Register(f.ctx, services.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, student.Role)
	assert.Nil(t, student.InstructorStatus)

	_, err = f.svc.Auth.Register(f.ctx, services.RegisterInput{Name: "Bob", Email: "BOB@example.com", Password: "pw"})
	assert.True(t, apperr.IsConflict(err))

	_, err = f.svc.Auth.Login(f.ctx, "bob@example.com", "wrong")
	assert.Equal(t, apperr.ErrUnauthorized, apperr.KindOf(err))

	_, err = f.svc.Auth.Login(f.ctx, "nobody@example.com", "pw")
	assert.Equal(t, apperr.ErrUnauthorized, apperr.KindOf(err))

	res, err := f.svc.Auth.Login(f.ctx, "bob@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Auth.EnsureAdmin(f.ctx, "Root", "root@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.Auth.EnsureAdmin(f.ctx, "Root", "root@example.com", "pw")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = f.svc.Auth.EnsureAdmin(f.ctx, "Root", "", "")
	require.NoError(t, err)
	assert.False(t, created)

	res, err := f.svc.Auth.Login(f.ctx, "root@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
}

func TestProfileListsMembership(t *testing.T) {
	f := newFixture(t)
	teacher := f.user(t, "ada", models.RoleInstructor)
	student := f.user(t, "bob", models.RoleStudent)
	course := f.course(t, teacher, "m1")
	f.enroll(t, student, course)
	_, err := f.svc.Progress.CompleteModule(f.ctx, student.ID, course.ID, course.Modules[0].ID)
	require.NoError(t, err)

	profile, err := f.svc.Auth.Profile(f.ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.Name)
	assert.Len(t, profile.EnrolledCourses, 1)
	assert.Len(t, profile.CompletedModules, 1)
}
